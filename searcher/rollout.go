package searcher

import (
	"gridworld/game"

	"golang.org/x/exp/rand"
)

// rollout scores a hypothetical first action by simulating a short random
// trajectory on an isolated copy of the state. The caller's state is never
// mutated.
func rollout(gs *game.GridState, first game.Action, horizon int, cfg game.Config, rng *rand.Rand) float64 {
	sim := gs.Copy()

	// Snapshot taken once, up front: the penalty discourages stepping back
	// onto the real trail, not onto the simulated one.
	trail := make(map[game.Cell]struct{}, len(gs.RecentPositions()))
	for _, c := range gs.RecentPositions() {
		trail[c] = struct{}{}
	}
	baseObserved := sim.ObservedCount()

	score := 0.0
	for t := 0; t < horizon && !sim.Terminal; t++ {
		action := first
		if t > 0 {
			action = game.Directions[rng.Intn(game.NumActions)]
		}
		atGoal := sim.Agent == sim.Goal
		sim.Advance(action, cfg, rng)

		score -= cfg.DistanceWeight * float64(game.Manhattan(sim.Agent, sim.Goal))
		score += cfg.InfoGainWeight * float64(sim.ObservedCount()-baseObserved)
		if t < LoopWindow {
			if _, seen := trail[sim.Agent]; seen {
				score -= cfg.LoopPenalty
			}
		}
		if sim.Agent == sim.Goal && !atGoal {
			score += cfg.RolloutGoalBonus
		}
	}
	return score
}
