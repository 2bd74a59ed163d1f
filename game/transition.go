package game

import "golang.org/x/exp/rand"

// Obstacles only attempt to drift every third tick.
const obstacleDriftPeriod = 3

// Advance applies one tick to the state: slip, movement, observation reveal,
// obstacle drift, adversary move, reward accounting, and bookkeeping.
// Illegal moves degrade to silent no-ops and a terminal state is frozen;
// Advance never fails.
func (gs *GridState) Advance(action Action, cfg Config, rng *rand.Rand) {
	if gs.Terminal {
		return
	}

	// Slip: substitute one of the three non-chosen directions.
	if cfg.SlipProb > 0 && rng.Float64() < cfg.SlipProb {
		action = Directions[(int(action)+1+rng.Intn(NumActions-1))%NumActions]
	}

	if target := gs.Agent.Step(action); gs.InBounds(target) && !gs.Obstacle(target) {
		gs.Agent = target
	}

	if cfg.PartialObs {
		gs.revealAround(gs.Agent, cfg.ObsRadius, cfg.SensorNoise, rng)
	} else {
		gs.revealAll()
	}

	if cfg.DynamicObstacles && gs.Tick%obstacleDriftPeriod == 0 {
		gs.driftObstacles(rng)
	}

	collided := false
	if gs.Adversary != nil {
		gs.moveAdversary(cfg, rng)
		collided = *gs.Adversary == gs.Agent
	}

	// Goal arrival replaces the step reward; a collision stacks on top.
	reward := cfg.StepReward
	if gs.Agent == gs.Goal {
		reward = cfg.GoalReward
	}
	if collided {
		reward += cfg.CollisionPenalty
	}
	gs.CumulativeReward += reward

	gs.Tick++
	if d := Manhattan(gs.Agent, gs.Goal); d < gs.BestDistance {
		gs.BestDistance = d
		gs.BestDistanceTick = gs.Tick
	}

	if len(gs.recentPositions) == historyLen {
		copy(gs.recentPositions, gs.recentPositions[1:])
		gs.recentPositions[historyLen-1] = gs.Agent
	} else {
		gs.recentPositions = append(gs.recentPositions, gs.Agent)
	}

	if cfg.Episodic && gs.Agent == gs.Goal {
		gs.Terminal = true
	}
}

// driftObstacles moves each obstacle one cell in a random direction.
// Legality is judged against the obstacle set as it stood before this tick's
// drift, so the outcome does not depend on iteration order. A mover whose
// target was already claimed this tick stays put, keeping the obstacle count
// stable.
func (gs *GridState) driftObstacles(rng *rand.Rand) {
	prior := gs.obstacles
	next := newBitset(gs.Width * gs.Height)
	for y := 0; y < gs.Height; y++ {
		for x := 0; x < gs.Width; x++ {
			c := Cell{X: x, Y: y}
			i := gs.index(c)
			if !prior.get(i) {
				continue
			}
			target := c.Step(Directions[rng.Intn(NumActions)])
			ok := gs.InBounds(target)
			ti := 0
			if ok {
				ti = gs.index(target)
				ok = !prior.get(ti) && !next.get(ti) &&
					target != gs.Agent && target != gs.Goal &&
					(gs.Adversary == nil || target != *gs.Adversary)
			}
			if ok {
				next.set(ti)
			} else {
				next.set(i)
			}
		}
	}
	gs.obstacles = next
}

// moveAdversary steps the adversary to a legal neighbor cell: uniformly at
// random, or greedily toward the agent for the chaser variant (ties broken
// by direction enumeration order). With no legal neighbor it stays put.
func (gs *GridState) moveAdversary(cfg Config, rng *rand.Rand) {
	legal := make([]Cell, 0, NumActions)
	for _, a := range Directions {
		t := gs.Adversary.Step(a)
		if gs.InBounds(t) && !gs.Obstacle(t) {
			legal = append(legal, t)
		}
	}
	if len(legal) == 0 {
		return
	}

	switch cfg.Adversary {
	case AdversaryChaser:
		best := legal[0]
		for _, t := range legal[1:] {
			if Manhattan(t, gs.Agent) < Manhattan(best, gs.Agent) {
				best = t
			}
		}
		*gs.Adversary = best
	default:
		*gs.Adversary = legal[rng.Intn(len(legal))]
	}
}
