package searcher

import "gridworld/game"

// Stuck reports whether the agent has stopped making progress: a stale best
// distance, an A-B-A-B shuffle, or pacing within a couple of cells. Below
// six recorded positions there is not enough evidence and it reports false.
// Pure predicate; never mutates the state.
func Stuck(gs *game.GridState, cfg game.Config) bool {
	recent := gs.RecentPositions()
	n := len(recent)
	if n < minHistory {
		return false
	}

	if gs.Tick-gs.BestDistanceTick >= cfg.StallTicks {
		return true
	}

	if recent[n-1] == recent[n-3] && recent[n-2] == recent[n-4] {
		return true
	}

	distinct := make(map[game.Cell]struct{}, minHistory)
	for _, c := range recent[n-minHistory:] {
		distinct[c] = struct{}{}
	}
	return len(distinct) <= maxDistinct
}
