package searcher

// Hyperparameters for anytime search

// Rollout horizon: longer lookahead under partial observability, where a
// trajectory also has to pay for information gathering.
const (
	HorizonPartialObs = 14
	HorizonFullObs    = 10
)

// Number of leading rollout ticks that pay a penalty for stepping back onto
// recently held cells.
const LoopWindow = 6

// Chance of picking among the top directions at random instead of the single
// best mean, damping oscillation between near-tied actions across
// consecutive decisions.
const ExplorationRatio = 0.05

// Minimum recorded positions before the stuck predicate has enough evidence.
const minHistory = 6

// At most this many distinct cells over the last minHistory positions counts
// as pacing in place.
const maxDistinct = 2
