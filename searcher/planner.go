package searcher

import (
	"math"
	"sort"
	"time"

	"gridworld/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(p *Planner)

// Planner picks one of the four directions per decision: an
// information-seeking fallback when the agent looks stuck, otherwise anytime
// Monte-Carlo sampling until the wall-clock budget runs out. One logical
// thread per decision; the deadline is polled cooperatively.
type Planner struct {
	cfg    game.Config
	budget time.Duration
	rng    *rand.Rand
}

func WithBudget(budget time.Duration) Option {
	return func(p *Planner) {
		p.budget = budget
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(p *Planner) {
		if rng != nil {
			p.rng = rng
		}
	}
}

func NewPlanner(cfg game.Config, options ...Option) *Planner {
	p := &Planner{ // Default values
		cfg:    cfg,
		budget: cfg.Budget,
		rng:    rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for _, option := range options {
		option(p)
	}
	if p.budget <= 0 {
		log.Warn().Msgf("planner has no time budget (%s): decisions will default to the first direction", p.budget)
	}
	return p
}

// Decision is a chosen action plus diagnostics for the caller.
type Decision struct {
	Action     game.Action
	Mode       string // "explore" or "mc"
	Iterations int    // rollouts run; zero for explore decisions
	Means      [game.NumActions]float64
}

// ChooseAction returns the action to take from the current state. It never
// fails: with no budget and no legal exploration move it still returns the
// first-enumerated direction.
func (p *Planner) ChooseAction(gs *game.GridState) Decision {
	if p.cfg.PartialObs && Stuck(gs, p.cfg) {
		if d, ok := p.explore(gs); ok {
			return d
		}
	}
	return p.search(gs)
}

// explore ranks the legal directions by unseen cells in sensor range and
// returns the best immediately, bypassing sampling for this decision.
// Reports false when every direction is blocked.
func (p *Planner) explore(gs *game.GridState) (Decision, bool) {
	best := -1
	bestScore := 0
	for i, a := range game.Directions {
		target := gs.Agent.Step(a)
		if !gs.InBounds(target) || gs.Obstacle(target) {
			continue
		}
		score := UnseenAround(gs, target, p.cfg.ObsRadius)
		if best < 0 || score > bestScore {
			best = i
			bestScore = score
		}
	}
	if best < 0 {
		return Decision{}, false
	}
	return Decision{Action: game.Directions[best], Mode: "explore"}, true
}

// search runs the anytime loop: full passes over the four directions, one
// rollout each, until the deadline. The deadline is checked once per
// rollout, so the worst-case overrun is a single bounded rollout.
func (p *Planner) search(gs *game.GridState) Decision {
	horizon := HorizonFullObs
	if p.cfg.PartialObs {
		horizon = HorizonPartialObs
	}

	var sums [game.NumActions]float64
	var counts [game.NumActions]int
	iterations := 0

	start := time.Now()
	for time.Since(start) < p.budget {
		for i, a := range game.Directions {
			if time.Since(start) >= p.budget {
				break
			}
			sums[i] += rollout(gs, a, horizon, p.cfg, p.rng)
			counts[i]++
			iterations++
		}
	}

	d := Decision{Mode: "mc", Iterations: iterations}
	for i := range d.Means {
		if counts[i] == 0 {
			d.Means[i] = math.Inf(-1) // Never selected
		} else {
			d.Means[i] = sums[i] / float64(counts[i])
		}
	}

	best := 0
	for i := 1; i < game.NumActions; i++ {
		if d.Means[i] > d.Means[best] {
			best = i
		}
	}
	d.Action = game.Directions[best]

	if iterations > 0 && p.rng.Float64() < ExplorationRatio {
		d.Action = p.pickAmongTop(d.Means)
	}
	return d
}

// pickAmongTop selects uniformly among the best half (at least two) of the
// directions by mean score. Directions without a single sample are excluded:
// an interrupted first pass must not promote an unsampled direction.
func (p *Planner) pickAmongTop(means [game.NumActions]float64) game.Action {
	order := make([]int, 0, game.NumActions)
	for i, mean := range means {
		if !math.IsInf(mean, -1) {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return means[order[a]] > means[order[b]]
	})
	top := game.NumActions / 2
	if top < 2 {
		top = 2
	}
	if top > len(order) {
		top = len(order)
	}
	return game.Directions[order[p.rng.Intn(top)]]
}
