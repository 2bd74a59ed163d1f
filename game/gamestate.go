package game

import (
	"math/bits"

	"golang.org/x/exp/rand"
)

// historyLen bounds recentPositions; only loop detection reads the history.
const historyLen = 16

// bitset is a flat per-cell bit array. Obstacles and observed cells use it
// so that duplicating a full GridState for a rollout is a couple of
// word-slice copies.
type bitset []uint64

func newBitset(n int) bitset { return make(bitset, (n+63)/64) }

func (b bitset) get(i int) bool { return b[i>>6]&(1<<(uint(i)&63)) != 0 }
func (b bitset) set(i int)      { b[i>>6] |= 1 << (uint(i) & 63) }

func (b bitset) count() int {
	total := 0
	for _, w := range b {
		total += bits.OnesCount64(w)
	}
	return total
}

func (b bitset) clone() bitset {
	c := make(bitset, len(b))
	copy(c, b)
	return c
}

// GridState is the full world state for one episode: the grid, the agent,
// the goal, an optional adversary, observation memory, and reward and
// progress bookkeeping. It has pure value semantics: Copy yields a fully
// isolated duplicate, which is what makes cheap rollouts possible.
type GridState struct {
	Width  int
	Height int

	Agent     Cell
	Goal      Cell
	Adversary *Cell // nil unless multi-agent mode

	obstacles bitset
	observed  bitset

	Tick             int
	CumulativeReward float64
	Terminal         bool

	recentPositions  []Cell
	BestDistance     int
	BestDistanceTick int
}

func (gs *GridState) index(c Cell) int { return c.Y*gs.Width + c.X }

func (gs *GridState) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < gs.Width && c.Y >= 0 && c.Y < gs.Height
}

// Obstacle reports whether the cell holds an obstacle.
func (gs *GridState) Obstacle(c Cell) bool { return gs.obstacles.get(gs.index(c)) }

// Observed reports whether the agent has ever perceived the cell.
func (gs *GridState) Observed(c Cell) bool { return gs.observed.get(gs.index(c)) }

// ObservedCount returns how many cells the agent has perceived so far.
func (gs *GridState) ObservedCount() int { return gs.observed.count() }

// RecentPositions returns the agent's last cells, oldest first. The slice is
// owned by the state; callers must not mutate it.
func (gs *GridState) RecentPositions() []Cell { return gs.recentPositions }

// NewGridState builds a fresh episode: agent and goal in opposite corners,
// the adversary (if any) in a third corner, and obstacles scattered
// uniformly at random over the remaining cells.
func NewGridState(cfg Config, rng *rand.Rand) (*GridState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cells := cfg.Width * cfg.Height
	gs := &GridState{
		Width:           cfg.Width,
		Height:          cfg.Height,
		Agent:           Cell{X: 0, Y: cfg.Height - 1},
		Goal:            Cell{X: cfg.Width - 1, Y: 0},
		obstacles:       newBitset(cells),
		observed:        newBitset(cells),
		recentPositions: make([]Cell, 0, historyLen),
	}
	if cfg.MultiAgent {
		adv := Cell{X: cfg.Width - 1, Y: cfg.Height - 1}
		gs.Adversary = &adv
	}

	want := int(cfg.ObstacleDensity * float64(cells))
	for placed := 0; placed < want; {
		c := Cell{X: rng.Intn(cfg.Width), Y: rng.Intn(cfg.Height)}
		if c == gs.Agent || c == gs.Goal || gs.Obstacle(c) {
			continue
		}
		if gs.Adversary != nil && c == *gs.Adversary {
			continue
		}
		gs.obstacles.set(gs.index(c))
		placed++
	}

	// Initial sensor sweep is noise-free so the spawn cell is always known.
	if cfg.PartialObs {
		gs.revealAround(gs.Agent, cfg.ObsRadius, 0, rng)
	} else {
		gs.revealAll()
	}

	gs.BestDistance = Manhattan(gs.Agent, gs.Goal)
	gs.BestDistanceTick = 0
	gs.recentPositions = append(gs.recentPositions, gs.Agent)
	return gs, nil
}

// Copy returns a fully isolated duplicate. Rollouts mutate copies freely
// without any aliasing back to the live state.
func (gs *GridState) Copy() *GridState {
	dup := *gs
	dup.obstacles = gs.obstacles.clone()
	dup.observed = gs.observed.clone()
	dup.recentPositions = make([]Cell, len(gs.recentPositions), historyLen)
	copy(dup.recentPositions, gs.recentPositions)
	if gs.Adversary != nil {
		adv := *gs.Adversary
		dup.Adversary = &adv
	}
	return &dup
}

// revealAround marks every in-bounds cell within the square radius of center
// as observed. Noise suppresses individual new reveals; prior knowledge is
// never removed.
func (gs *GridState) revealAround(center Cell, radius int, noise float64, rng *rand.Rand) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			c := Cell{X: center.X + dx, Y: center.Y + dy}
			if !gs.InBounds(c) {
				continue
			}
			i := gs.index(c)
			if gs.observed.get(i) {
				continue
			}
			if noise > 0 && rng.Float64() < noise {
				continue
			}
			gs.observed.set(i)
		}
	}
}

func (gs *GridState) revealAll() {
	for i := 0; i < gs.Width*gs.Height; i++ {
		gs.observed.set(i)
	}
}
