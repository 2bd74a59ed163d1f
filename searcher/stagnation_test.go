package searcher

import (
	"testing"

	"gridworld/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// quietConfig disables every stochastic effect so trajectories driven
// through Advance are exactly reproducible.
func quietConfig() game.Config {
	cfg := game.DefaultConfig()
	cfg.SlipProb = 0
	cfg.SensorNoise = 0
	cfg.DynamicObstacles = false
	cfg.ObstacleDensity = 0
	cfg.MultiAgent = false
	return cfg
}

func newQuietState(t *testing.T, cfg game.Config) (*game.GridState, *rand.Rand) {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	gs, err := game.NewGridState(cfg, rng)
	require.NoError(t, err)
	return gs, rng
}

/* spec:
- under 6 recorded positions: never stuck, whatever the pattern
- A-B-A-B alternation: stuck even while best distance improved recently
- pacing within <= 2 distinct cells: stuck
- a 4-cell patrol: not stuck until the best distance goes stale for 18 ticks
*/

func TestStuck(t *testing.T) {
	t.Run("needs at least six recorded positions", func(t *testing.T) {
		cfg := quietConfig()
		cfg.Width, cfg.Height = 3, 3
		gs, rng := newQuietState(t, cfg)

		for _, a := range []game.Action{game.Right, game.Left, game.Right} {
			gs.Advance(a, cfg, rng)
		}

		require.False(t, Stuck(gs, cfg), "Four positions are not enough evidence")
	})

	t.Run("detects A-B-A-B alternation despite recent progress", func(t *testing.T) {
		cfg := quietConfig()
		cfg.Width, cfg.Height = 3, 3
		gs, rng := newQuietState(t, cfg)

		for _, a := range []game.Action{game.Right, game.Left, game.Right, game.Left, game.Right, game.Left} {
			gs.Advance(a, cfg, rng)
		}

		require.Less(t, gs.Tick-gs.BestDistanceTick, cfg.StallTicks,
			"Best distance improved recently, so only the pattern rule can fire")
		require.True(t, Stuck(gs, cfg), "Alternating between two cells is stuck")
	})

	t.Run("detects pacing in place", func(t *testing.T) {
		cfg := quietConfig()
		cfg.Width, cfg.Height = 3, 3
		gs, rng := newQuietState(t, cfg)

		for i := 0; i < 6; i++ {
			gs.Advance(game.Left, cfg, rng) // Off-grid push, agent never moves
		}

		require.True(t, Stuck(gs, cfg), "Six ticks on the same cell is stuck")
	})

	t.Run("a patrol only goes stale once the best distance stalls", func(t *testing.T) {
		cfg := quietConfig()
		cfg.Width, cfg.Height = 3, 3
		gs, rng := newQuietState(t, cfg)

		patrol := []game.Action{game.Right, game.Up, game.Left, game.Down}
		for i := 0; i < 16; i++ {
			gs.Advance(patrol[i%len(patrol)], cfg, rng)
		}
		require.False(t, Stuck(gs, cfg), "Four distinct cells with a fresh best distance is not stuck")

		for i := 16; i < 20; i++ {
			gs.Advance(patrol[i%len(patrol)], cfg, rng)
		}
		require.True(t, Stuck(gs, cfg), "No best-distance improvement for 18 ticks is stuck")
	})
}
