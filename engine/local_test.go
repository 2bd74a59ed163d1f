package engine

import (
	"testing"
	"time"

	"gridworld/game"
	"gridworld/searcher"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

type scriptedAgent struct {
	actions []game.Action
	next    int
}

func (s *scriptedAgent) FindMove(gs *game.GridState) searcher.Decision {
	a := s.actions[s.next]
	s.next++
	return searcher.Decision{Action: a, Mode: "mc"}
}

func quietConfig() game.Config {
	cfg := game.DefaultConfig()
	cfg.SlipProb = 0
	cfg.SensorNoise = 0
	cfg.DynamicObstacles = false
	cfg.ObstacleDensity = 0
	cfg.MultiAgent = false
	return cfg
}

func TestRunScriptedEpisode(t *testing.T) {
	cfg := quietConfig()
	cfg.Width, cfg.Height = 5, 5
	cfg.PartialObs = false
	rng := rand.New(rand.NewSource(1))

	agent := &scriptedAgent{actions: []game.Action{
		game.Right, game.Right, game.Right, game.Right,
		game.Up, game.Up, game.Up, game.Up,
	}}
	eng, err := LocalEngine(cfg, agent, rng)
	require.NoError(t, err)

	episode, steps := eng.Run()

	require.True(t, episode.Reached, "The scripted path leads to the goal")
	require.Equal(t, 8, episode.Ticks)
	require.InDelta(t, -0.05*7+10, episode.Reward, 1e-9)
	require.Len(t, steps, 8)
	require.Equal(t, "UP", steps[7].Action)
	require.InDelta(t, 10, steps[7].Reward, 1e-9, "The final step carries the goal reward")
	require.Equal(t, 8, episode.Planning.Decisions)
	require.Equal(t, 0, episode.Planning.Explorations)
}

func TestRunPlannerEpisode(t *testing.T) {
	cfg := quietConfig()
	cfg.Width, cfg.Height = 5, 5
	cfg.Budget = time.Millisecond
	rng := rand.New(rand.NewSource(9))

	planner := searcher.NewPlanner(cfg, searcher.WithRand(rng))
	eng, err := LocalEngine(cfg, PlannerAgent{Planner: planner}, rng)
	require.NoError(t, err)

	episode, steps := eng.Run()

	require.Greater(t, episode.Ticks, 0)
	require.Equal(t, len(steps), episode.Planning.Decisions,
		"One decision per applied step")
	require.Equal(t, episode.Reached, eng.State.Terminal)
}
