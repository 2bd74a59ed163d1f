package engine

import (
	"time"

	"gridworld/experiments/metrics"
	"gridworld/game"
	"gridworld/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Agent decides one action per tick.
type Agent interface {
	FindMove(gs *game.GridState) searcher.Decision
}

// PlannerAgent adapts a searcher.Planner to the engine loop.
type PlannerAgent struct {
	Planner *searcher.Planner
}

func (a PlannerAgent) FindMove(gs *game.GridState) searcher.Decision {
	return a.Planner.ChooseAction(gs)
}

// Non-episodic runs and unlucky episodes stop here.
const DefaultMaxTicks = 400

// Engine drives one episode: ask the agent for a decision, apply one real
// tick to the live state, repeat. The live state is mutated only here,
// never concurrently with in-flight planning.
type Engine struct {
	State     *game.GridState
	Agent     Agent
	Config    game.Config
	MaxTicks  int
	rng       *rand.Rand
	collector metrics.Collector
}

func LocalEngine(cfg game.Config, agent Agent, rng *rand.Rand) (*Engine, error) {
	state, err := game.NewGridState(cfg, rng)
	if err != nil {
		return nil, err
	}
	return &Engine{
		State:     state,
		Agent:     agent,
		Config:    cfg,
		MaxTicks:  DefaultMaxTicks,
		rng:       rng,
		collector: metrics.NewCollector(),
	}, nil
}

// Run executes the episode loop until the state is terminal or MaxTicks
// pass, and returns the episode summary plus one metric per step.
func (e *Engine) Run() (metrics.EpisodeMetric, []metrics.StepMetric) {
	e.collector.Start()
	start := time.Now()

	log.Info().Msgf("episode starting: agent=%v goal=%v", e.State.Agent, e.State.Goal)

	var steps []metrics.StepMetric
	for !e.State.Terminal && e.State.Tick < e.MaxTicks {
		decisionStart := time.Now()
		decision := e.Agent.FindMove(e.State)
		elapsed := time.Since(decisionStart)

		before := e.State.CumulativeReward
		e.State.Advance(decision.Action, e.Config, e.rng)

		e.collector.AddDecision(decision.Mode)
		e.collector.AddRollouts(decision.Iterations)
		steps = append(steps, metrics.StepMetric{
			Tick:   e.State.Tick,
			Action: decision.Action.String(),
			Reward: e.State.CumulativeReward - before,
			DecisionMetric: metrics.DecisionMetric{
				Mode:       decision.Mode,
				Iterations: decision.Iterations,
				Elapsed:    elapsed,
			},
		})
	}

	episode := metrics.EpisodeMetric{
		Reached:  e.State.Terminal,
		Ticks:    e.State.Tick,
		Reward:   e.State.CumulativeReward,
		Duration: time.Since(start),
		Planning: e.collector.Complete(),
	}

	if episode.Reached {
		log.Info().Msgf("episode reached the goal at tick %d with reward %.2f", episode.Ticks, episode.Reward)
	} else {
		log.Info().Msgf("episode stopped after %d ticks with reward %.2f", episode.Ticks, episode.Reward)
	}
	return episode, steps
}
