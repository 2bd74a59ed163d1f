package metrics

import (
	"sync/atomic"
	"time"
)

// DecisionMetric describes one planning call.
type DecisionMetric struct {
	Mode       string
	Iterations int
	Elapsed    time.Duration
}

// StepMetric ties a decision to the tick it produced in an episode.
type StepMetric struct {
	Tick   int
	Action string
	Reward float64
	DecisionMetric
}

// PlanningMetric aggregates the planner's work over an episode.
type PlanningMetric struct {
	Decisions    int
	Explorations int // decisions served by the information fallback
	Rollouts     int
	Duration     time.Duration
}

// EpisodeMetric summarizes one full episode.
type EpisodeMetric struct {
	Reached  bool // whether the agent reached the goal
	Ticks    int
	Reward   float64
	Duration time.Duration
	Planning PlanningMetric
}

type Collector interface {
	Start()
	AddDecision(mode string)
	AddRollouts(n int)
	Complete() PlanningMetric
}

type collector struct {
	startTime    time.Time
	decisions    atomic.Int32
	explorations atomic.Int32
	rollouts     atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
}

func (m *collector) AddDecision(mode string) {
	m.decisions.Add(1)
	if mode == "explore" {
		m.explorations.Add(1)
	}
}

func (m *collector) AddRollouts(n int) {
	m.rollouts.Add(int32(n))
}

func (m *collector) Complete() PlanningMetric {
	return PlanningMetric{
		Decisions:    int(m.decisions.Load()),
		Explorations: int(m.explorations.Load()),
		Rollouts:     int(m.rollouts.Load()),
		Duration:     time.Since(m.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                  {}
func (m *dummyCollector) AddDecision(mode string) {}
func (m *dummyCollector) AddRollouts(n int)       {}
func (m *dummyCollector) Complete() PlanningMetric {
	return PlanningMetric{}
}
