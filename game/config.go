package game

import (
	"fmt"
	"time"
)

// AdversaryType selects how the adversary moves in multi-agent mode.
type AdversaryType string

const (
	AdversaryRandom AdversaryType = "random"
	AdversaryChaser AdversaryType = "chaser"
)

// Config carries every environment and shaping knob consumed by the
// transition engine and the planner. Tuning constants live here rather than
// at package level so multiple planner instances never interfere.
type Config struct {
	Width  int
	Height int

	PartialObs  bool
	ObsRadius   int
	SensorNoise float64 // chance a new reveal is suppressed

	SlipProb         float64 // chance the chosen action is substituted
	DynamicObstacles bool
	ObstacleDensity  float64
	Episodic         bool

	MultiAgent bool
	Adversary  AdversaryType

	Budget time.Duration // per-decision planning budget

	// Real-step rewards
	StepReward       float64
	GoalReward       float64
	CollisionPenalty float64

	// Rollout shaping
	DistanceWeight   float64
	InfoGainWeight   float64
	LoopPenalty      float64
	RolloutGoalBonus float64

	// Ticks without a best-distance improvement before the agent counts as
	// stalled.
	StallTicks int
}

func DefaultConfig() Config {
	return Config{
		Width:            15,
		Height:           15,
		PartialObs:       true,
		ObsRadius:        3,
		SensorNoise:      0.1,
		SlipProb:         0.1,
		DynamicObstacles: true,
		ObstacleDensity:  0.12,
		Episodic:         true,
		Adversary:        AdversaryRandom,
		Budget:           30 * time.Millisecond,
		StepReward:       -0.05,
		GoalReward:       10,
		CollisionPenalty: -1,
		DistanceWeight:   0.02,
		InfoGainWeight:   0.02,
		LoopPenalty:      0.10,
		RolloutGoalBonus: 5,
		StallTicks:       18,
	}
}

// Validate rejects malformed configuration eagerly, before any model is
// built. The transition and planning logic never re-checks these.
func (c Config) Validate() error {
	if c.Width < 2 || c.Height < 2 {
		return fmt.Errorf("grid must be at least 2x2, got %dx%d", c.Width, c.Height)
	}
	if c.ObsRadius < 0 {
		return fmt.Errorf("observation radius must be non-negative, got %d", c.ObsRadius)
	}
	if c.SensorNoise < 0 || c.SensorNoise > 1 {
		return fmt.Errorf("sensor noise must be in [0,1], got %v", c.SensorNoise)
	}
	if c.SlipProb < 0 || c.SlipProb > 1 {
		return fmt.Errorf("slip probability must be in [0,1], got %v", c.SlipProb)
	}
	if c.ObstacleDensity < 0 || c.ObstacleDensity >= 1 {
		return fmt.Errorf("obstacle density must be in [0,1), got %v", c.ObstacleDensity)
	}
	cells := c.Width * c.Height
	reserved := 2 // agent and goal
	if c.MultiAgent {
		reserved = 3
	}
	if quota := int(c.ObstacleDensity * float64(cells)); quota > cells-reserved {
		return fmt.Errorf("obstacle quota %d exceeds the %d placeable cells on a %dx%d grid",
			quota, cells-reserved, c.Width, c.Height)
	}
	if c.MultiAgent && c.Adversary != AdversaryRandom && c.Adversary != AdversaryChaser {
		return fmt.Errorf("unknown adversary type %q", c.Adversary)
	}
	if c.StallTicks <= 0 {
		return fmt.Errorf("stall ticks must be positive, got %d", c.StallTicks)
	}
	return nil
}
