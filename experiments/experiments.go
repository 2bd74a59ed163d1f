package experiments

import (
	"fmt"
	"time"

	"gridworld/engine"
	"gridworld/experiments/metrics"
	"gridworld/game"
	"gridworld/searcher"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// RunBudgetExperiment sweeps the per-decision planning budget and records
// how often the agent reaches the goal, how fast, and how much planning work
// each decision bought.
func RunBudgetExperiment() {
	const NumEpisodes = 20 // Per budget
	configs := []metrics.BudgetConfig{
		{ID: 1, Budget: 5 * time.Millisecond, Seed: 1},
		{ID: 2, Budget: 10 * time.Millisecond, Seed: 2},
		{ID: 3, Budget: 20 * time.Millisecond, Seed: 3},
		{ID: 4, Budget: 50 * time.Millisecond, Seed: 4},
	}

	// Store experiment metadata
	run := uuid.NewString()
	writer, err := metrics.NewWriter(run)
	if err != nil {
		panic(fmt.Sprintf("failed to create experiment writer: %v", err))
	}

	err = writer.WriteBudgetConfigs(configs)
	if err != nil {
		panic(fmt.Sprintf("failed to store budget configs: %v", err))
	}

	log.Info().Msgf("starting budget experiment %s...", run)

	count := 0
	episodeRecords := []metrics.EpisodeRecord{}
	stepRecords := []metrics.StepRecord{}

	for _, config := range configs {
		log.Info().Msgf("starting config %d with budget %s...", config.ID, config.Budget)

		rng := rand.New(rand.NewSource(config.Seed))
		for i := 0; i < NumEpisodes; i++ {
			log.Info().Msgf("starting episode %d of %d...", i+1, NumEpisodes)

			episode, steps := runEpisode(config.Budget, rng)
			count++
			episodeRecords = append(episodeRecords, metrics.EpisodeRecord{
				Run:           run,
				ID:            count,
				Config:        config.ID,
				EpisodeMetric: episode,
			})
			for _, s := range steps {
				stepRecords = append(stepRecords, metrics.StepRecord{
					Episode:    count,
					StepMetric: s,
				})
			}
		}
		log.Info().Msg("completed config")
	}

	log.Info().Msg("completed budget experiment")

	// Store experiment results
	err = writer.WriteEpisodeRecords(episodeRecords)
	if err != nil {
		panic(fmt.Sprintf("failed to write episode records: %v", err))
	}
	err = writer.WriteStepRecords(stepRecords)
	if err != nil {
		panic(fmt.Sprintf("failed to write step records: %v", err))
	}
	log.Info().Msg("stored experiment records")
}

func runEpisode(budget time.Duration, rng *rand.Rand) (metrics.EpisodeMetric, []metrics.StepMetric) {
	cfg := game.DefaultConfig()
	cfg.Budget = budget

	planner := searcher.NewPlanner(cfg, searcher.WithRand(rng))
	eng, err := engine.LocalEngine(cfg, engine.PlannerAgent{Planner: planner}, rng)
	if err != nil {
		panic(fmt.Sprintf("failed to build episode: %v", err))
	}
	return eng.Run()
}
