package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// BudgetConfig identifies one planner configuration under test.
type BudgetConfig struct {
	ID     int
	Budget time.Duration
	Seed   uint64
}

type EpisodeRecord struct {
	Run    string // experiment run ID
	ID     int
	Config int // BudgetConfig.ID
	EpisodeMetric
}

type StepRecord struct {
	Episode int // EpisodeRecord.ID
	StepMetric
}

type Writer struct {
	baseDir string
}

func NewWriter(run string) (*Writer, error) {
	// Create a subfolder named by current timestamp and run ID
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join("experiments", "budget", timestamp+"-"+run)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) WriteBudgetConfigs(configs []BudgetConfig) error {
	path := filepath.Join(w.baseDir, "budget_configs.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create budget configs file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "budget", "seed"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write budget configs header: %w", err)
	}

	for _, config := range configs {
		row := []string{
			strconv.Itoa(config.ID),
			config.Budget.String(),
			strconv.FormatUint(config.Seed, 10),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write budget config row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteEpisodeRecords(records []EpisodeRecord) error {
	path := filepath.Join(w.baseDir, "episodes.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create episodes file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{
		"run", "id", "config", "reached", "ticks", "reward",
		"duration", "decisions", "explorations", "rollouts",
	}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write episodes header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.Run,
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Config),
			strconv.FormatBool(record.Reached),
			strconv.Itoa(record.Ticks),
			strconv.FormatFloat(record.Reward, 'f', 4, 64),
			record.Duration.String(),
			strconv.Itoa(record.Planning.Decisions),
			strconv.Itoa(record.Planning.Explorations),
			strconv.Itoa(record.Planning.Rollouts),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write episode row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteStepRecords(records []StepRecord) error {
	path := filepath.Join(w.baseDir, "steps.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create steps file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"episode", "tick", "action", "reward", "mode", "iterations", "elapsed"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write steps header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Episode),
			strconv.Itoa(record.Tick),
			record.Action,
			strconv.FormatFloat(record.Reward, 'f', 4, 64),
			record.Mode,
			strconv.Itoa(record.Iterations),
			record.Elapsed.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write step row: %w", err)
		}
	}

	return nil
}
