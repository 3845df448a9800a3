package storage

import (
	"time"

	"ccr/internal/config"
	"ccr/internal/domain"
)

// Storage persists and loads test run results (e.g. for the faills viewer).
type Storage interface {
	Save(output *domain.TestResultsOutput) error
	Load() (*domain.TestResultsOutput, error)
}

// RunInfo describes a run independent of its results
type RunInfo struct {
	RunID      string
	Language   string
	AppCommand string
	Workers    int
}

// NewOutput builds the results document for a finished run
func NewOutput(run RunInfo, results []domain.TestResult, failures []domain.TestFailure, duration time.Duration) *domain.TestResultsOutput {
	passed := 0
	failed := 0
	for _, r := range results {
		if r.Success {
			passed++
		} else {
			failed++
		}
	}

	if failures == nil {
		failures = []domain.TestFailure{}
	}

	return &domain.TestResultsOutput{
		Meta: domain.TestResultsMeta{
			RunID:           run.RunID,
			Language:        run.Language,
			AppCommand:      run.AppCommand,
			TotalTestCases:  len(results),
			PassedTestCases: passed,
			FailedTestCases: failed,
			Duration:        duration.String(),
			DurationSeconds: duration.Seconds(),
			Workers:         run.Workers,
			Timestamp:       time.Now().Format(time.RFC3339),
		},
		Details: failures,
	}
}

// JSONStorage stores results in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}

// Multi saves to every storage and loads from the first one
type Multi struct {
	primary Storage
	others  []Storage
}

// NewMulti combines storages; nil entries in others are skipped
func NewMulti(primary Storage, others ...Storage) *Multi {
	m := &Multi{primary: primary}
	for _, s := range others {
		if s != nil {
			m.others = append(m.others, s)
		}
	}
	return m
}

// Save writes to the primary storage first, then to the others
func (m *Multi) Save(output *domain.TestResultsOutput) error {
	if err := m.primary.Save(output); err != nil {
		return err
	}
	for _, s := range m.others {
		if err := s.Save(output); err != nil {
			return err
		}
	}
	return nil
}

// Load reads from the primary storage
func (m *Multi) Load() (*domain.TestResultsOutput, error) {
	return m.primary.Load()
}
