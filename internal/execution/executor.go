package execution

import (
	"context"
	"time"

	"ccr/internal/domain"
)

// Executor executes test cases and returns results
type Executor interface {
	Execute(ctx context.Context, cases []domain.TestCase) ([]domain.TestResult, time.Duration, error)
}

// Progress receives counts while a run is in flight
type Progress interface {
	Update(completed, passed, failed int)
	Finish()
}
