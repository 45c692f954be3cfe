package driving

import (
	"context"

	"github.com/custodia-labs/regtrack/internal/core/domain"
)

// Scheduler runs catalog ingestion periodically.
type Scheduler interface {
	// Start runs the schedule until ctx ends or Stop is called.
	// It returns ErrInvalidInput when the scheduler is disabled.
	Start(ctx context.Context) error

	// Stop ends the loop and waits for an in-flight ingest.
	Stop() error

	// Status returns the saved schedule and the most recent runs.
	Status(ctx context.Context) (*domain.SchedulerStatus, error)
}
