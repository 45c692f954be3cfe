package driven

import (
	"context"

	"github.com/custodia-labs/regtrack/internal/core/domain"
)

// ScheduleStore persists the ingest schedule and the runs it started,
// so a restarted scheduler resumes where it stopped.
type ScheduleStore interface {
	// LoadSchedule returns the saved schedule, or nil and no error if none exists.
	LoadSchedule(ctx context.Context) (*domain.IngestSchedule, error)

	// SaveSchedule replaces the saved schedule.
	SaveSchedule(ctx context.Context, schedule *domain.IngestSchedule) error

	// AppendRun records a finished scheduled run.
	AppendRun(ctx context.Context, run *domain.ScheduledRun) error

	// RecentRuns returns up to limit runs, newest first.
	RecentRuns(ctx context.Context, limit int) ([]domain.ScheduledRun, error)

	// PruneRuns deletes all but the newest keep runs.
	PruneRuns(ctx context.Context, keep int) error
}
