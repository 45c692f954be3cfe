package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/regtrack/internal/core/domain"
)

// ProgressFunc is called before each agency of a batch run is processed.
// current is 1-based.
type ProgressFunc func(current, total int, record domain.AgencyRecord)

// IngestService computes and stores agency snapshots.
type IngestService interface {
	// IngestAll ingests every agency in the catalog for the snapshot date.
	// Individual agency failures are recorded in the run, not returned.
	// An error is returned only when the catalog cannot be obtained or ctx ends.
	IngestAll(ctx context.Context, snapshotDate time.Time) (*domain.IngestRun, error)

	// IngestAgency ingests a single agency record for the snapshot date.
	IngestAgency(ctx context.Context, record domain.AgencyRecord, snapshotDate time.Time) (*domain.Snapshot, error)

	// IngestDates runs IngestAll for each distinct date in ascending order.
	IngestDates(ctx context.Context, dates []time.Time) ([]*domain.IngestRun, error)

	// ListCatalog returns the agency catalog as of a date without ingesting anything.
	ListCatalog(ctx context.Context, asOf time.Time) ([]domain.AgencyRecord, error)

	// SetProgressFunc installs a progress callback for batch runs. nil disables it.
	SetProgressFunc(fn ProgressFunc)
}
