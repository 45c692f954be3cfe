package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/regtrack/internal/core/domain"
)

// AgencyCatalog lists the agencies to ingest.
type AgencyCatalog interface {
	// ListAgencies returns agency records in catalog order for the as-of date.
	ListAgencies(ctx context.Context, asOf time.Time) ([]domain.AgencyRecord, error)
}
