package driven

import (
	"context"

	"github.com/custodia-labs/regtrack/internal/core/domain"
)

// AgencyStore persists agency identities. Slugs are unique.
type AgencyStore interface {
	// FindOrCreate returns the agency with the slug, creating it if needed.
	// An existing agency's name is updated when it differs.
	FindOrCreate(ctx context.Context, slug, name string) (*domain.Agency, error)

	// Get retrieves an agency by ID.
	Get(ctx context.Context, id int64) (*domain.Agency, error)

	// GetBySlug retrieves an agency by slug.
	GetBySlug(ctx context.Context, slug string) (*domain.Agency, error)

	// List returns all agencies ordered by name.
	List(ctx context.Context) ([]domain.Agency, error)

	// Delete removes an agency and, by cascade, its snapshots.
	Delete(ctx context.Context, id int64) error
}

// SnapshotStore persists dated snapshots.
// At most one snapshot exists per (AgencyID, SnapshotDate).
type SnapshotStore interface {
	// Upsert writes the snapshot, fully replacing any row with the same
	// (AgencyID, SnapshotDate). UpdatedAt is refreshed on every write.
	Upsert(ctx context.Context, snapshot *domain.Snapshot) error

	// Get retrieves the snapshot for an agency on a date.
	Get(ctx context.Context, agencyID int64, date string) (*domain.Snapshot, error)

	// ListByAgency returns an agency's snapshots in ascending date order.
	ListByAgency(ctx context.Context, agencyID int64) ([]domain.Snapshot, error)

	// Count returns the total number of snapshots.
	Count(ctx context.Context) (int, error)
}
