package driving

import (
	"context"

	"github.com/custodia-labs/regtrack/internal/core/domain"
)

// ReportService reads stored snapshots and derives change figures.
type ReportService interface {
	// ListSummaries returns one summary per agency, ordered by name.
	ListSummaries(ctx context.Context) ([]AgencySummary, error)

	// AgencyHistory returns the full snapshot history for an agency slug.
	AgencyHistory(ctx context.Context, slug string) (*AgencyHistory, error)
}

// AgencySummary describes an agency's latest position.
type AgencySummary struct {
	Agency domain.Agency

	// Latest, Oldest and Previous are nil when not available.
	Latest   *domain.Snapshot
	Oldest   *domain.Snapshot
	Previous *domain.Snapshot

	// ChangeFromPrevious is latest minus previous word count.
	ChangeFromPrevious *int

	// GrowthRatePct is the percentage word growth from oldest to latest.
	GrowthRatePct *float64

	SnapshotCount int
}

// SnapshotChange is a snapshot with its change from the preceding one.
type SnapshotChange struct {
	Snapshot domain.Snapshot

	// ChangeFromPrevious is nil for the first snapshot.
	ChangeFromPrevious *int

	// PctChange is nil for the first snapshot or when the previous count is zero.
	PctChange *float64
}

// AgencyHistory is an agency's snapshot timeline.
type AgencyHistory struct {
	Agency    domain.Agency
	Snapshots []SnapshotChange

	// The totals below are set only when there are at least two snapshots.
	TotalGrowthWords *int
	GrowthRatePct    *float64
	DaysTracked      *int
}
