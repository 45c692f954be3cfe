package services

import (
	"context"
	"fmt"
	"math"

	"github.com/custodia-labs/regtrack/internal/core/domain"
	"github.com/custodia-labs/regtrack/internal/core/ports/driven"
	"github.com/custodia-labs/regtrack/internal/core/ports/driving"
)

// Ensure ReportService implements the interface.
var _ driving.ReportService = (*ReportService)(nil)

// ReportService derives change figures from stored snapshots.
type ReportService struct {
	agencies  driven.AgencyStore
	snapshots driven.SnapshotStore
}

// NewReportService creates a report service.
func NewReportService(agencies driven.AgencyStore, snapshots driven.SnapshotStore) *ReportService {
	return &ReportService{
		agencies:  agencies,
		snapshots: snapshots,
	}
}

// ListSummaries returns one summary per agency, ordered by name.
func (s *ReportService) ListSummaries(ctx context.Context) ([]driving.AgencySummary, error) {
	agencies, err := s.agencies.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list agencies: %w", err)
	}

	summaries := make([]driving.AgencySummary, 0, len(agencies))
	for _, agency := range agencies {
		snaps, err := s.snapshots.ListByAgency(ctx, agency.ID)
		if err != nil {
			return nil, fmt.Errorf("list snapshots for %s: %w", agency.Slug, err)
		}
		summaries = append(summaries, summarise(agency, snaps))
	}

	return summaries, nil
}

// AgencyHistory returns an agency's snapshots with per-step changes.
func (s *ReportService) AgencyHistory(ctx context.Context, slug string) (*driving.AgencyHistory, error) {
	agency, err := s.agencies.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get agency %s: %w", slug, err)
	}

	snaps, err := s.snapshots.ListByAgency(ctx, agency.ID)
	if err != nil {
		return nil, fmt.Errorf("list snapshots for %s: %w", slug, err)
	}

	history := &driving.AgencyHistory{
		Agency:    *agency,
		Snapshots: make([]driving.SnapshotChange, 0, len(snaps)),
	}

	for i, snap := range snaps {
		change := driving.SnapshotChange{Snapshot: snap}
		if i > 0 {
			prev := snaps[i-1]
			delta := snap.WordCount - prev.WordCount
			change.ChangeFromPrevious = &delta
			if prev.WordCount != 0 {
				pct := round2(float64(delta) / float64(prev.WordCount) * 100)
				change.PctChange = &pct
			}
		}
		history.Snapshots = append(history.Snapshots, change)
	}

	if len(snaps) >= 2 {
		oldest, latest := snaps[0], snaps[len(snaps)-1]
		growth := latest.WordCount - oldest.WordCount
		rate := 0.0
		if oldest.WordCount != 0 {
			rate = round2(float64(growth) / float64(oldest.WordCount) * 100)
		}
		days := int(latest.SnapshotDate.Sub(oldest.SnapshotDate).Hours() / 24)

		history.TotalGrowthWords = &growth
		history.GrowthRatePct = &rate
		history.DaysTracked = &days
	}

	return history, nil
}

// summarise expects snaps in ascending date order.
func summarise(agency domain.Agency, snaps []domain.Snapshot) driving.AgencySummary {
	summary := driving.AgencySummary{
		Agency:        agency,
		SnapshotCount: len(snaps),
	}
	if len(snaps) == 0 {
		return summary
	}

	latest := snaps[len(snaps)-1]
	oldest := snaps[0]
	summary.Latest = &latest
	summary.Oldest = &oldest

	if len(snaps) < 2 {
		return summary
	}

	previous := snaps[len(snaps)-2]
	summary.Previous = &previous
	change := latest.WordCount - previous.WordCount
	summary.ChangeFromPrevious = &change

	if oldest.WordCount != 0 {
		rate := round2(float64(latest.WordCount-oldest.WordCount) / float64(oldest.WordCount) * 100)
		summary.GrowthRatePct = &rate
	}

	return summary
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
