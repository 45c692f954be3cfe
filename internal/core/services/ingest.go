package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/regtrack/internal/analysis"
	"github.com/custodia-labs/regtrack/internal/core/domain"
	"github.com/custodia-labs/regtrack/internal/core/ports/driven"
	"github.com/custodia-labs/regtrack/internal/core/ports/driving"
	"github.com/custodia-labs/regtrack/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService runs the agency ingestion pipeline.
type IngestService struct {
	catalog   driven.AgencyCatalog
	source    driven.StructureSource
	agencies  driven.AgencyStore
	snapshots driven.SnapshotStore
	scorer    *analysis.Scorer

	progress driving.ProgressFunc
	now      func() time.Time
}

// NewIngestService creates an ingest service. A nil scorer uses the default taxonomy.
func NewIngestService(
	catalog driven.AgencyCatalog,
	source driven.StructureSource,
	agencies driven.AgencyStore,
	snapshots driven.SnapshotStore,
	scorer *analysis.Scorer,
) *IngestService {
	if scorer == nil {
		scorer = analysis.NewScorer(domain.DefaultTaxonomy())
	}
	return &IngestService{
		catalog:   catalog,
		source:    source,
		agencies:  agencies,
		snapshots: snapshots,
		scorer:    scorer,
		now:       time.Now,
	}
}

// SetProgressFunc installs a progress callback for batch runs.
func (s *IngestService) SetProgressFunc(fn driving.ProgressFunc) {
	s.progress = fn
}

// ListCatalog returns the agency catalog as of a date.
func (s *IngestService) ListCatalog(ctx context.Context, asOf time.Time) ([]domain.AgencyRecord, error) {
	records, err := s.catalog.ListAgencies(ctx, domain.TruncateDate(asOf))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}
	return records, nil
}

// IngestAll ingests every catalog agency for the snapshot date, one at a time.
func (s *IngestService) IngestAll(ctx context.Context, snapshotDate time.Time) (*domain.IngestRun, error) {
	date := domain.TruncateDate(snapshotDate)
	run := &domain.IngestRun{
		ID:           uuid.NewString(),
		SnapshotDate: date,
		StartedAt:    s.now(),
	}

	records, err := s.ListCatalog(ctx, date)
	if err != nil {
		run.EndedAt = s.now()
		return run, err
	}
	run.Total = len(records)

	logger.Section("Ingest " + domain.FormatDate(date))
	logger.Info("Run %s: ingesting %d agencies for %s", run.ID, run.Total, domain.FormatDate(date))

	agg := NewAggregator(s.source, NewStructureCache(), s.scorer)
	for i, record := range records {
		if err := ctx.Err(); err != nil {
			run.EndedAt = s.now()
			return run, err
		}
		if s.progress != nil {
			s.progress(i+1, run.Total, record)
		}

		if _, err := s.ingestWith(ctx, agg, record, date); err != nil {
			if ctx.Err() != nil {
				run.EndedAt = s.now()
				return run, ctx.Err()
			}
			ingestErr := &domain.IngestError{
				Slug: record.Slug,
				Date: domain.FormatDate(date),
				Err:  err,
			}
			logger.Error("%v", ingestErr)
			run.Failures = append(run.Failures, ingestErr)
			continue
		}
		run.Processed++
	}

	run.EndedAt = s.now()
	logger.Info("Run %s: %d processed, %d failed, %d titles fetched",
		run.ID, run.Processed, run.Failed(), agg.Cache().Misses())

	return run, nil
}

// IngestAgency ingests one agency with a cache scoped to this call.
func (s *IngestService) IngestAgency(ctx context.Context, record domain.AgencyRecord, snapshotDate time.Time) (*domain.Snapshot, error) {
	agg := NewAggregator(s.source, NewStructureCache(), s.scorer)
	return s.ingestWith(ctx, agg, record, domain.TruncateDate(snapshotDate))
}

// IngestDates runs IngestAll once per distinct date, oldest first.
// It stops at the first run that returns an error.
func (s *IngestService) IngestDates(ctx context.Context, dates []time.Time) ([]*domain.IngestRun, error) {
	if len(dates) == 0 {
		return nil, fmt.Errorf("%w: no snapshot dates given", domain.ErrInvalidInput)
	}

	runs := make([]*domain.IngestRun, 0, len(dates))
	for _, date := range uniqueDates(dates) {
		run, err := s.IngestAll(ctx, date)
		if err != nil {
			return runs, fmt.Errorf("ingest %s: %w", domain.FormatDate(date), err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// ingestWith runs the per-agency pipeline. A panic below this point becomes an error
// so a single bad record cannot end the batch.
func (s *IngestService) ingestWith(
	ctx context.Context,
	agg *Aggregator,
	record domain.AgencyRecord,
	date time.Time,
) (snapshot *domain.Snapshot, err error) {
	defer func() {
		if r := recover(); r != nil {
			snapshot = nil
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	if record.Slug == "" {
		return nil, fmt.Errorf("%w: agency slug is empty", domain.ErrInvalidInput)
	}
	if record.Name == "" {
		return nil, fmt.Errorf("%w: agency name is empty", domain.ErrInvalidInput)
	}

	agency, err := s.agencies.FindOrCreate(ctx, record.Slug, record.Name)
	if err != nil {
		return nil, fmt.Errorf("find or create agency: %w", err)
	}

	metrics, err := agg.Aggregate(ctx, record.CodeReferences, domain.FormatDate(date))
	if err != nil {
		return nil, fmt.Errorf("aggregate metrics: %w", err)
	}

	snapshot = &domain.Snapshot{
		AgencyID:       agency.ID,
		SnapshotDate:   date,
		WordCount:      metrics.WordCount,
		SectionCount:   metrics.SectionCount,
		ChecksumSHA256: metrics.Checksum,
		Metrics:        metrics.Metrics,
	}
	if err := s.snapshots.Upsert(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("upsert snapshot: %w", err)
	}

	logger.Debug("Snapshot %s %s: %d words, %d sections",
		record.Slug, domain.FormatDate(date), snapshot.WordCount, snapshot.SectionCount)

	return snapshot, nil
}

func uniqueDates(dates []time.Time) []time.Time {
	seen := make(map[string]bool, len(dates))
	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		d = domain.TruncateDate(d)
		key := domain.FormatDate(d)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
