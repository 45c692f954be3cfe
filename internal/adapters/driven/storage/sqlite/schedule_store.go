package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/regtrack/internal/core/domain"
	"github.com/custodia-labs/regtrack/internal/core/ports/driven"
)

// scheduleStore implements driven.ScheduleStore over the ingest_schedule
// and scheduled_runs tables.
type scheduleStore struct {
	store *Store
}

var _ driven.ScheduleStore = (*scheduleStore)(nil)

// LoadSchedule returns the saved schedule, or nil and no error if none exists.
func (s *scheduleStore) LoadSchedule(ctx context.Context) (*domain.IngestSchedule, error) {
	var sched domain.IngestSchedule
	var intervalSeconds int64
	var enabled int
	var nextRun, lastRun, lastSuccess, lastError sql.NullString

	err := s.store.db.QueryRowContext(ctx, `
		SELECT interval_seconds, enabled, next_run, last_run, last_success, last_error
		FROM ingest_schedule WHERE id = 1
	`).Scan(&intervalSeconds, &enabled, &nextRun, &lastRun, &lastSuccess, &lastError)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading ingest schedule: %w", err)
	}

	sched.Interval = time.Duration(intervalSeconds) * time.Second
	sched.Enabled = enabled == 1
	sched.NextRun = parseNullableTime(nextRun)
	sched.LastRun = parseNullableTime(lastRun)
	sched.LastSuccess = parseNullableTime(lastSuccess)
	sched.LastError = lastError.String
	return &sched, nil
}

// SaveSchedule replaces the saved schedule.
func (s *scheduleStore) SaveSchedule(ctx context.Context, sched *domain.IngestSchedule) error {
	if sched == nil {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO ingest_schedule (id, interval_seconds, enabled, next_run, last_run, last_success, last_error)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			interval_seconds = excluded.interval_seconds,
			enabled = excluded.enabled,
			next_run = excluded.next_run,
			last_run = excluded.last_run,
			last_success = excluded.last_success,
			last_error = excluded.last_error
	`, int64(sched.Interval/time.Second), boolToInt(sched.Enabled),
		formatNullableTime(sched.NextRun), formatNullableTime(sched.LastRun),
		formatNullableTime(sched.LastSuccess), nullString(sched.LastError))
	if err != nil {
		return fmt.Errorf("saving ingest schedule: %w", err)
	}
	return nil
}

// AppendRun records a finished scheduled run.
func (s *scheduleStore) AppendRun(ctx context.Context, run *domain.ScheduledRun) error {
	if run == nil {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO scheduled_runs (run_id, snapshot_date, started_at, ended_at, total, processed, failed, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, nullString(run.RunID), domain.FormatDate(run.SnapshotDate),
		formatTime(run.StartedAt), formatTime(run.EndedAt),
		run.Total, run.Processed, run.Failed, nullString(run.Error))
	if err != nil {
		return fmt.Errorf("recording scheduled run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *scheduleStore) RecentRuns(ctx context.Context, limit int) ([]domain.ScheduledRun, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT run_id, snapshot_date, started_at, ended_at, total, processed, failed, error
		FROM scheduled_runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying scheduled runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.ScheduledRun //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanScheduledRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scheduled runs: %w", err)
	}
	return runs, nil
}

// PruneRuns deletes all but the newest keep runs.
func (s *scheduleStore) PruneRuns(ctx context.Context, keep int) error {
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM scheduled_runs
		WHERE id NOT IN (
			SELECT id FROM scheduled_runs ORDER BY started_at DESC, id DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning scheduled runs: %w", err)
	}
	return nil
}

func scanScheduledRun(row rowScanner) (domain.ScheduledRun, error) {
	var run domain.ScheduledRun
	var runID, errMsg sql.NullString
	var date, startedAt, endedAt string

	if err := row.Scan(&runID, &date, &startedAt, &endedAt,
		&run.Total, &run.Processed, &run.Failed, &errMsg); err != nil {
		return run, fmt.Errorf("scanning scheduled run: %w", err)
	}

	parsed, err := domain.ParseDate(date)
	if err != nil {
		return run, fmt.Errorf("parsing run date %q: %w", date, err)
	}
	run.RunID = runID.String
	run.SnapshotDate = parsed
	run.StartedAt = parseTime(startedAt)
	run.EndedAt = parseTime(endedAt)
	run.Error = errMsg.String
	return run, nil
}
