package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/regtrack/internal/core/domain"
	"github.com/custodia-labs/regtrack/internal/core/ports/driven"
)

// snapshotStore implements driven.SnapshotStore.
type snapshotStore struct {
	store *Store
}

var _ driven.SnapshotStore = (*snapshotStore)(nil)

const snapshotColumns = `id, agency_id, snapshot_date, word_count, section_count,
	checksum_sha256, metrics_json, created_at, updated_at`

// Upsert writes the snapshot keyed by (agency_id, snapshot_date).
// A second write for the same key replaces every measured column and keeps
// the original id and created_at, which are copied back into snapshot.
func (s *snapshotStore) Upsert(ctx context.Context, snapshot *domain.Snapshot) error {
	metricsJSON, err := json.Marshal(snapshot.Metrics)
	if err != nil {
		return fmt.Errorf("marshalling metrics: %w", err)
	}

	now := s.store.now()
	snapshot.SnapshotDate = domain.TruncateDate(snapshot.SnapshotDate)

	var id int64
	var createdAt string
	err = s.store.db.QueryRowContext(ctx, `
		INSERT INTO agency_snapshots (agency_id, snapshot_date, word_count, section_count,
			checksum_sha256, metrics_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(agency_id, snapshot_date) DO UPDATE SET
			word_count = excluded.word_count,
			section_count = excluded.section_count,
			checksum_sha256 = excluded.checksum_sha256,
			metrics_json = excluded.metrics_json,
			updated_at = excluded.updated_at
		RETURNING id, created_at
	`, snapshot.AgencyID, snapshot.Date(), snapshot.WordCount, snapshot.SectionCount,
		snapshot.ChecksumSHA256, string(metricsJSON), formatTime(now), formatTime(now),
	).Scan(&id, &createdAt)
	if err != nil {
		return fmt.Errorf("upserting snapshot: %w", err)
	}

	snapshot.ID = id
	snapshot.CreatedAt = parseTime(createdAt)
	snapshot.UpdatedAt = now
	return nil
}

// Get retrieves the snapshot for an agency on a date.
func (s *snapshotStore) Get(ctx context.Context, agencyID int64, date string) (*domain.Snapshot, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+snapshotColumns+" FROM agency_snapshots WHERE agency_id = ? AND snapshot_date = ?",
		agencyID, date)
	return scanSnapshot(row)
}

// ListByAgency returns an agency's snapshots, oldest first.
func (s *snapshotStore) ListByAgency(ctx context.Context, agencyID int64) ([]domain.Snapshot, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+snapshotColumns+" FROM agency_snapshots WHERE agency_id = ? ORDER BY snapshot_date",
		agencyID)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []domain.Snapshot //nolint:prealloc // size unknown from query
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, *snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}

	return snapshots, nil
}

// Count returns the total number of snapshots.
func (s *snapshotStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM agency_snapshots").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting snapshots: %w", err)
	}
	return n, nil
}

// scanSnapshot decodes one row. A corrupt metrics payload reads as empty.
func scanSnapshot(row rowScanner) (*domain.Snapshot, error) {
	var snap domain.Snapshot
	var date, createdAt, updatedAt string
	var metricsJSON sql.NullString

	if err := row.Scan(&snap.ID, &snap.AgencyID, &date, &snap.WordCount, &snap.SectionCount,
		&snap.ChecksumSHA256, &metricsJSON, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning snapshot: %w", err)
	}

	parsed, err := domain.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("parsing snapshot date %q: %w", date, err)
	}
	snap.SnapshotDate = parsed
	snap.Metrics = domain.ParseMetrics(metricsJSON.String)
	snap.CreatedAt = parseTime(createdAt)
	snap.UpdatedAt = parseTime(updatedAt)

	return &snap, nil
}
