package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/regtrack/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "regtrack-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

func testDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

// ==================== Store Tests ====================

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "regtrack.db"), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)

	version, err := store.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}

func TestNewStore_ReopenIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	_, err = first.AgencyStore().FindOrCreate(context.Background(), "epa", "EPA")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	agency, err := second.AgencyStore().GetBySlug(context.Background(), "epa")
	require.NoError(t, err)
	assert.Equal(t, "EPA", agency.Name)
}

func TestStore_MigrateAppliesNewVersionsOnly(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	fsys := fstest.MapFS{
		"001_initial.up.sql":         {Data: []byte("this would fail if re-applied")},
		"002_ingest_schedule.up.sql": {Data: []byte("so would this")},
		"003_notes.up.sql":           {Data: []byte("CREATE TABLE notes (id INTEGER PRIMARY KEY);")},
		"README.md":                  {Data: []byte("ignored")},
	}
	require.NoError(t, store.migrate(ctx, fsys))

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, version)

	_, err = store.db.ExecContext(ctx, "INSERT INTO notes (id) VALUES (1)")
	assert.NoError(t, err)
}

func TestStore_MigrateFailureRollsBack(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	fsys := fstest.MapFS{
		"003_broken.up.sql": {Data: []byte("CREATE TABLE ok (id INTEGER); NOT SQL AT ALL;")},
	}
	assert.Error(t, store.migrate(ctx, fsys))

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}

// ==================== AgencyStore Tests ====================

func TestAgencyStore_FindOrCreate(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	agencies := store.AgencyStore()

	created, err := agencies.FindOrCreate(ctx, "epa", "Environmental Protection Agency")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "epa", created.Slug)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := agencies.FindOrCreate(ctx, "epa", "Environmental Protection Agency")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.True(t, created.UpdatedAt.Equal(found.UpdatedAt), "unchanged name keeps updated_at")

	renamed, err := agencies.FindOrCreate(ctx, "epa", "EPA")
	require.NoError(t, err)
	assert.Equal(t, created.ID, renamed.ID)
	assert.Equal(t, "EPA", renamed.Name)
	assert.True(t, created.CreatedAt.Equal(renamed.CreatedAt))

	list, err := agencies.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAgencyStore_GetNotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.AgencyStore().Get(ctx, 123)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.AgencyStore().GetBySlug(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAgencyStore_ListOrderedByName(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	agencies := store.AgencyStore()

	for slug, name := range map[string]string{"t": "Treasury", "a": "Agriculture", "l": "Labor"} {
		_, err := agencies.FindOrCreate(ctx, slug, name)
		require.NoError(t, err)
	}

	list, err := agencies.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Agriculture", "Labor", "Treasury"}, []string{list[0].Name, list[1].Name, list[2].Name})
}

// ==================== SnapshotStore Tests ====================

func TestSnapshotStore_UpsertAndGet(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	agency, err := store.AgencyStore().FindOrCreate(ctx, "epa", "EPA")
	require.NoError(t, err)

	snap := &domain.Snapshot{
		AgencyID:       agency.ID,
		SnapshotDate:   testDate(t, "2024-01-15"),
		WordCount:      100,
		SectionCount:   1,
		ChecksumSHA256: "deadbeef",
		Metrics: domain.Metrics{
			TotalSizeBytes: 550,
			APIDateUsed:    "2024-01-15",
			IndustryScores: domain.IndustryScores{
				{Key: "environment", Name: "Environment", Score: 12.5, Matches: 3, Color: "teal"},
				{Key: "energy", Name: "Energy", Score: 4, Matches: 1, Color: "amber"},
			},
		},
	}
	require.NoError(t, store.SnapshotStore().Upsert(ctx, snap))
	assert.NotZero(t, snap.ID)

	got, err := store.SnapshotStore().Get(ctx, agency.ID, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)
	assert.Equal(t, "2024-01-15", got.Date())
	assert.Equal(t, 100, got.WordCount)
	assert.Equal(t, 1, got.SectionCount)
	assert.Equal(t, "deadbeef", got.ChecksumSHA256)
	assert.Equal(t, snap.Metrics, got.Metrics)
	assert.Equal(t, "environment", got.Metrics.IndustryScores[0].Key)
}

func TestSnapshotStore_UpsertReplacesAndKeepsCreatedAt(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	snapshots := store.SnapshotStore()

	agency, err := store.AgencyStore().FindOrCreate(ctx, "epa", "EPA")
	require.NoError(t, err)

	clock := time.Date(2024, 1, 15, 6, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	first := &domain.Snapshot{AgencyID: agency.ID, SnapshotDate: testDate(t, "2024-01-15"), WordCount: 100}
	require.NoError(t, snapshots.Upsert(ctx, first))

	clock = clock.Add(2 * time.Hour)
	second := &domain.Snapshot{AgencyID: agency.ID, SnapshotDate: testDate(t, "2024-01-15"), WordCount: 300, SectionCount: 7}
	require.NoError(t, snapshots.Upsert(ctx, second))

	count, err := snapshots.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := snapshots.Get(ctx, agency.ID, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, 300, got.WordCount)
	assert.Equal(t, 7, got.SectionCount)
	assert.True(t, got.CreatedAt.Equal(time.Date(2024, 1, 15, 6, 0, 0, 0, time.UTC)))
	assert.True(t, got.UpdatedAt.Equal(clock))
	assert.True(t, second.CreatedAt.Equal(got.CreatedAt))
}

func TestSnapshotStore_UpsertUnknownAgencyFails(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.SnapshotStore().Upsert(context.Background(), &domain.Snapshot{
		AgencyID:     999,
		SnapshotDate: testDate(t, "2024-01-15"),
	})
	assert.Error(t, err)
}

func TestSnapshotStore_ListByAgencyAscending(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	agency, err := store.AgencyStore().FindOrCreate(ctx, "epa", "EPA")
	require.NoError(t, err)
	other, err := store.AgencyStore().FindOrCreate(ctx, "dot", "DOT")
	require.NoError(t, err)

	for _, d := range []string{"2024-06-01", "2023-12-31", "2024-01-15"} {
		require.NoError(t, store.SnapshotStore().Upsert(ctx, &domain.Snapshot{AgencyID: agency.ID, SnapshotDate: testDate(t, d)}))
	}
	require.NoError(t, store.SnapshotStore().Upsert(ctx, &domain.Snapshot{AgencyID: other.ID, SnapshotDate: testDate(t, "2024-01-01")}))

	list, err := store.SnapshotStore().ListByAgency(ctx, agency.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2023-12-31", list[0].Date())
	assert.Equal(t, "2024-01-15", list[1].Date())
	assert.Equal(t, "2024-06-01", list[2].Date())
}

func TestSnapshotStore_CorruptMetricsReadAsEmpty(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	agency, err := store.AgencyStore().FindOrCreate(ctx, "epa", "EPA")
	require.NoError(t, err)
	require.NoError(t, store.SnapshotStore().Upsert(ctx, &domain.Snapshot{
		AgencyID: agency.ID, SnapshotDate: testDate(t, "2024-01-15"), WordCount: 5,
	}))

	_, err = store.db.ExecContext(ctx, "UPDATE agency_snapshots SET metrics_json = 'not json'")
	require.NoError(t, err)

	got, err := store.SnapshotStore().Get(ctx, agency.ID, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, 5, got.WordCount)
	assert.Equal(t, domain.Metrics{}, got.Metrics)
}

func TestAgencyStore_DeleteCascadesToSnapshots(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	agency, err := store.AgencyStore().FindOrCreate(ctx, "epa", "EPA")
	require.NoError(t, err)
	require.NoError(t, store.SnapshotStore().Upsert(ctx, &domain.Snapshot{AgencyID: agency.ID, SnapshotDate: testDate(t, "2024-01-15")}))

	require.NoError(t, store.AgencyStore().Delete(ctx, agency.ID))

	count, err := store.SnapshotStore().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSnapshotStore_GetNotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.SnapshotStore().Get(context.Background(), 1, "2024-01-15")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
