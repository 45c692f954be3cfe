package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/regtrack/internal/core/domain"
	"github.com/custodia-labs/regtrack/internal/core/ports/driven"
)

// Ensure the wrappers implement the interfaces.
var (
	_ driven.AgencyStore   = (*AgencyStore)(nil)
	_ driven.SnapshotStore = (*SnapshotStore)(nil)
)

type snapshotKey struct {
	agencyID int64
	date     string
}

// Store holds agencies and snapshots in memory with the same uniqueness and
// cascade rules as the SQLite store.
type Store struct {
	mu           sync.RWMutex
	agencies     map[int64]domain.Agency
	bySlug       map[string]int64
	snapshots    map[snapshotKey]domain.Snapshot
	nextAgency   int64
	nextSnapshot int64
	now          func() time.Time
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		agencies:  make(map[int64]domain.Agency),
		bySlug:    make(map[string]int64),
		snapshots: make(map[snapshotKey]domain.Snapshot),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// AgencyStore returns the AgencyStore view of the store.
func (s *Store) AgencyStore() *AgencyStore {
	return &AgencyStore{s: s}
}

// SnapshotStore returns the SnapshotStore view of the store.
func (s *Store) SnapshotStore() *SnapshotStore {
	return &SnapshotStore{s: s}
}

// AgencyStore is the agency view of a memory Store.
type AgencyStore struct {
	s *Store
}

// FindOrCreate returns the agency with the slug, creating or renaming it as needed.
func (a *AgencyStore) FindOrCreate(_ context.Context, slug, name string) (*domain.Agency, error) {
	s := a.s
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if id, ok := s.bySlug[slug]; ok {
		agency := s.agencies[id]
		if agency.Name != name {
			agency.Name = name
			agency.UpdatedAt = now
			s.agencies[id] = agency
		}
		return &agency, nil
	}

	s.nextAgency++
	agency := domain.Agency{
		ID:        s.nextAgency,
		Slug:      slug,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.agencies[agency.ID] = agency
	s.bySlug[slug] = agency.ID
	return &agency, nil
}

// Get retrieves an agency by ID.
func (a *AgencyStore) Get(_ context.Context, id int64) (*domain.Agency, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()

	agency, ok := a.s.agencies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &agency, nil
}

// GetBySlug retrieves an agency by slug.
func (a *AgencyStore) GetBySlug(_ context.Context, slug string) (*domain.Agency, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()

	id, ok := a.s.bySlug[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	agency := a.s.agencies[id]
	return &agency, nil
}

// List returns all agencies ordered by name, then slug.
func (a *AgencyStore) List(_ context.Context) ([]domain.Agency, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()

	result := make([]domain.Agency, 0, len(a.s.agencies))
	for _, agency := range a.s.agencies {
		result = append(result, agency)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].Slug < result[j].Slug
	})
	return result, nil
}

// Delete removes an agency and its snapshots.
func (a *AgencyStore) Delete(_ context.Context, id int64) error {
	s := a.s
	s.mu.Lock()
	defer s.mu.Unlock()

	agency, ok := s.agencies[id]
	if !ok {
		return nil
	}
	delete(s.agencies, id)
	delete(s.bySlug, agency.Slug)
	for key := range s.snapshots {
		if key.agencyID == id {
			delete(s.snapshots, key)
		}
	}
	return nil
}

// SnapshotStore is the snapshot view of a memory Store.
type SnapshotStore struct {
	s *Store
}

// Upsert writes the snapshot keyed by (AgencyID, SnapshotDate).
// ID and CreatedAt survive a replacement; the caller's snapshot is updated in place.
func (ss *SnapshotStore) Upsert(_ context.Context, snapshot *domain.Snapshot) error {
	s := ss.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.agencies[snapshot.AgencyID]; !ok {
		return fmt.Errorf("agency %d: %w", snapshot.AgencyID, domain.ErrNotFound)
	}

	now := s.now()
	snapshot.SnapshotDate = domain.TruncateDate(snapshot.SnapshotDate)
	key := snapshotKey{agencyID: snapshot.AgencyID, date: snapshot.Date()}

	if existing, ok := s.snapshots[key]; ok {
		snapshot.ID = existing.ID
		snapshot.CreatedAt = existing.CreatedAt
	} else {
		s.nextSnapshot++
		snapshot.ID = s.nextSnapshot
		snapshot.CreatedAt = now
	}
	snapshot.UpdatedAt = now

	stored := *snapshot
	stored.Metrics.IndustryScores = append(domain.IndustryScores{}, snapshot.Metrics.IndustryScores...)
	s.snapshots[key] = stored
	return nil
}

// Get retrieves the snapshot for an agency on a date (YYYY-MM-DD).
func (ss *SnapshotStore) Get(_ context.Context, agencyID int64, date string) (*domain.Snapshot, error) {
	ss.s.mu.RLock()
	defer ss.s.mu.RUnlock()

	snap, ok := ss.s.snapshots[snapshotKey{agencyID: agencyID, date: date}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &snap, nil
}

// ListByAgency returns an agency's snapshots, oldest first.
func (ss *SnapshotStore) ListByAgency(_ context.Context, agencyID int64) ([]domain.Snapshot, error) {
	ss.s.mu.RLock()
	defer ss.s.mu.RUnlock()

	var result []domain.Snapshot
	for key, snap := range ss.s.snapshots {
		if key.agencyID == agencyID {
			result = append(result, snap)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SnapshotDate.Before(result[j].SnapshotDate)
	})
	return result, nil
}

// Count returns the total number of snapshots.
func (ss *SnapshotStore) Count(_ context.Context) (int, error) {
	ss.s.mu.RLock()
	defer ss.s.mu.RUnlock()
	return len(ss.s.snapshots), nil
}
