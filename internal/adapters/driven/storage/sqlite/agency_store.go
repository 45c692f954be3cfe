package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/custodia-labs/regtrack/internal/core/domain"
	"github.com/custodia-labs/regtrack/internal/core/ports/driven"
)

// agencyStore implements driven.AgencyStore.
type agencyStore struct {
	store *Store
}

var _ driven.AgencyStore = (*agencyStore)(nil)

const agencyColumns = "id, slug, name, created_at, updated_at"

// FindOrCreate inserts the agency or, for an existing slug, renames it when the
// name changed. updated_at only moves when the name does.
func (s *agencyStore) FindOrCreate(ctx context.Context, slug, name string) (*domain.Agency, error) {
	now := formatTime(s.store.now())

	row := s.store.db.QueryRowContext(ctx, `
		INSERT INTO agencies (slug, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			name = excluded.name,
			updated_at = CASE WHEN agencies.name <> excluded.name
				THEN excluded.updated_at ELSE agencies.updated_at END
		RETURNING `+agencyColumns,
		slug, name, now, now)

	agency, err := scanAgency(row)
	if err != nil {
		return nil, fmt.Errorf("saving agency %s: %w", slug, err)
	}
	return agency, nil
}

// Get retrieves an agency by ID.
func (s *agencyStore) Get(ctx context.Context, id int64) (*domain.Agency, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+agencyColumns+" FROM agencies WHERE id = ?", id)
	return scanAgency(row)
}

// GetBySlug retrieves an agency by slug.
func (s *agencyStore) GetBySlug(ctx context.Context, slug string) (*domain.Agency, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+agencyColumns+" FROM agencies WHERE slug = ?", slug)
	return scanAgency(row)
}

// List returns all agencies ordered by name.
func (s *agencyStore) List(ctx context.Context) ([]domain.Agency, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+agencyColumns+" FROM agencies ORDER BY name, slug")
	if err != nil {
		return nil, fmt.Errorf("querying agencies: %w", err)
	}
	defer rows.Close()

	var agencies []domain.Agency //nolint:prealloc // size unknown from query
	for rows.Next() {
		agency, err := scanAgency(rows)
		if err != nil {
			return nil, err
		}
		agencies = append(agencies, *agency)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating agencies: %w", err)
	}

	return agencies, nil
}

// Delete removes an agency; its snapshots go with it via ON DELETE CASCADE.
func (s *agencyStore) Delete(ctx context.Context, id int64) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM agencies WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting agency: %w", err)
	}
	return nil
}

func scanAgency(row rowScanner) (*domain.Agency, error) {
	var agency domain.Agency
	var createdAt, updatedAt string

	if err := row.Scan(&agency.ID, &agency.Slug, &agency.Name, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning agency: %w", err)
	}

	agency.CreatedAt = parseTime(createdAt)
	agency.UpdatedAt = parseTime(updatedAt)
	return &agency, nil
}
