package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCatalogUnavailable indicates the agency catalog could not be obtained.
	// An ingestion run cannot proceed without it.
	ErrCatalogUnavailable = errors.New("agency catalog unavailable")

	// ErrStructureUnavailable indicates a title structure could not be fetched.
	ErrStructureUnavailable = errors.New("structure unavailable")
)

// IngestError records the failure of a single agency within an ingestion run.
type IngestError struct {
	Slug string
	Date string
	Err  error
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("ingest agency %s for %s: %v", e.Slug, e.Date, e.Err)
}

// Unwrap returns the underlying cause.
func (e *IngestError) Unwrap() error {
	return e.Err
}
