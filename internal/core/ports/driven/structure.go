package driven

import (
	"context"

	"github.com/custodia-labs/regtrack/internal/core/domain"
)

// StructureSource fetches the structure tree of one regulatory title.
type StructureSource interface {
	// FetchStructure returns the title's structure as of the given date (YYYY-MM-DD).
	// Any failure to produce a usable tree is reported as an error.
	FetchStructure(ctx context.Context, title int, asOfDate string) (*domain.StructureNode, error)
}
