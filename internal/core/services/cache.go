package services

import (
	"context"

	"github.com/custodia-labs/regtrack/internal/core/domain"
	"github.com/custodia-labs/regtrack/internal/logger"
)

// StructureLoader fetches a structure tree on a cache miss.
type StructureLoader func(ctx context.Context) (*domain.StructureNode, error)

type structureKey struct {
	title int
	date  string
}

// StructureCache memoizes title structures for the lifetime of one ingestion run.
// Failed lookups are cached as absent so an unavailable title is requested once.
// It is not safe for concurrent use.
type StructureCache struct {
	entries map[structureKey]*domain.StructureNode
	misses  int
}

// NewStructureCache creates an empty cache.
func NewStructureCache() *StructureCache {
	return &StructureCache{
		entries: make(map[structureKey]*domain.StructureNode),
	}
}

// Get returns the structure for (title, date), calling load on the first request.
// The boolean is false when the structure is absent.
func (c *StructureCache) Get(ctx context.Context, title int, date string, load StructureLoader) (*domain.StructureNode, bool) {
	key := structureKey{title: title, date: date}
	if node, ok := c.entries[key]; ok {
		return node, node != nil
	}

	c.misses++
	node, err := load(ctx)
	if err != nil {
		logger.Warn("Could not fetch title %d for %s: %v", title, date, err)
		if ctx.Err() != nil {
			// Cancellation says nothing about the title itself.
			return nil, false
		}
		node = nil
	}

	c.entries[key] = node
	return node, node != nil
}

// Len returns the number of cached keys, absent ones included.
func (c *StructureCache) Len() int {
	return len(c.entries)
}

// Misses returns how many times the loader was invoked.
func (c *StructureCache) Misses() int {
	return c.misses
}
