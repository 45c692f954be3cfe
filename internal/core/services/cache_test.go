package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/regtrack/internal/core/domain"
)

func TestStructureCache_LoadsOncePerKey(t *testing.T) {
	cache := NewStructureCache()
	ctx := context.Background()
	calls := 0
	node := &domain.StructureNode{Type: domain.NodeTypeTitle, Size: 10}
	load := func(context.Context) (*domain.StructureNode, error) {
		calls++
		return node, nil
	}

	got, ok := cache.Get(ctx, 40, "2024-01-01", load)
	assert.True(t, ok)
	assert.Same(t, node, got)

	got, ok = cache.Get(ctx, 40, "2024-01-01", load)
	assert.True(t, ok)
	assert.Same(t, node, got)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, cache.Misses())
	assert.Equal(t, 1, cache.Len())
}

func TestStructureCache_KeyIncludesDate(t *testing.T) {
	cache := NewStructureCache()
	ctx := context.Background()
	calls := 0
	load := func(context.Context) (*domain.StructureNode, error) {
		calls++
		return &domain.StructureNode{}, nil
	}

	cache.Get(ctx, 40, "2024-01-01", load)
	cache.Get(ctx, 40, "2024-02-01", load)
	cache.Get(ctx, 41, "2024-01-01", load)

	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, cache.Len())
}

func TestStructureCache_ErrorCachedAsAbsent(t *testing.T) {
	cache := NewStructureCache()
	ctx := context.Background()
	calls := 0
	load := func(context.Context) (*domain.StructureNode, error) {
		calls++
		return nil, errors.New("boom")
	}

	got, ok := cache.Get(ctx, 7, "2024-01-01", load)
	assert.False(t, ok)
	assert.Nil(t, got)

	_, ok = cache.Get(ctx, 7, "2024-01-01", load)
	assert.False(t, ok)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, cache.Len())
}

func TestStructureCache_NilResultCachedAsAbsent(t *testing.T) {
	cache := NewStructureCache()
	calls := 0
	load := func(context.Context) (*domain.StructureNode, error) {
		calls++
		return nil, nil
	}

	_, ok := cache.Get(context.Background(), 7, "2024-01-01", load)
	assert.False(t, ok)
	_, ok = cache.Get(context.Background(), 7, "2024-01-01", load)
	assert.False(t, ok)
	assert.Equal(t, 1, calls)
}

func TestStructureCache_CancelledLoadNotCached(t *testing.T) {
	cache := NewStructureCache()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := cache.Get(ctx, 7, "2024-01-01", func(ctx context.Context) (*domain.StructureNode, error) {
		return nil, ctx.Err()
	})

	assert.False(t, ok)
	assert.Zero(t, cache.Len())
}
