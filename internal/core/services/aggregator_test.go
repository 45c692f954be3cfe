package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/regtrack/internal/analysis"
	"github.com/custodia-labs/regtrack/internal/core/domain"
)

const asOf = "2024-01-15"

func newTestAggregator(structures map[int]*domain.StructureNode) (*Aggregator, *mockStructureSource) {
	source := newMockStructureSource(structures)
	return NewAggregator(source, NewStructureCache(), nil), source
}

func TestAggregator_SingleSection(t *testing.T) {
	agg, _ := newTestAggregator(map[int]*domain.StructureNode{
		1: sectionNode("Test Section", 550),
	})

	m, err := agg.Aggregate(context.Background(), []domain.CodeReference{{Title: 1}}, asOf)

	require.NoError(t, err)
	assert.Equal(t, 100, m.WordCount)
	assert.Equal(t, 1, m.SectionCount)
	assert.Equal(t, int64(550), m.Metrics.TotalSizeBytes)
	assert.Equal(t, asOf, m.Metrics.APIDateUsed)
	assert.Equal(t, analysis.Checksum(550, 1, "Test Section"), m.Checksum)
}

func TestAggregator_UsesNamedChapterOnly(t *testing.T) {
	title := &domain.StructureNode{
		Type: domain.NodeTypeTitle,
		Size: 99999,
		Children: []*domain.StructureNode{
			{
				Type: domain.NodeTypeChapter, Identifier: "I", Label: "Chapter I", Size: 1000,
				Children: []*domain.StructureNode{sectionNode("one", 0), sectionNode("two", 0)},
			},
			{
				Type: domain.NodeTypeChapter, Identifier: "IV", Label: "Chapter IV", Size: 110,
				Children: []*domain.StructureNode{sectionNode("four", 0)},
			},
		},
	}
	agg, _ := newTestAggregator(map[int]*domain.StructureNode{12: title})

	m, err := agg.Aggregate(context.Background(), []domain.CodeReference{{Title: 12, Chapter: "IV"}}, asOf)

	require.NoError(t, err)
	assert.Equal(t, int64(110), m.Metrics.TotalSizeBytes)
	assert.Equal(t, 20, m.WordCount)
	assert.Equal(t, 1, m.SectionCount)
	assert.Equal(t, analysis.Checksum(110, 1, "Chapter IV four"), m.Checksum)
}

func TestAggregator_UnknownChapterFallsBackToTitle(t *testing.T) {
	title := &domain.StructureNode{
		Type: domain.NodeTypeTitle,
		Size: 550,
		Children: []*domain.StructureNode{
			{Type: domain.NodeTypeChapter, Identifier: "I", Children: []*domain.StructureNode{sectionNode("s", 0)}},
		},
	}
	agg, _ := newTestAggregator(map[int]*domain.StructureNode{12: title})

	m, err := agg.Aggregate(context.Background(), []domain.CodeReference{{Title: 12, Chapter: "XL"}}, asOf)

	require.NoError(t, err)
	assert.Equal(t, 100, m.WordCount)
	assert.Equal(t, 1, m.SectionCount)
}

func TestAggregator_AbsentStructureYieldsZeroMetrics(t *testing.T) {
	agg, _ := newTestAggregator(nil)

	m, err := agg.Aggregate(context.Background(), []domain.CodeReference{{Title: 5}}, asOf)

	require.NoError(t, err)
	assert.Zero(t, m.WordCount)
	assert.Zero(t, m.SectionCount)
	assert.Zero(t, m.Metrics.TotalSizeBytes)
	assert.Empty(t, m.Metrics.IndustryScores)
	assert.Equal(t, analysis.Checksum(0, 0, ""), m.Checksum)
}

func TestAggregator_SkipsReferencesWithoutTitle(t *testing.T) {
	agg, source := newTestAggregator(map[int]*domain.StructureNode{1: sectionNode("x", 55)})

	m, err := agg.Aggregate(context.Background(), []domain.CodeReference{{Chapter: "I"}, {Title: 1}}, asOf)

	require.NoError(t, err)
	assert.Equal(t, 10, m.WordCount)
	assert.Equal(t, map[int]int{1: 1}, source.calls)
}

func TestAggregator_BankKeywordScore(t *testing.T) {
	label := strings.TrimSpace(strings.Repeat("bank ", 20))
	agg, _ := newTestAggregator(map[int]*domain.StructureNode{
		1: sectionNode(label, 55000),
	})

	m, err := agg.Aggregate(context.Background(), []domain.CodeReference{{Title: 1}}, asOf)

	require.NoError(t, err)
	require.Equal(t, 10000, m.WordCount)
	finance, ok := m.Metrics.IndustryScores.Get("finance")
	require.True(t, ok)
	assert.Equal(t, 20, finance.Matches)
	assert.InDelta(t, 20.0, finance.Score, 1e-9)
	assert.Equal(t, "finance", m.Metrics.IndustryScores[0].Key)
}

func TestAggregator_CombinesReferencesInOrder(t *testing.T) {
	structures := map[int]*domain.StructureNode{
		1: sectionNode("alpha", 55),
		2: sectionNode("beta", 110),
	}
	agg, _ := newTestAggregator(structures)
	forward, err := agg.Aggregate(context.Background(), []domain.CodeReference{{Title: 1}, {Title: 2}}, asOf)
	require.NoError(t, err)

	agg2, _ := newTestAggregator(structures)
	reverse, err := agg2.Aggregate(context.Background(), []domain.CodeReference{{Title: 2}, {Title: 1}}, asOf)
	require.NoError(t, err)

	assert.Equal(t, 30, forward.WordCount)
	assert.Equal(t, 2, forward.SectionCount)
	assert.Equal(t, analysis.Checksum(165, 2, "alpha beta"), forward.Checksum)
	assert.Equal(t, forward.WordCount, reverse.WordCount)
	assert.NotEqual(t, forward.Checksum, reverse.Checksum)
}

func TestAggregator_RepeatedReferenceCountsTwice(t *testing.T) {
	agg, source := newTestAggregator(map[int]*domain.StructureNode{1: sectionNode("x", 55)})

	m, err := agg.Aggregate(context.Background(), []domain.CodeReference{{Title: 1}, {Title: 1}}, asOf)

	require.NoError(t, err)
	assert.Equal(t, 20, m.WordCount)
	assert.Equal(t, 2, m.SectionCount)
	assert.Equal(t, 1, source.calls[1])
}

func TestAggregator_Cancelled(t *testing.T) {
	agg, _ := newTestAggregator(map[int]*domain.StructureNode{1: sectionNode("x", 55)})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m, err := agg.Aggregate(ctx, []domain.CodeReference{{Title: 1}}, asOf)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, m)
}
