package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/regtrack/internal/analysis"
	"github.com/custodia-labs/regtrack/internal/core/domain"
	"github.com/custodia-labs/regtrack/internal/core/ports/driven"
	"github.com/custodia-labs/regtrack/internal/logger"
)

// Aggregator computes an agency's metrics from its code references.
// One Aggregator, and its cache, serves a single ingestion run.
type Aggregator struct {
	source driven.StructureSource
	cache  *StructureCache
	scorer *analysis.Scorer
}

// NewAggregator creates an aggregator backed by the given structure source and cache.
func NewAggregator(source driven.StructureSource, cache *StructureCache, scorer *analysis.Scorer) *Aggregator {
	if cache == nil {
		cache = NewStructureCache()
	}
	if scorer == nil {
		scorer = analysis.NewScorer(domain.DefaultTaxonomy())
	}
	return &Aggregator{
		source: source,
		cache:  cache,
		scorer: scorer,
	}
}

// Cache returns the aggregator's structure cache.
func (a *Aggregator) Cache() *StructureCache {
	return a.cache
}

// Aggregate walks every referenced title (or chapter) and combines the results.
// References without a title or whose structure is unavailable contribute nothing.
// The only error returned is context cancellation.
func (a *Aggregator) Aggregate(ctx context.Context, refs []domain.CodeReference, asOfDate string) (*domain.AgencyMetrics, error) {
	var (
		totalSize     int64
		totalSections int
		combined      strings.Builder
	)

	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !ref.HasTitle() {
			continue
		}

		structure, ok := a.cache.Get(ctx, ref.Title, asOfDate, func(ctx context.Context) (*domain.StructureNode, error) {
			return a.source.FetchStructure(ctx, ref.Title, asOfDate)
		})
		if !ok {
			logger.Debug("Skipping title %d: structure unavailable for %s", ref.Title, asOfDate)
			continue
		}

		target := structure
		if chapter := structure.FindChapter(ref.Chapter); chapter != nil {
			target = chapter
		}

		result := analysis.Walk(target)
		totalSize += result.Size
		totalSections += result.Sections
		combined.WriteByte(' ')
		combined.WriteString(result.Text)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	wordCount := analysis.EstimateWordCount(totalSize)
	normalized := analysis.Normalize(combined.String())

	return &domain.AgencyMetrics{
		WordCount:    wordCount,
		SectionCount: totalSections,
		Checksum:     analysis.Checksum(totalSize, totalSections, normalized),
		Metrics: domain.Metrics{
			TotalSizeBytes: totalSize,
			APIDateUsed:    asOfDate,
			IndustryScores: a.scorer.Score(normalized, wordCount),
		},
	}, nil
}
