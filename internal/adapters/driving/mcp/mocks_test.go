package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/regtrack/internal/core/domain"
	"github.com/custodia-labs/regtrack/internal/core/ports/driving"
)

// mockReportService is a mock implementation of driving.ReportService.
type mockReportService struct {
	summaries []driving.AgencySummary
	history   *driving.AgencyHistory
	err       error
	lastSlug  string
}

func (m *mockReportService) ListSummaries(_ context.Context) ([]driving.AgencySummary, error) {
	return m.summaries, m.err
}

func (m *mockReportService) AgencyHistory(_ context.Context, slug string) (*driving.AgencyHistory, error) {
	m.lastSlug = slug
	return m.history, m.err
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func testSnapshot(date string, words int) domain.Snapshot {
	d, _ := domain.ParseDate(date)
	return domain.Snapshot{
		SnapshotDate:   d,
		WordCount:      words,
		SectionCount:   words / 100,
		ChecksumSHA256: "sum-" + date,
		Metrics: domain.Metrics{
			IndustryScores: domain.IndustryScores{
				{Key: "energy", Name: "Energy", Score: 12.5, Matches: 5},
				{Key: "finance", Name: "Finance", Score: 3, Matches: 1},
				{Key: "labor", Name: "Labor", Score: 0},
			},
		},
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}
