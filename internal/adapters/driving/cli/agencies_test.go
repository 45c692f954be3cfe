package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/regtrack/internal/core/domain"
	"github.com/custodia-labs/regtrack/internal/core/ports/driving"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func snapshotOn(date string, words int) domain.Snapshot {
	d, _ := domain.ParseDate(date)
	return domain.Snapshot{
		SnapshotDate: d,
		WordCount:    words,
		SectionCount: 10,
		Metrics: domain.Metrics{
			IndustryScores: domain.IndustryScores{
				{Key: "energy", Name: "Energy", Score: 40.2, Matches: 20, Color: "amber"},
				{Key: "environment", Name: "Environment", Score: 8, Matches: 4, Color: "teal"},
				{Key: "labor", Name: "Labor", Score: 0, Color: "pink"},
			},
		},
	}
}

func TestAgenciesCmd_Table(t *testing.T) {
	latest := snapshotOn("2024-02-01", 1500000)
	report := &mockReportService{
		summaries: []driving.AgencySummary{
			{
				Agency:             domain.Agency{Slug: "energy-department", Name: "Department of Energy"},
				Latest:             &latest,
				ChangeFromPrevious: intPtr(2500),
				GrowthRatePct:      floatPtr(1.25),
				SnapshotCount:      3,
			},
			{Agency: domain.Agency{Slug: "new-agency", Name: "New Agency"}},
		},
	}
	withServices(t, Services{Report: report})

	out, err := executeCommand(t, "agencies")
	require.NoError(t, err)

	assert.Contains(t, out, "Agency")
	assert.Contains(t, out, "Top industries")
	assert.Contains(t, out, "Department of Energy")
	assert.Contains(t, out, "1,500,000")
	assert.Contains(t, out, "+2,500")
	assert.Contains(t, out, "+1.25%")
	assert.Contains(t, out, "Energy 40.2, Environment 8.0")
	assert.NotContains(t, out, "Labor 0.0")
	assert.Contains(t, out, "New Agency")
	assert.Contains(t, out, "2 agencies")
}

func TestAgenciesCmd_Empty(t *testing.T) {
	withServices(t, Services{Report: &mockReportService{}})

	out, err := executeCommand(t, "agencies")
	require.NoError(t, err)
	assert.Contains(t, out, "No agencies tracked yet")
}

func TestAgenciesCmd_Error(t *testing.T) {
	withServices(t, Services{Report: &mockReportService{err: errors.New("db locked")}})

	_, err := executeCommand(t, "agencies")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db locked")
}

func TestAgencyCmd_History(t *testing.T) {
	report := &mockReportService{
		history: &driving.AgencyHistory{
			Agency: domain.Agency{Slug: "energy-department", Name: "Department of Energy"},
			Snapshots: []driving.SnapshotChange{
				{Snapshot: snapshotOn("2024-01-01", 1000)},
				{Snapshot: snapshotOn("2024-02-01", 900), ChangeFromPrevious: intPtr(-100), PctChange: floatPtr(-10)},
			},
			TotalGrowthWords: intPtr(-100),
			GrowthRatePct:    floatPtr(-10),
			DaysTracked:      intPtr(31),
		},
	}
	withServices(t, Services{Report: report})

	out, err := executeCommand(t, "agency", "energy-department")
	require.NoError(t, err)

	assert.Contains(t, out, "Department of Energy")
	assert.Contains(t, out, "(energy-department)")
	assert.Contains(t, out, "2024-01-01")
	assert.Contains(t, out, "-100")
	assert.Contains(t, out, "-10.00%")
	assert.Contains(t, out, "over 31 days")
}

func TestAgencyCmd_NoSnapshots(t *testing.T) {
	report := &mockReportService{
		history: &driving.AgencyHistory{Agency: domain.Agency{Slug: "x", Name: "X"}},
	}
	withServices(t, Services{Report: report})

	out, err := executeCommand(t, "agency", "x")
	require.NoError(t, err)
	assert.Contains(t, out, "No snapshots recorded.")
	assert.NotContains(t, out, "Growth:")
}

func TestAgencyCmd_NotFound(t *testing.T) {
	withServices(t, Services{Report: &mockReportService{err: domain.ErrNotFound}})

	_, err := executeCommand(t, "agency", "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `agency "ghost" not found`)
}

func TestAgencyCmd_RequiresSlug(t *testing.T) {
	withServices(t, Services{Report: &mockReportService{}})

	_, err := executeCommand(t, "agency")
	require.Error(t, err)
}
