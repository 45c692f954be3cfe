package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/regtrack/internal/core/domain"
	"github.com/custodia-labs/regtrack/internal/core/ports/driving"
)

// summaryTopIndustries is how many industries a summary lists.
const summaryTopIndustries = 3

// ListAgenciesInput is the input schema for the list_agencies tool.
type ListAgenciesInput struct{}

// ListAgenciesOutput is the output schema for the list_agencies tool.
type ListAgenciesOutput struct {
	Agencies []AgencySummaryOutput `json:"agencies"`
	Count    int                   `json:"count"`
}

// IndustryOutput is one industry score.
type IndustryOutput struct {
	Key     string  `json:"key"`
	Name    string  `json:"name"`
	Score   float64 `json:"score"`
	Matches int     `json:"matches"`
}

// AgencySummaryOutput is an agency's latest position.
type AgencySummaryOutput struct {
	Slug               string           `json:"slug"`
	Name               string           `json:"name"`
	LatestDate         string           `json:"latest_date,omitempty"`
	WordCount          int              `json:"word_count"`
	SectionCount       int              `json:"section_count"`
	ChangeFromPrevious *int             `json:"change_from_previous,omitempty"`
	GrowthRatePct      *float64         `json:"growth_rate_pct,omitempty"`
	SnapshotCount      int              `json:"snapshot_count"`
	TopIndustries      []IndustryOutput `json:"top_industries,omitempty"`
}

// AgencyHistoryInput is the input schema for the agency_history tool.
type AgencyHistoryInput struct {
	Slug string `json:"slug" jsonschema:"the agency slug, e.g. agriculture-department"`
}

// SnapshotOutput is one snapshot in a history.
type SnapshotOutput struct {
	Date               string           `json:"date"`
	WordCount          int              `json:"word_count"`
	SectionCount       int              `json:"section_count"`
	Checksum           string           `json:"checksum"`
	ChangeFromPrevious *int             `json:"change_from_previous,omitempty"`
	PctChange          *float64         `json:"pct_change,omitempty"`
	Industries         []IndustryOutput `json:"industries,omitempty"`
}

// AgencyHistoryOutput is the output schema for the agency_history tool.
type AgencyHistoryOutput struct {
	Slug             string           `json:"slug"`
	Name             string           `json:"name"`
	Snapshots        []SnapshotOutput `json:"snapshots"`
	TotalGrowthWords *int             `json:"total_growth_words,omitempty"`
	GrowthRatePct    *float64         `json:"growth_rate_pct,omitempty"`
	DaysTracked      *int             `json:"days_tracked,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_agencies",
		Description: "List tracked agencies with their latest word counts and growth",
	}, s.handleListAgencies)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "agency_history",
		Description: "Show the snapshot history of one agency",
	}, s.handleAgencyHistory)
}

func (s *Server) handleListAgencies(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListAgenciesInput,
) (*mcp.CallToolResult, ListAgenciesOutput, error) {
	summaries, err := s.ports.Report.ListSummaries(ctx)
	if err != nil {
		return nil, ListAgenciesOutput{}, err
	}

	output := ListAgenciesOutput{
		Agencies: make([]AgencySummaryOutput, len(summaries)),
		Count:    len(summaries),
	}
	for i := range summaries {
		output.Agencies[i] = toSummaryOutput(&summaries[i])
	}
	return nil, output, nil
}

func (s *Server) handleAgencyHistory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AgencyHistoryInput,
) (*mcp.CallToolResult, AgencyHistoryOutput, error) {
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		return nil, AgencyHistoryOutput{}, fmt.Errorf("%w: slug is required", domain.ErrInvalidInput)
	}

	history, err := s.ports.Report.AgencyHistory(ctx, slug)
	if err != nil {
		return nil, AgencyHistoryOutput{}, err
	}
	return nil, toHistoryOutput(history), nil
}

func toIndustryOutputs(scores []domain.IndustryScore) []IndustryOutput {
	if len(scores) == 0 {
		return nil
	}
	out := make([]IndustryOutput, len(scores))
	for i, sc := range scores {
		out[i] = IndustryOutput{Key: sc.Key, Name: sc.Name, Score: sc.Score, Matches: sc.Matches}
	}
	return out
}

func toSummaryOutput(s *driving.AgencySummary) AgencySummaryOutput {
	out := AgencySummaryOutput{
		Slug:               s.Agency.Slug,
		Name:               s.Agency.Name,
		ChangeFromPrevious: s.ChangeFromPrevious,
		GrowthRatePct:      s.GrowthRatePct,
		SnapshotCount:      s.SnapshotCount,
	}
	if s.Latest != nil {
		out.LatestDate = s.Latest.Date()
		out.WordCount = s.Latest.WordCount
		out.SectionCount = s.Latest.SectionCount
		out.TopIndustries = toIndustryOutputs(s.Latest.Metrics.IndustryScores.Top(summaryTopIndustries))
	}
	return out
}

func toHistoryOutput(h *driving.AgencyHistory) AgencyHistoryOutput {
	out := AgencyHistoryOutput{
		Slug:             h.Agency.Slug,
		Name:             h.Agency.Name,
		Snapshots:        make([]SnapshotOutput, len(h.Snapshots)),
		TotalGrowthWords: h.TotalGrowthWords,
		GrowthRatePct:    h.GrowthRatePct,
		DaysTracked:      h.DaysTracked,
	}
	for i, change := range h.Snapshots {
		snap := change.Snapshot
		out.Snapshots[i] = SnapshotOutput{
			Date:               snap.Date(),
			WordCount:          snap.WordCount,
			SectionCount:       snap.SectionCount,
			Checksum:           snap.ChecksumSHA256,
			ChangeFromPrevious: change.ChangeFromPrevious,
			PctChange:          change.PctChange,
			Industries:         toIndustryOutputs(snap.Metrics.IndustryScores.Top(-1)),
		}
	}
	return out
}
