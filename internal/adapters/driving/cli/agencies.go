package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/regtrack/internal/core/domain"
)

// topIndustries is how many industries the summary table shows.
const topIndustries = 3

var agenciesCmd = &cobra.Command{
	Use:   "agencies",
	Short: "List tracked agencies",
	Long: `Lists every tracked agency with its latest word count, the change from
the previous snapshot, total growth since the first snapshot, and the
industries its regulations most target.`,
	Args: cobra.NoArgs,
	RunE: runAgencies,
}

func init() {
	rootCmd.AddCommand(agenciesCmd)
}

func runAgencies(cmd *cobra.Command, _ []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	summaries, err := reportService.ListSummaries(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list agencies: %w", err)
	}
	if len(summaries) == 0 {
		cmd.Println("No agencies tracked yet. Run 'regtrack ingest' first.")
		return nil
	}

	nameWidth := max(20, min(60, terminalWidth(cmd.OutOrStdout())-70))

	t := &table{
		headers:    []string{"Agency", "Latest", "Words", "Change", "Growth", "Snapshots", "Top industries"},
		rightAlign: []bool{false, false, true, true, true, true, false},
	}
	for i := range summaries {
		s := &summaries[i]
		latest, words := "-", "-"
		var top []domain.IndustryScore
		if s.Latest != nil {
			latest = s.Latest.Date()
			words = formatInt(s.Latest.WordCount)
			top = s.Latest.Metrics.IndustryScores.Top(topIndustries)
		}
		t.add(
			truncate(s.Agency.Name, nameWidth),
			latest,
			words,
			formatChange(s.ChangeFromPrevious),
			formatPct(s.GrowthRatePct),
			fmt.Sprintf("%d", s.SnapshotCount),
			renderIndustries(top),
		)
	}

	cmd.Print(t.render())
	cmd.Printf("\n%d agencies\n", len(summaries))
	return nil
}
