package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/regtrack/internal/core/domain"
)

var agencyCmd = &cobra.Command{
	Use:   "agency [slug]",
	Short: "Show an agency's snapshot history",
	Long: `Shows every snapshot recorded for an agency, with the change in word
count between consecutive snapshots and the growth over the tracked period.`,
	Args: cobra.ExactArgs(1),
	RunE: runAgency,
}

func init() {
	rootCmd.AddCommand(agencyCmd)
}

func runAgency(cmd *cobra.Command, args []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	slug := strings.TrimSpace(args[0])
	history, err := reportService.AgencyHistory(cmd.Context(), slug)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("agency %q not found", slug)
	}
	if err != nil {
		return fmt.Errorf("failed to get agency history: %w", err)
	}

	cmd.Println(headerStyle.Render(history.Agency.Name) + " " + mutedStyle.Render("("+history.Agency.Slug+")"))
	cmd.Println()

	if len(history.Snapshots) == 0 {
		cmd.Println("No snapshots recorded.")
		return nil
	}

	t := &table{
		headers:    []string{"Date", "Words", "Sections", "Change", "Pct", "Industries"},
		rightAlign: []bool{false, true, true, true, true, false},
	}
	for _, change := range history.Snapshots {
		snap := change.Snapshot
		t.add(
			snap.Date(),
			formatInt(snap.WordCount),
			formatInt(snap.SectionCount),
			formatChange(change.ChangeFromPrevious),
			formatPct(change.PctChange),
			renderIndustries(snap.Metrics.IndustryScores.Top(topIndustries)),
		)
	}
	cmd.Print(t.render())

	if history.TotalGrowthWords != nil {
		cmd.Println()
		cmd.Printf("Growth: %s words (%s) over %d days\n",
			formatChange(history.TotalGrowthWords),
			formatPct(history.GrowthRatePct),
			derefInt(history.DaysTracked))
	}
	return nil
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
