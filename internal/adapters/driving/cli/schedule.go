package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/regtrack/internal/core/domain"
	"github.com/custodia-labs/regtrack/internal/logger"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Scheduled ingestion commands",
	Long:  `Commands for running agency ingestion on a fixed interval.`,
}

var scheduleRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the ingestion scheduler in the foreground",
	Long: `Runs the scheduler until interrupted. Agencies are ingested once per
scheduler.interval_hours; the first run happens immediately unless a
previous run is recorded.`,
	Args: cobra.NoArgs,
	RunE: runScheduleRun,
}

var scheduleStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the ingestion schedule and recent runs",
	Args:  cobra.NoArgs,
	RunE:  runScheduleStatus,
}

func init() {
	scheduleCmd.AddCommand(scheduleRunCmd)
	scheduleCmd.AddCommand(scheduleStatusCmd)
	rootCmd.AddCommand(scheduleCmd)
}

func runScheduleRun(cmd *cobra.Command, _ []string) error {
	if scheduler == nil {
		return errors.New("scheduler not configured")
	}

	logger.SetTimestamps(true)
	defer logger.SetTimestamps(false)

	cmd.Println("Scheduler running. Press Ctrl+C to stop.")

	err := scheduler.Start(cmd.Context())
	if errors.Is(err, domain.ErrInvalidInput) {
		return errors.New("scheduler is disabled; enable it with 'regtrack settings set scheduler.enabled true'")
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("scheduler failed: %w", err)
	}

	if stopErr := scheduler.Stop(); stopErr != nil {
		return fmt.Errorf("stopping scheduler: %w", stopErr)
	}
	cmd.Println("Scheduler stopped.")
	return nil
}

func runScheduleStatus(cmd *cobra.Command, _ []string) error {
	if scheduler == nil {
		return errors.New("scheduler not configured")
	}

	status, err := scheduler.Status(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get scheduler status: %w", err)
	}

	if status.Schedule == nil {
		cmd.Println("The scheduler has never run. Start it with 'regtrack schedule run'.")
		return nil
	}

	sched := status.Schedule
	cmd.Println(headerStyle.Render("Schedule"))
	cmd.Printf("  Interval:     %s\n", sched.Interval)
	cmd.Printf("  Enabled:      %t\n", sched.Enabled)
	cmd.Printf("  Next run:     %s\n", formatWhen(sched.NextRun))
	cmd.Printf("  Last run:     %s\n", formatWhen(sched.LastRun))
	cmd.Printf("  Last success: %s\n", formatWhen(sched.LastSuccess))
	if sched.LastError != "" {
		cmd.Printf("  Last error:   %s\n", negativeStyle.Render(sched.LastError))
	}

	if len(status.Recent) == 0 {
		return nil
	}

	cmd.Println()
	cmd.Println(headerStyle.Render("Recent runs"))
	t := &table{
		headers:    []string{"Started", "Date", "Processed", "Failed", "Took", "Result"},
		rightAlign: []bool{false, false, true, true, true, false},
	}
	for _, run := range status.Recent {
		result := positiveStyle.Render("ok")
		if !run.Succeeded() {
			result = negativeStyle.Render(truncate(run.Error, 40))
		}
		t.add(
			formatWhen(run.StartedAt),
			domain.FormatDate(run.SnapshotDate),
			fmt.Sprintf("%d/%d", run.Processed, run.Total),
			formatInt(run.Failed),
			run.Duration().Round(time.Second).String(),
			result,
		)
	}
	cmd.Print(t.render())
	return nil
}

// formatWhen renders a schedule timestamp in UTC.
func formatWhen(t time.Time) string {
	if t.IsZero() {
		return mutedStyle.Render("never")
	}
	return t.UTC().Format("2006-01-02 15:04 UTC")
}
