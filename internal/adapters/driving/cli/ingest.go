package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/regtrack/internal/core/domain"
	"github.com/custodia-labs/regtrack/internal/core/ports/driving"
)

var (
	ingestDates  []string
	ingestAgency string
	ingestDryRun bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Record agency snapshots from the eCFR",
	Long: `Fetches the agency catalog and title structures from the eCFR API and
records one snapshot per agency for each date.

Without --date, today's date (UTC) is used. --date may be repeated to
backfill several dates; they are processed in ascending order.
With --agency, only that agency is ingested.
With --dry-run, snapshots are computed but not saved.`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringArrayVar(&ingestDates, "date", nil, "snapshot date YYYY-MM-DD (repeatable)")
	ingestCmd.Flags().StringVar(&ingestAgency, "agency", "", "ingest only the agency with this slug")
	ingestCmd.Flags().BoolVar(&ingestDryRun, "dry-run", false, "compute snapshots without saving them")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	svc := ingestService
	if ingestDryRun {
		if newDryRunIngest == nil {
			return errors.New("dry-run ingest not configured")
		}
		svc = newDryRunIngest()
	}
	if svc == nil {
		return errors.New("ingest service not configured")
	}

	dates, err := parseIngestDates(ingestDates, time.Now())
	if err != nil {
		return err
	}

	if ingestDryRun {
		cmd.Println("Dry run: snapshots will not be saved.")
	}

	if ingestAgency != "" {
		return ingestOneAgency(cmd, svc, strings.TrimSpace(ingestAgency), dates)
	}
	return ingestCatalog(cmd, svc, dates)
}

// parseIngestDates parses --date values, defaulting to today in UTC.
func parseIngestDates(values []string, now time.Time) ([]time.Time, error) {
	if len(values) == 0 {
		return []time.Time{domain.TruncateDate(now.UTC())}, nil
	}
	dates := make([]time.Time, 0, len(values))
	for _, v := range values {
		d, err := domain.ParseDate(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("invalid --date %q: want YYYY-MM-DD", v)
		}
		dates = append(dates, d)
	}
	return dates, nil
}

func ingestCatalog(cmd *cobra.Command, svc driving.IngestService, dates []time.Time) error {
	progress := newProgressPrinter(cmd.OutOrStdout())
	svc.SetProgressFunc(progress.Func())
	defer svc.SetProgressFunc(nil)

	var (
		runs []*domain.IngestRun
		err  error
	)
	if len(dates) == 1 {
		cmd.Printf("Ingesting agencies for %s...\n", domain.FormatDate(dates[0]))
		var run *domain.IngestRun
		run, err = svc.IngestAll(cmd.Context(), dates[0])
		if run != nil {
			runs = append(runs, run)
		}
	} else {
		cmd.Printf("Ingesting agencies for %d dates...\n", len(dates))
		runs, err = svc.IngestDates(cmd.Context(), dates)
	}
	progress.Done()

	for _, run := range runs {
		printRun(cmd, run)
	}
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	return nil
}

func printRun(cmd *cobra.Command, run *domain.IngestRun) {
	cmd.Printf("Ingested %d/%d agencies for %s",
		run.Processed, run.Total, domain.FormatDate(run.SnapshotDate))
	if run.Failed() > 0 {
		cmd.Printf(" (%d failed)", run.Failed())
	}
	if !run.EndedAt.IsZero() && !run.StartedAt.IsZero() {
		cmd.Printf(" in %s", run.EndedAt.Sub(run.StartedAt).Round(time.Second))
	}
	cmd.Println()
	for _, f := range run.Failures {
		cmd.Printf("  ! %s: %v\n", f.Slug, f.Err)
	}
}

func ingestOneAgency(cmd *cobra.Command, svc driving.IngestService, slug string, dates []time.Time) error {
	for _, date := range dates {
		records, err := svc.ListCatalog(cmd.Context(), date)
		if err != nil {
			return fmt.Errorf("ingest failed: %w", err)
		}
		record, ok := findRecord(records, slug)
		if !ok {
			return fmt.Errorf("agency %q not found in catalog", slug)
		}

		snap, err := svc.IngestAgency(cmd.Context(), record, date)
		if err != nil {
			return fmt.Errorf("ingest failed: %w", err)
		}
		cmd.Printf("Ingested %s for %s: %s words, %s sections\n",
			record.Name, snap.Date(), formatInt(snap.WordCount), formatInt(snap.SectionCount))
	}
	return nil
}

func findRecord(records []domain.AgencyRecord, slug string) (domain.AgencyRecord, bool) {
	for _, r := range records {
		if r.Slug == slug {
			return r, true
		}
	}
	return domain.AgencyRecord{}, false
}
