// Command regtrack tracks the size and industry focus of federal regulations.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/regtrack/internal/adapters/driven/config/file"
	"github.com/custodia-labs/regtrack/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/regtrack/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/regtrack/internal/adapters/driving/cli"
	"github.com/custodia-labs/regtrack/internal/analysis"
	"github.com/custodia-labs/regtrack/internal/connectors/ecfr"
	"github.com/custodia-labs/regtrack/internal/core/domain"
	"github.com/custodia-labs/regtrack/internal/core/ports/driving"
	"github.com/custodia-labs/regtrack/internal/core/services"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// bootstrap wires the adapters and services for one command invocation.
func bootstrap(configDir string) (*cli.Services, func() error, error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("load settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid settings in %s: %w", configStore.Path(), err)
	}

	store, err := sqlite.NewStore(settings.Storage.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}

	client := ecfr.NewClient(ecfr.ConfigFromSettings(settings.Source))
	scorer := analysis.NewScorer(domain.DefaultTaxonomy())

	ingest := services.NewIngestService(client, client, store.AgencyStore(), store.SnapshotStore(), scorer)
	report := services.NewReportService(store.AgencyStore(), store.SnapshotStore())
	scheduler := services.NewScheduler(settings.SchedulerConfig(), store.ScheduleStore(), ingest)

	dryRun := func() driving.IngestService {
		scratch := memory.NewStore()
		return services.NewIngestService(client, client, scratch.AgencyStore(), scratch.SnapshotStore(), scorer)
	}

	return &cli.Services{
		Ingest:       ingest,
		Report:       report,
		Settings:     settingsService,
		Scheduler:    scheduler,
		DryRunIngest: dryRun,
	}, store.Close, nil
}
