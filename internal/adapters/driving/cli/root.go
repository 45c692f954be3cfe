// Package cli provides the regtrack command line interface.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/regtrack/internal/core/ports/driving"
	"github.com/custodia-labs/regtrack/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Services configured by SetServices or a Bootstrap.
var (
	ingestService   driving.IngestService
	reportService   driving.ReportService
	settingsService driving.SettingsService
	scheduler       driving.Scheduler

	// newDryRunIngest returns an ingest service backed by throwaway storage.
	newDryRunIngest func() driving.IngestService
)

var (
	verbose   bool
	configDir string
)

// Services holds the driving ports the commands run against.
type Services struct {
	Ingest    driving.IngestService
	Report    driving.ReportService
	Settings  driving.SettingsService
	Scheduler driving.Scheduler

	// DryRunIngest builds an ingest service that writes nowhere durable.
	DryRunIngest func() driving.IngestService
}

// Bootstrap builds services for a config directory ("" means the default).
// The returned close function releases whatever the services hold open.
type Bootstrap func(configDir string) (*Services, func() error, error)

var (
	bootstrap     Bootstrap
	closeServices func() error
)

var rootCmd = &cobra.Command{
	Use:   "regtrack",
	Short: "Track the size and industry focus of federal regulations",
	Long: `regtrack ingests the Code of Federal Regulations from the eCFR API,
records a dated snapshot per agency, and reports how each agency's
regulatory text grows over time and which industries it targets.`,
	SilenceUsage: true,
}

func init() {
	// Assigned here because setupServices refers back to rootCmd.
	rootCmd.PersistentPreRunE = setupServices
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logging to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.regtrack)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices installs the services used by the commands.
func SetServices(s Services) {
	ingestService = s.Ingest
	reportService = s.Report
	settingsService = s.Settings
	scheduler = s.Scheduler
	newDryRunIngest = s.DryRunIngest
}

// SetBootstrap installs the builder run before any command that needs services.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if closeServices != nil {
		if closeErr := closeServices(); closeErr != nil {
			logger.Warn("closing services: %v", closeErr)
		}
		closeServices = nil
	}
	return err
}

func setupServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetOutput(cmd.ErrOrStderr())

	if bootstrap == nil || !needsServices(cmd) {
		return nil
	}

	services, closer, err := bootstrap(configDir)
	if err != nil {
		return err
	}
	if services == nil {
		return errors.New("bootstrap returned no services")
	}
	SetServices(*services)
	closeServices = closer
	return nil
}

// needsServices reports whether cmd touches configuration or storage.
func needsServices(cmd *cobra.Command) bool {
	return cmd != versionCmd && cmd != rootCmd
}
