package domain

import (
	"fmt"
	"time"
)

// Default values for application settings.
const (
	DefaultECFRBaseURL       = "https://www.ecfr.gov/api"
	DefaultECFRTimeout       = 60 * time.Second
	DefaultECFRRatePerSecond = 2.0
	DefaultIngestInterval    = 24 * time.Hour
)

// SourceSettings holds document source configuration.
type SourceSettings struct {
	// BaseURL is the eCFR API root.
	BaseURL string

	// Timeout bounds each request to the source.
	Timeout time.Duration

	// RatePerSecond throttles requests to the source.
	RatePerSecond float64
}

// StorageSettings holds snapshot storage configuration.
type StorageSettings struct {
	// DataDir is the directory holding the SQLite database.
	// Empty means the default (~/.regtrack/data).
	DataDir string
}

// SchedulerSettings holds periodic ingestion configuration.
type SchedulerSettings struct {
	// Enabled is the master switch for scheduled ingestion.
	Enabled bool

	// Interval is how often agencies are ingested.
	Interval time.Duration
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Source holds document source settings.
	Source SourceSettings

	// Storage holds snapshot storage settings.
	Storage StorageSettings

	// Scheduler holds periodic ingestion settings.
	Scheduler SchedulerSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Source: SourceSettings{
			BaseURL:       DefaultECFRBaseURL,
			Timeout:       DefaultECFRTimeout,
			RatePerSecond: DefaultECFRRatePerSecond,
		},
		Scheduler: SchedulerSettings{
			Enabled:  true,
			Interval: DefaultIngestInterval,
		},
	}
}

// Validate reports the first invalid setting.
func (s AppSettings) Validate() error {
	if s.Source.BaseURL == "" {
		return fmt.Errorf("%w: source base URL is empty", ErrInvalidInput)
	}
	if s.Source.Timeout <= 0 {
		return fmt.Errorf("%w: source timeout must be positive", ErrInvalidInput)
	}
	if s.Source.RatePerSecond <= 0 {
		return fmt.Errorf("%w: source rate must be positive", ErrInvalidInput)
	}
	if s.Scheduler.Interval <= 0 {
		return fmt.Errorf("%w: scheduler interval must be positive", ErrInvalidInput)
	}
	return nil
}

// SchedulerConfig returns the scheduler's view of the settings.
func (s AppSettings) SchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Enabled:  s.Scheduler.Enabled,
		Interval: s.Scheduler.Interval,
	}
}
