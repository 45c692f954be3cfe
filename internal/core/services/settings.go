package services

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/custodia-labs/regtrack/internal/core/domain"
	"github.com/custodia-labs/regtrack/internal/core/ports/driven"
	"github.com/custodia-labs/regtrack/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyECFRBaseURL       = "ecfr.base_url"
	KeyECFRTimeout       = "ecfr.timeout_seconds"
	KeyECFRRate          = "ecfr.rate_per_second"
	KeyStorageDataDir    = "storage.data_dir"
	KeySchedulerEnabled  = "scheduler.enabled"
	KeySchedulerInterval = "scheduler.interval_hours"
)

var settingKeys = []string{
	KeyECFRBaseURL,
	KeyECFRTimeout,
	KeyECFRRate,
	KeyStorageDataDir,
	KeySchedulerEnabled,
	KeySchedulerInterval,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings, filling gaps with defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Source: domain.SourceSettings{
			BaseURL:       s.getString(KeyECFRBaseURL, defaults.Source.BaseURL),
			Timeout:       s.getDuration(KeyECFRTimeout, time.Second, defaults.Source.Timeout),
			RatePerSecond: s.getFloat(KeyECFRRate, defaults.Source.RatePerSecond),
		},
		Storage: domain.StorageSettings{
			DataDir: s.getString(KeyStorageDataDir, ""),
		},
		Scheduler: domain.SchedulerSettings{
			Enabled:  s.getBool(KeySchedulerEnabled, defaults.Scheduler.Enabled),
			Interval: s.getDuration(KeySchedulerInterval, time.Hour, defaults.Scheduler.Interval),
		},
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyECFRBaseURL, settings.Source.BaseURL},
		{KeyECFRTimeout, int(settings.Source.Timeout / time.Second)},
		{KeyECFRRate, settings.Source.RatePerSecond},
		{KeyStorageDataDir, settings.Storage.DataDir},
		{KeySchedulerEnabled, settings.Scheduler.Enabled},
		{KeySchedulerInterval, int(settings.Scheduler.Interval / time.Hour)},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// Set parses value according to key and persists it.
func (s *SettingsService) Set(key, value string) error {
	var parsed any

	switch key {
	case KeyECFRBaseURL, KeyStorageDataDir:
		if key == KeyECFRBaseURL && value == "" {
			return fmt.Errorf("%w: %s must not be empty", domain.ErrInvalidInput, key)
		}
		parsed = value
	case KeyECFRTimeout, KeySchedulerInterval:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer, got %q", domain.ErrInvalidInput, key, value)
		}
		parsed = n
	case KeyECFRRate:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("%w: %s must be a positive number, got %q", domain.ErrInvalidInput, key, value)
		}
		parsed = f
	case KeySchedulerEnabled:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false, got %q", domain.ErrInvalidInput, key, value)
		}
		parsed = b
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Reset removes a stored value so the default applies again.
func (s *SettingsService) Reset(key string) error {
	if !slices.Contains(settingKeys, key) {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err := s.configStore.Delete(key); err != nil {
		return fmt.Errorf("reset %s: %w", key, err)
	}
	return nil
}

// Keys returns the recognised config keys in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	copy(keys, settingKeys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Stored values are whatever the ConfigStore decoded: TOML gives int64 and
// float64, while Set stores int, float64, bool or string. A missing, mistyped
// or non-positive value falls back to the default.

func (s *SettingsService) getString(key, defaultVal string) string {
	if v, ok := s.configStore.Get(key); ok {
		if str, ok := v.(string); ok && str != "" {
			return str
		}
	}
	return defaultVal
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	v, _ := s.configStore.Get(key)
	if f, ok := asFloat(v); ok && f > 0 {
		return f
	}
	return defaultVal
}

func (s *SettingsService) getDuration(key string, unit, defaultVal time.Duration) time.Duration {
	v, _ := s.configStore.Get(key)
	if n, ok := asInt(v); ok && n > 0 {
		return time.Duration(n) * unit
	}
	return defaultVal
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	v, _ := s.configStore.Get(key)
	if b, ok := v.(bool); ok {
		return b
	}
	return defaultVal
}

// asInt accepts integers and whole floats.
func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n == math.Trunc(n) {
			return int64(n), true
		}
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
