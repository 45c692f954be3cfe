package driven

// ConfigStore holds raw settings values under dotted keys ("ecfr.base_url").
// Values keep whatever type they were decoded or set with; SettingsService
// coerces them and applies defaults.
type ConfigStore interface {
	// Get returns the value for key and whether it is set.
	Get(key string) (any, bool)

	// Set stores value under key and persists it.
	Set(key string, value any) error

	// Delete removes key and persists the change. Deleting a missing key is not an error.
	Delete(key string) error

	// Path describes where values are persisted.
	Path() string
}
