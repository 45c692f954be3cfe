// Package file provides file-based implementations of driven port interfaces.
//
// ConfigStore keeps regtrack settings in a TOML file, by default
// ~/.regtrack/config.toml. Keys are flattened to dot notation in memory and
// written back as nested tables.
package file
