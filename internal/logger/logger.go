// Package logger provides leveled logging for regtrack.
//
// Debug, Info and Warn lines are written only in verbose mode (--verbose).
// Error lines are always written, so a failed agency is never silent.
// Long-running commands such as `schedule run` turn on timestamps.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

var labels = [...]string{
	levelDebug: "[DEBUG] ",
	levelInfo:  "[INFO] ",
	levelWarn:  "[WARN] ",
	levelError: "[ERROR] ",
}

// stampLayout is used when timestamps are on.
const stampLayout = "2006-01-02T15:04:05Z07:00"

var (
	mu         sync.RWMutex
	verbose    bool
	timestamps bool
	output     io.Writer = os.Stderr
	now                  = time.Now
)

// SetVerbose enables or disables Debug, Info and Warn output.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose reports whether verbose mode is on.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetTimestamps prefixes every line with the current UTC time when on.
func SetTimestamps(on bool) {
	mu.Lock()
	defer mu.Unlock()
	timestamps = on
}

// SetOutput redirects log output. The default is os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug, Info and Warn are written only in verbose mode.
func Debug(format string, args ...any) { logf(levelDebug, format, args...) }

func Info(format string, args ...any) { logf(levelInfo, format, args...) }

func Warn(format string, args ...any) { logf(levelWarn, format, args...) }

// Error is written regardless of verbose mode.
func Error(format string, args ...any) { logf(levelError, format, args...) }

// Section writes a "=== name ===" banner in verbose mode.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}
	fmt.Fprintf(output, "\n%s=== %s ===\n", stamp(), name)
}

func logf(lvl level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if lvl < levelError && !verbose {
		return
	}
	fmt.Fprintf(output, stamp()+labels[lvl]+format+"\n", args...)
}

// stamp returns the timestamp prefix; the caller holds mu.
func stamp() string {
	if !timestamps {
		return ""
	}
	return now().UTC().Format(stampLayout) + " "
}
