// Package debug is the process-wide diagnostic logger. Debug output is
// enabled with --debug; warnings are always written unless quiet is set.
package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	enabled bool
	noColor bool
	quiet   bool
	out     io.Writer = os.Stderr
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorCyan   = "\033[36m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// SetDebug enables or disables debug mode
func SetDebug(enable bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = enable
}

// IsEnabled returns whether debug mode is enabled
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetNoColor enables or disables colored output
func SetNoColor(disable bool) {
	mu.Lock()
	defer mu.Unlock()
	noColor = disable
}

// SetQuiet suppresses warnings. Debug output still follows SetDebug.
func SetQuiet(q bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = q
}

// SetOutput redirects all log output. A nil writer restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	out = w
}

func snapshot() (w io.Writer, useColor bool) {
	mu.RLock()
	defer mu.RUnlock()
	return out, !noColor
}

func timestamp() string {
	return time.Now().Format("15:04:05.000")
}

// Debug prints a debug message with timestamp
func Debug(format string, args ...interface{}) {
	if !IsEnabled() {
		return
	}
	w, useColor := snapshot()
	msg := fmt.Sprintf(format, args...)

	if useColor {
		fmt.Fprintf(w, "%s[DEBUG]%s %s%s%s %s\n",
			colorCyan, colorReset, colorGray, timestamp(), colorReset, msg)
	} else {
		fmt.Fprintf(w, "[DEBUG] %s %s\n", timestamp(), msg)
	}
}

// Debugf is an alias for Debug
func Debugf(format string, args ...interface{}) {
	Debug(format, args...)
}

// DebugSection prints a section header for debug output
func DebugSection(section string) {
	if !IsEnabled() {
		return
	}
	w, useColor := snapshot()

	if useColor {
		fmt.Fprintf(w, "%s[DEBUG]%s %s%s%s %s=== %s ===%s\n",
			colorCyan, colorReset, colorGray, timestamp(), colorReset,
			colorCyan, section, colorReset)
	} else {
		fmt.Fprintf(w, "[DEBUG] %s === %s ===\n", timestamp(), section)
	}
}

// DebugValue prints key=value style debug info
func DebugValue(key string, value interface{}) {
	if !IsEnabled() {
		return
	}
	w, useColor := snapshot()

	if useColor {
		fmt.Fprintf(w, "%s[DEBUG]%s %s%s%s %s%s%s = %v\n",
			colorCyan, colorReset, colorGray, timestamp(), colorReset,
			colorCyan, key, colorReset, value)
	} else {
		fmt.Fprintf(w, "[DEBUG] %s %s = %v\n", timestamp(), key, value)
	}
}

// DebugJSON prints structured data as JSON for debugging
func DebugJSON(key string, v interface{}) {
	if !IsEnabled() {
		return
	}
	w, useColor := snapshot()

	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		Debug("Failed to marshal %s to JSON: %v", key, err)
		return
	}

	if useColor {
		fmt.Fprintf(w, "%s[DEBUG]%s %s%s%s %s%s%s:\n%s\n",
			colorCyan, colorReset, colorGray, timestamp(), colorReset,
			colorCyan, key, colorReset, string(jsonBytes))
	} else {
		fmt.Fprintf(w, "[DEBUG] %s %s:\n%s\n", timestamp(), key, string(jsonBytes))
	}
}

// Warn prints a warning regardless of debug mode.
func Warn(format string, args ...interface{}) {
	mu.RLock()
	q := quiet
	mu.RUnlock()
	if q {
		return
	}
	w, useColor := snapshot()
	msg := fmt.Sprintf(format, args...)

	if useColor {
		fmt.Fprintf(w, "%s[WARN]%s %s\n", colorYellow, colorReset, msg)
	} else {
		fmt.Fprintf(w, "[WARN] %s\n", msg)
	}
}

// Logger adapts the package-level functions to the small logging
// interfaces other packages accept.
type Logger struct {
	// Prefix is prepended to every message, e.g. "[catalog]".
	Prefix string
}

// Debugf logs at debug level.
func (l Logger) Debugf(format string, args ...interface{}) {
	Debug(l.prefixed(format), args...)
}

// Warnf logs a warning.
func (l Logger) Warnf(format string, args ...interface{}) {
	Warn(l.prefixed(format), args...)
}

func (l Logger) prefixed(format string) string {
	if l.Prefix == "" {
		return format
	}
	return l.Prefix + " " + format
}
