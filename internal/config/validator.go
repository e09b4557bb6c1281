package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/Iron-Ham/caseclipper/internal/clipboard"
	"github.com/Iron-Ham/caseclipper/internal/logging"
	"github.com/Iron-Ham/caseclipper/internal/transform"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "clipboard.poll_interval_ms")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Poll interval bounds in milliseconds.
const (
	MinPollIntervalMs = 50
	MaxPollIntervalMs = 60000
)

// ValidThemes returns the built-in theme names. Must match the palettes
// registered in internal/tui/styles (kept separate to avoid an import of the
// UI from configuration).
func ValidThemes() []string {
	return []string{"default", "nord", "dracula", "solarized-light"}
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	levels := logging.ValidLevels()
	out := make([]string, len(levels))
	for i, l := range levels {
		out[i] = strings.ToLower(l)
	}
	return out
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, c.validateClipboard()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateLogging()...)
	return errors
}

func (c *Config) validateClipboard() []ValidationError {
	var errors []ValidationError

	if !transform.Mode(strings.ToLower(strings.TrimSpace(c.Clipboard.Mode))).Valid() {
		errors = append(errors, ValidationError{
			Field:   "clipboard.mode",
			Value:   c.Clipboard.Mode,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(transform.ValidModes(), ", ")),
		})
	}

	if c.Clipboard.PollIntervalMs < MinPollIntervalMs {
		errors = append(errors, ValidationError{
			Field:   "clipboard.poll_interval_ms",
			Value:   c.Clipboard.PollIntervalMs,
			Message: fmt.Sprintf("must be at least %d", MinPollIntervalMs),
		})
	}
	if c.Clipboard.PollIntervalMs > MaxPollIntervalMs {
		errors = append(errors, ValidationError{
			Field:   "clipboard.poll_interval_ms",
			Value:   c.Clipboard.PollIntervalMs,
			Message: fmt.Sprintf("exceeds maximum of %d", MaxPollIntervalMs),
		})
	}

	for i, p := range c.Clipboard.IgnorePatterns {
		if _, err := clipboard.CompileIgnorePatterns([]string{p}); err != nil {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("clipboard.ignore_patterns[%d]", i),
				Value:   p,
				Message: "invalid glob pattern",
			})
		}
	}

	return errors
}

func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidThemes(), c.TUI.Theme) {
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidThemes(), ", ")),
		})
	}

	if c.TUI.ThemeFile != "" {
		info, err := os.Stat(c.TUI.ThemeFile)
		switch {
		case err != nil:
			errors = append(errors, ValidationError{
				Field:   "tui.theme_file",
				Value:   c.TUI.ThemeFile,
				Message: "file does not exist or is not readable",
			})
		case info.IsDir():
			errors = append(errors, ValidationError{
				Field:   "tui.theme_file",
				Value:   c.TUI.ThemeFile,
				Message: "must be a file, not a directory",
			})
		}
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !logging.IsValidLevel(c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if c.Logging.MaxSizeMB < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be non-negative",
		})
	}

	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}
