package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/Iron-Ham/caseclipper/internal/logging"
	"github.com/Iron-Ham/caseclipper/internal/transform"
	"github.com/spf13/viper"
)

// Config represents the complete CaseClipper configuration
type Config struct {
	Clipboard ClipboardConfig `mapstructure:"clipboard" yaml:"clipboard"`
	TUI       TUIConfig       `mapstructure:"tui" yaml:"tui"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
}

// ClipboardConfig controls clipboard access and the auto-filter
type ClipboardConfig struct {
	// AutoFilter starts the TUI with clipboard auto-filtering enabled
	AutoFilter bool `mapstructure:"auto_filter" yaml:"auto_filter"`
	// Mode is the conversion applied to new clipboard content
	// Options: "upper", "lower", "title", "sentence", "toggle"
	Mode string `mapstructure:"mode" yaml:"mode"`
	// PollIntervalMs is how often the clipboard is read (in milliseconds)
	PollIntervalMs int `mapstructure:"poll_interval_ms" yaml:"poll_interval_ms"`
	// IgnorePatterns are glob patterns; matching content is never rewritten
	IgnorePatterns []string `mapstructure:"ignore_patterns" yaml:"ignore_patterns"`
	// OSC52Fallback writes through the terminal when no clipboard utility exists
	OSC52Fallback bool `mapstructure:"osc52_fallback" yaml:"osc52_fallback"`
}

// TUIConfig controls the terminal UI
type TUIConfig struct {
	// Theme is the color theme (default: "default")
	// Options: "default", "nord", "dracula", "solarized-light"
	Theme string `mapstructure:"theme" yaml:"theme"`
	// ThemeFile is an optional YAML theme that overrides Theme
	ThemeFile string `mapstructure:"theme_file" yaml:"theme_file"`
	// Mouse enables clicking buttons and the auto-filter checkbox
	Mouse bool `mapstructure:"mouse" yaml:"mouse"`
}

// LoggingConfig controls the debug log
type LoggingConfig struct {
	// Enabled writes debug.log; when false nothing is logged
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Level is the minimum level written: "debug", "info", "warn", "error"
	Level string `mapstructure:"level" yaml:"level"`
	// MaxSizeMB is the size at which debug.log is rotated (0 = never)
	MaxSizeMB int `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	// MaxBackups is the number of rotated logs kept
	MaxBackups int `mapstructure:"max_backups" yaml:"max_backups"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Clipboard: ClipboardConfig{
			AutoFilter:     false,
			Mode:           string(transform.ModeUpper),
			PollIntervalMs: 500,
			IgnorePatterns: []string{},
			OSC52Fallback:  true,
		},
		TUI: TUIConfig{
			Theme:     "default",
			ThemeFile: "",
			Mouse:     true,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 2,
		},
	}
}

// PollInterval returns the clipboard poll interval as a Duration
func (c *ClipboardConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// FilterMode returns Mode as a transform.Mode. Validate guarantees it is
// known; an unknown value falls back to upper.
func (c *ClipboardConfig) FilterMode() transform.Mode {
	m, err := transform.ParseMode(c.Mode)
	if err != nil {
		return transform.ModeUpper
	}
	return m
}

// Rotation returns the rotation settings for the debug log
func (c *LoggingConfig) Rotation() logging.RotationConfig {
	return logging.RotationConfig{MaxSizeMB: c.MaxSizeMB, MaxBackups: c.MaxBackups}
}

// SetDefaults registers default values with the global viper instance
func SetDefaults() {
	SetDefaultsOn(viper.GetViper())
}

// SetDefaultsOn registers default values with v
func SetDefaultsOn(v *viper.Viper) {
	defaults := Default()

	// Clipboard defaults
	v.SetDefault("clipboard.auto_filter", defaults.Clipboard.AutoFilter)
	v.SetDefault("clipboard.mode", defaults.Clipboard.Mode)
	v.SetDefault("clipboard.poll_interval_ms", defaults.Clipboard.PollIntervalMs)
	v.SetDefault("clipboard.ignore_patterns", defaults.Clipboard.IgnorePatterns)
	v.SetDefault("clipboard.osc52_fallback", defaults.Clipboard.OSC52Fallback)

	// TUI defaults
	v.SetDefault("tui.theme", defaults.TUI.Theme)
	v.SetDefault("tui.theme_file", defaults.TUI.ThemeFile)
	v.SetDefault("tui.mouse", defaults.TUI.Mouse)

	// Logging defaults
	v.SetDefault("logging.enabled", defaults.Logging.Enabled)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

// Load reads the configuration from the global viper instance and validates it
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads the configuration from v and validates it
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.Clipboard.IgnorePatterns == nil {
		cfg.Clipboard.IgnorePatterns = []string{}
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration, or defaults if it cannot be loaded
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "caseclipper")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".caseclipper"
	}
	return filepath.Join(home, ".config", "caseclipper")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// LogDir returns the directory holding debug.log: $XDG_STATE_HOME/caseclipper
// when set, otherwise the config directory.
func LogDir() string {
	if state := os.Getenv("XDG_STATE_HOME"); state != "" {
		return filepath.Join(state, "caseclipper")
	}
	return ConfigDir()
}
