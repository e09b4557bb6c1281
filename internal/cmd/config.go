package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/Iron-Ham/caseclipper/internal/config"
	"github.com/Iron-Ham/caseclipper/internal/transform"
	tuiconfig "github.com/Iron-Ham/caseclipper/internal/tui/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify CaseClipper configuration",
	Long: `View or modify CaseClipper configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration as YAML",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  caseclipper config set clipboard.mode lower
  caseclipper config set clipboard.poll_interval_ms 250
  caseclipper config set clipboard.ignore_patterns "http*,*@*.com"

Valid keys:
  clipboard.auto_filter       - Start with the auto-filter enabled (true/false)
  clipboard.mode              - Auto-filter case: upper, lower, title, sentence, toggle
  clipboard.poll_interval_ms  - Clipboard poll interval in milliseconds
  clipboard.ignore_patterns   - Comma-separated glob patterns never converted
  clipboard.osc52_fallback    - Copy through the terminal without a clipboard tool
  tui.theme                   - Color theme: default, nord, dracula, solarized-light
  tui.theme_file              - Path to a YAML theme file
  tui.mouse                   - Enable mouse support (true/false)
  logging.enabled             - Write debug.log (true/false)
  logging.level               - debug, info, warn, error
  logging.max_size_mb         - Rotate debug.log at this size (0 = never)
  logging.max_backups         - Rotated logs to keep`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/caseclipper/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration interactively",
	Long: `Open an interactive editor for every configuration key.

Each accepted change is validated and saved immediately. A running
CaseClipper TUI picks the change up without restarting.`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configPathCmd)
}

// configKeyTypes lists the keys accepted by config set and their value types.
var configKeyTypes = map[string]string{
	"clipboard.auto_filter":      "bool",
	"clipboard.mode":             "string",
	"clipboard.poll_interval_ms": "int",
	"clipboard.ignore_patterns":  "list",
	"clipboard.osc52_fallback":   "bool",
	"tui.theme":                  "string",
	"tui.theme_file":             "string",
	"tui.mouse":                  "bool",
	"logging.enabled":            "bool",
	"logging.level":              "string",
	"logging.max_size_mb":        "int",
	"logging.max_backups":        "int",
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	out := cmd.OutOrStdout()

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "# Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintln(out, "# Config file: (none - using defaults)")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	_, err = out.Write(data)
	return err
}

// fileViper returns a private viper holding only defaults and the values in
// configFile, so flags and environment variables are never written back.
func fileViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	config.SetDefaultsOn(v)
	v.SetConfigFile(configFile)
	if _, err := os.Stat(configFile); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", configFile, err)
		}
	}
	return v, nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	keyType, ok := configKeyTypes[key]
	if !ok {
		return fmt.Errorf("unknown configuration key: %s\nRun 'caseclipper config set --help' to see valid keys", key)
	}

	typedValue, err := parseConfigValue(key, keyType, value)
	if err != nil {
		return err
	}

	configFile := config.ConfigFile()
	v, err := fileViper(configFile)
	if err != nil {
		return err
	}
	v.Set(key, typedValue)

	if _, err := config.LoadFrom(v); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}

func parseConfigValue(key, keyType, value string) (any, error) {
	switch keyType {
	case "bool":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		return b, nil
	case "int":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected integer", key)
		}
		if n < 0 {
			return nil, fmt.Errorf("invalid value for %s: must be non-negative", key)
		}
		return n, nil
	case "list":
		items := []string{}
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items, nil
	}

	if key == "clipboard.mode" {
		mode, err := transform.ParseMode(value)
		if err != nil {
			return nil, err
		}
		return string(mode), nil
	}
	if key == "logging.level" && !slices.Contains(config.ValidLogLevels(), strings.ToLower(value)) {
		return nil, fmt.Errorf("invalid value for %s: %s\nValid options: %s",
			key, value, strings.Join(config.ValidLogLevels(), ", "))
	}
	return value, nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configFile := config.ConfigFile()
	v, err := fileViper(configFile)
	if err != nil {
		return err
	}
	if _, err := config.LoadFrom(v); err != nil {
		return fmt.Errorf("invalid configuration in %s: %w", configFile, err)
	}

	modified, err := tuiconfig.Run(v, configFile)
	if err != nil {
		return err
	}
	if modified {
		fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", configFile)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'caseclipper config set' to modify values", configFile)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigFile), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file at %s\n", configFile)
	fmt.Fprintln(out, "Edit this file to customize CaseClipper. A running TUI picks up changes immediately.")
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", config.ConfigFile())
	}

	// Also show config search paths
	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", config.ConfigFile())
	fmt.Fprintln(out, "  2. $HOME/.config/caseclipper/config.yaml")
	fmt.Fprintln(out, "  3. ./config.yaml (current directory)")
	fmt.Fprintln(out, "\nEnvironment variables: CASECLIPPER_* (e.g., CASECLIPPER_CLIPBOARD_MODE)")
	fmt.Fprintf(out, "Debug log: %s\n", filepath.Join(config.LogDir(), "debug.log"))
	return nil
}

const defaultConfigFile = `# CaseClipper Configuration

clipboard:
  # Start with the clipboard auto-filter enabled
  auto_filter: false
  # Case applied to newly copied text
  # Options: upper, lower, title, sentence, toggle
  mode: upper
  # How often the clipboard is checked, in milliseconds (50-60000)
  poll_interval_ms: 500
  # Glob patterns for clipboard content that is never converted
  # e.g. ["http*", "*@*.com"]
  ignore_patterns: []
  # Copy through the terminal (OSC 52) when no clipboard tool is installed
  osc52_fallback: true

tui:
  # Color theme: default, nord, dracula, solarized-light
  theme: default
  # Optional YAML theme file; see 'caseclipper config theme export'
  theme_file: ""
  # Click buttons and the auto-filter checkbox
  mouse: true

logging:
  # Write a JSON debug log
  enabled: true
  # Minimum level: debug, info, warn, error
  level: info
  # Rotate debug.log at this size in megabytes (0 = never)
  max_size_mb: 5
  # Number of rotated logs to keep
  max_backups: 2
`
