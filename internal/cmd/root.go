// Package cmd implements the caseclipper command line.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Iron-Ham/caseclipper/internal/clipboard"
	"github.com/Iron-Ham/caseclipper/internal/config"
	"github.com/Iron-Ham/caseclipper/internal/errors"
	"github.com/Iron-Ham/caseclipper/internal/logging"
	"github.com/Iron-Ham/caseclipper/internal/tui"
	"github.com/Iron-Ham/caseclipper/internal/tui/msg"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "caseclipper",
	Short: "Convert text case in a terminal window",
	Long: `CaseClipper converts text between UPPER, lower, Title, Sentence and
tOGGLE case. Type or paste into the text area and press a button (or F1-F5),
then copy the result.

With the clipboard auto-filter enabled, anything newly copied to the system
clipboard is converted in place while CaseClipper is running.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// PrintError reports an error returned by Execute. Errors that are not
// user-facing also point at the debug log.
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, "Error:", err)
	if !errors.IsUserFacing(err) {
		fmt.Fprintln(w, "Set logging.enabled and run 'caseclipper logs' for details.")
	}
}

// noSystemClipboard keeps every clipboard operation inside the process.
var noSystemClipboard bool

// newClipboard is swapped out in tests.
var newClipboard = func(cfg *config.Config) clipboard.Clipboard {
	if noSystemClipboard {
		return clipboard.NewMemory("")
	}
	return clipboard.NewSystem(cfg.Clipboard.OSC52Fallback)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/caseclipper/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	rootCmd.PersistentFlags().BoolVar(&noSystemClipboard, "no-system-clipboard", false, "use a private in-process clipboard instead of the system one")

	rootCmd.Flags().Bool("auto-filter", false, "start with the clipboard auto-filter enabled")
	rootCmd.Flags().String("mode", "", "case applied by the auto-filter ("+modeList()+")")
	_ = viper.BindPFlag("clipboard.auto_filter", rootCmd.Flags().Lookup("auto-filter"))
	_ = viper.BindPFlag("clipboard.mode", rootCmd.Flags().Lookup("mode"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/caseclipper")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("CASECLIPPER")
	// Replace dots with underscores for nested keys in env vars
	// e.g., CASECLIPPER_CLIPBOARD_POLL_INTERVAL_MS for clipboard.poll_interval_ms
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// newLogger opens debug.log for cfg. Failures fall back to a NopLogger: the
// log is a debugging aid and never stops the program.
func newLogger(cfg *config.Config) *logging.Logger {
	if !cfg.Logging.Enabled {
		return logging.NopLogger()
	}
	logger, err := logging.NewFileLogger(config.LogDir(), cfg.Logging.Level, cfg.Logging.Rotation())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		return logging.NopLogger()
	}
	return logger
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(cfg)
	defer func() { _ = logger.Close() }()

	clip := newClipboard(cfg)
	if sys, ok := clip.(*clipboard.System); ok {
		logger.Info("clipboard backend selected", "backend", sys.Backend())
	}
	// OSC 52 writes run in commands while the renderer draws frames.
	out := clipboard.NewTerminal(os.Stdout)
	clipboard.ShareOutput(clip, out)

	opts := tui.Options{
		Clipboard: clip,
		Config:    cfg,
		Logger:    logger,
		Output:    out,
	}
	// Size the layout up front so the first frame is drawn at full size.
	if termWidth, termHeight, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		opts.Width, opts.Height = termWidth, termHeight
	}
	app := tui.New(opts)

	watchConfig(logger, func(cfg *config.Config, err error) {
		app.Send(msg.ConfigReloadedMsg{Config: cfg, Err: err})
	})

	return app.Run()
}

// watchConfig reloads the config file when it changes on disk and passes
// the result to onChange. Nothing is watched when no file was read.
func watchConfig(logger *logging.Logger, onChange func(*config.Config, error)) {
	file := viper.ConfigFileUsed()
	if file == "" {
		return
	}

	viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		logger.Info("config file changed", "file", e.Name, "op", e.Op.String())
		cfg, err := config.Load()
		if err != nil {
			logger.Warn("config reload failed", "error", err.Error())
		}
		onChange(cfg, err)
	})
	viper.WatchConfig()
	logger.Debug("watching config file", "file", file)
}
