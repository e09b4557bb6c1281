package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Iron-Ham/caseclipper/internal/clipboard"
	"github.com/Iron-Ham/caseclipper/internal/config"
	"github.com/Iron-Ham/caseclipper/internal/logging"
	"github.com/Iron-Ham/caseclipper/internal/transform"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Convert new clipboard content without the TUI",
	Long: `Run the clipboard auto-filter headless until interrupted.

Content already on the clipboard when watch starts is left alone; anything
copied afterwards is converted in place. Mode, poll interval and ignore
patterns come from the clipboard section of the config file.

Examples:
  caseclipper watch              # convert to the configured mode
  caseclipper watch --mode lower
  caseclipper watch -v           # log every poll to stderr`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

var (
	watchMode    string
	watchVerbose bool
)

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchMode, "mode", "", "case to convert to ("+modeList()+"), overriding clipboard.mode")
	watchCmd.Flags().BoolVarP(&watchVerbose, "verbose", "v", false, "log to stderr at debug level")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	mode := cfg.Clipboard.FilterMode()
	if watchMode != "" {
		if mode, err = transform.ParseMode(watchMode); err != nil {
			return err
		}
	}

	var logger *logging.Logger
	if watchVerbose {
		// Wrapped so closing the logger leaves stderr open.
		logger = logging.New(struct{ io.Writer }{os.Stderr}, logging.LevelDebug)
	} else {
		logger = newLogger(cfg)
	}
	defer func() { _ = logger.Close() }()
	logger = logger.WithComponent("watch")

	watcher, err := clipboard.NewWatcher(mode, cfg.Clipboard.IgnorePatterns, logger)
	if err != nil {
		return err
	}
	poller := clipboard.NewPoller(newClipboard(cfg), watcher, cfg.Clipboard.PollInterval(), logger)

	out := cmd.OutOrStdout()
	poller.OnRewrite = func(original, converted string) {
		fmt.Fprintf(out, "Converted %d characters to %s\n", len([]rune(original)), mode.Label())
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(out, "Watching clipboard (%s, every %s). Press Ctrl+C to stop.\n",
		mode.Label(), cfg.Clipboard.PollInterval())
	return poller.Run(ctx)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
