package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Iron-Ham/caseclipper/internal/config"
	"github.com/Iron-Ham/caseclipper/internal/errors"
	"github.com/Iron-Ham/caseclipper/internal/transform"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <mode> [text...]",
	Short: "Convert text and print the result",
	Long: `Convert text to the given case and print it to stdout.

The text is taken from the remaining arguments, joined with spaces. Without
text arguments it is read from stdin, which must be a pipe or a file.

Examples:
  caseclipper convert upper hello world        # HELLO WORLD
  echo "a.b.c" | caseclipper convert sentence  # A. B. C
  caseclipper convert title --copy "my title"  # also copy the result`,
	Args:      cobra.MinimumNArgs(1),
	ValidArgs: transform.ValidModes(),
	RunE:      runConvert,
}

var convertCopy bool

// stdinIsTerminal reports whether stdin is an interactive terminal.
var stdinIsTerminal = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().BoolVar(&convertCopy, "copy", false, "also copy the result to the clipboard")
}

func runConvert(cmd *cobra.Command, args []string) error {
	mode, err := transform.ParseMode(args[0])
	if err != nil {
		return err
	}

	text, fromArgs, err := convertInput(cmd, args[1:])
	if err != nil {
		return err
	}

	result := transform.Apply(text, mode)
	out := cmd.OutOrStdout()
	if fromArgs {
		fmt.Fprintln(out, result)
	} else {
		fmt.Fprint(out, result)
	}

	if convertCopy {
		if result == "" {
			return errors.ErrNothingToCopy
		}
		cfg := config.Get()
		if err := newClipboard(cfg).WriteAll(result); err != nil {
			return errors.Wrap(err, "copying result")
		}
	}
	return nil
}

// convertInput returns the text to convert and whether it came from args.
func convertInput(cmd *cobra.Command, args []string) (string, bool, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), true, nil
	}

	in := cmd.InOrStdin()
	if in == os.Stdin && stdinIsTerminal() {
		return "", false, errors.Wrap(errors.ErrNoInput, "pass text as arguments or pipe it on stdin")
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", false, errors.Wrap(err, "reading stdin")
	}
	return string(data), false, nil
}
