package cmd

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/caseclipper/internal/transform"
	"github.com/spf13/cobra"
)

const modesSample = "the quick Brown fox. jumps over"

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List the available case modes",
	Args:  cobra.NoArgs,
	RunE:  runModes,
}

func init() {
	rootCmd.AddCommand(modesCmd)
}

func runModes(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Sample: %s\n\n", modesSample)
	for _, m := range transform.Modes() {
		fmt.Fprintf(out, "  %-10s %-10s %s\n", m, m.Label(), transform.Apply(modesSample, m))
	}
	return nil
}

func modeList() string {
	return strings.Join(transform.ValidModes(), ", ")
}
