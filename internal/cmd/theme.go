package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Iron-Ham/caseclipper/internal/config"
	"github.com/Iron-Ham/caseclipper/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Manage color themes",
	Long: `Manage color themes for the CaseClipper TUI.

Use 'theme list' to see the built-in themes.
Use 'theme export' to create a template for a custom theme file, then point
tui.theme_file at it.
Use 'theme info' to view a theme's colors.`,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available themes",
	Args:  cobra.NoArgs,
	RunE:  runThemeList,
}

var themeExportCmd = &cobra.Command{
	Use:   "export <theme-name> [output-file]",
	Short: "Export a theme to YAML",
	Long: `Export a built-in theme to YAML format for customization.

If no output file is specified, the YAML is printed to stdout.

Examples:
  caseclipper config theme export default              # Print default theme to stdout
  caseclipper config theme export nord my-theme.yaml   # Save nord theme to file
  caseclipper config set tui.theme_file my-theme.yaml  # Use it`,
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: styles.BuiltinThemes(),
	RunE:      runThemeExport,
}

var themeInfoCmd = &cobra.Command{
	Use:   "info <theme-name-or-file>",
	Short: "Show the colors of a theme",
	Args:  cobra.ExactArgs(1),
	RunE:  runThemeInfo,
}

func init() {
	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeExportCmd)
	themeCmd.AddCommand(themeInfoCmd)
	configCmd.AddCommand(themeCmd)
}

func runThemeList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg := config.Get()

	fmt.Fprintln(out, "Built-in themes:")
	for _, name := range styles.BuiltinThemes() {
		marker := " "
		if name == cfg.TUI.Theme && cfg.TUI.ThemeFile == "" {
			marker = "*"
		}
		fmt.Fprintf(out, " %s %s\n", marker, name)
	}

	if cfg.TUI.ThemeFile != "" {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Theme file in use: %s\n", cfg.TUI.ThemeFile)
	}
	return nil
}

func runThemeExport(cmd *cobra.Command, args []string) error {
	themeName := args[0]
	if !styles.IsValidTheme(themeName) {
		return fmt.Errorf("unknown theme: %s\n\nRun 'caseclipper config theme list' to see available themes", themeName)
	}

	data, err := styles.ExportTheme(styles.ThemeName(themeName))
	if err != nil {
		return fmt.Errorf("exporting theme: %w", err)
	}

	// If output file specified, write to file
	if len(args) > 1 {
		outputPath := args[1]
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			return fmt.Errorf("writing to %s: %w", outputPath, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Theme exported to: %s\n", outputPath)
		return nil
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runThemeInfo(cmd *cobra.Command, args []string) error {
	target := args[0]
	out := cmd.OutOrStdout()

	var palette *styles.ColorPalette
	switch {
	case styles.IsValidTheme(target):
		fmt.Fprintf(out, "Theme: %s (built-in)\n", target)
		palette = styles.GetPalette(styles.ThemeName(target))
	case strings.HasSuffix(target, ".yaml") || strings.HasSuffix(target, ".yml"):
		tf, err := styles.LoadThemeFile(target)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Theme: %s (file %s, base %s)\n", tf.Name, target, tf.Base)
		if tf.Author != "" {
			fmt.Fprintf(out, "Author: %s\n", tf.Author)
		}
		palette = tf.ToPalette()
	default:
		return fmt.Errorf("unknown theme: %s\n\nRun 'caseclipper config theme list' to see available themes", target)
	}

	fmt.Fprintln(out)
	for _, c := range []struct {
		name  string
		color lipgloss.Color
	}{
		{"Primary", palette.Primary},
		{"Secondary", palette.Secondary},
		{"Warning", palette.Warning},
		{"Error", palette.Error},
		{"Muted", palette.Muted},
		{"Surface", palette.Surface},
		{"Text", palette.Text},
		{"Border", palette.Border},
		{"SelectionBg", palette.SelectionBg},
		{"SelectionFg", palette.SelectionFg},
	} {
		swatch := lipgloss.NewStyle().Background(c.color).Render("  ")
		fmt.Fprintf(out, "  %-12s %s %s\n", c.name+":", swatch, c.color)
	}
	return nil
}
