package styles

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// ThemeName represents a named color theme.
type ThemeName string

// Available theme names.
const (
	ThemeDefault        ThemeName = "default"         // Purple/green dark theme
	ThemeNord           ThemeName = "nord"            // Nord theme - cool blue-gray
	ThemeDracula        ThemeName = "dracula"         // Dracula theme colors
	ThemeSolarizedLight ThemeName = "solarized-light" // Solarized Light by Ethan Schoonover
)

// BuiltinThemes returns all built-in theme names.
func BuiltinThemes() []string {
	return []string{
		string(ThemeDefault),
		string(ThemeNord),
		string(ThemeDracula),
		string(ThemeSolarizedLight),
	}
}

// IsValidTheme checks if a theme name is a built-in theme.
func IsValidTheme(name string) bool {
	return slices.Contains(BuiltinThemes(), name)
}

// ColorPalette defines the color scheme for a theme.
type ColorPalette struct {
	// Primary accent color (title, focused border, active mode button)
	Primary lipgloss.Color
	// Secondary accent color (success notices, checked checkbox)
	Secondary lipgloss.Color
	// Warning color (informational notices)
	Warning lipgloss.Color
	// Error color (failed clipboard writes)
	Error lipgloss.Color
	// Muted color (counter, help text, unchecked checkbox)
	Muted lipgloss.Color
	// Surface color (button background)
	Surface lipgloss.Color
	// Text color (primary text)
	Text lipgloss.Color
	// Border color (text area border)
	Border lipgloss.Color

	// Selection colors for the text area
	SelectionBg lipgloss.Color
	SelectionFg lipgloss.Color
}

// DefaultPalette returns the default purple/green dark theme palette.
func DefaultPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#A78BFA"), // Purple (violet-400)
		Secondary: lipgloss.Color("#10B981"), // Green
		Warning:   lipgloss.Color("#F59E0B"), // Amber
		Error:     lipgloss.Color("#F87171"), // Red (red-400)
		Muted:     lipgloss.Color("#9CA3AF"), // Gray
		Surface:   lipgloss.Color("#1F2937"), // Dark surface
		Text:      lipgloss.Color("#F9FAFB"), // Light text
		Border:    lipgloss.Color("#6B7280"), // Gray-500

		SelectionBg: lipgloss.Color("#4C1D95"), // Deep violet
		SelectionFg: lipgloss.Color("#F9FAFB"),
	}
}

// NordPalette returns the Nord theme palette.
func NordPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#88C0D0"), // Frost cyan
		Secondary: lipgloss.Color("#A3BE8C"), // Aurora green
		Warning:   lipgloss.Color("#EBCB8B"), // Aurora yellow
		Error:     lipgloss.Color("#BF616A"), // Aurora red
		Muted:     lipgloss.Color("#7B88A1"), // Polar night light
		Surface:   lipgloss.Color("#3B4252"), // Polar night
		Text:      lipgloss.Color("#ECEFF4"), // Snow storm
		Border:    lipgloss.Color("#4C566A"),

		SelectionBg: lipgloss.Color("#5E81AC"), // Frost blue
		SelectionFg: lipgloss.Color("#ECEFF4"),
	}
}

// DraculaPalette returns the Dracula theme palette.
func DraculaPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#BD93F9"), // Purple
		Secondary: lipgloss.Color("#50FA7B"), // Green
		Warning:   lipgloss.Color("#F1FA8C"), // Yellow
		Error:     lipgloss.Color("#FF5555"), // Red
		Muted:     lipgloss.Color("#6272A4"), // Comment
		Surface:   lipgloss.Color("#44475A"), // Current line
		Text:      lipgloss.Color("#F8F8F2"), // Foreground
		Border:    lipgloss.Color("#6272A4"),

		SelectionBg: lipgloss.Color("#44475A"),
		SelectionFg: lipgloss.Color("#FF79C6"), // Pink
	}
}

// SolarizedLightPalette returns the Solarized Light palette.
func SolarizedLightPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#268BD2"), // Blue
		Secondary: lipgloss.Color("#859900"), // Green
		Warning:   lipgloss.Color("#B58900"), // Yellow
		Error:     lipgloss.Color("#DC322F"), // Red
		Muted:     lipgloss.Color("#657B83"), // base00
		Surface:   lipgloss.Color("#EEE8D5"), // base2
		Text:      lipgloss.Color("#073642"), // base02
		Border:    lipgloss.Color("#93A1A1"), // base1

		SelectionBg: lipgloss.Color("#073642"),
		SelectionFg: lipgloss.Color("#FDF6E3"), // base3
	}
}

// GetPalette returns the palette for a built-in theme, falling back to the
// default palette for unknown names.
func GetPalette(name ThemeName) *ColorPalette {
	switch name {
	case ThemeNord:
		return NordPalette()
	case ThemeDracula:
		return DraculaPalette()
	case ThemeSolarizedLight:
		return SolarizedLightPalette()
	default:
		return DefaultPalette()
	}
}
