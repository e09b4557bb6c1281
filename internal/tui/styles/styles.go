// Package styles builds the lipgloss styles used by the CaseClipper TUI from
// a color palette. Palettes come from a built-in theme or a YAML theme file.
package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Styles contains every lipgloss style the TUI renders with. It is rebuilt
// whenever the theme changes.
type Styles struct {
	Palette *ColorPalette

	// Title bar
	Title    lipgloss.Style
	Subtitle lipgloss.Style

	// Text area
	TextArea        lipgloss.Style
	TextAreaFocused lipgloss.Style
	Selection       lipgloss.Style
	Cursor          lipgloss.Style
	Placeholder     lipgloss.Style

	// Buttons
	Button       lipgloss.Style
	ButtonActive lipgloss.Style
	ActionButton lipgloss.Style

	// Auto-filter checkbox
	CheckboxOn  lipgloss.Style
	CheckboxOff lipgloss.Style

	// Status line (counter) and notices
	Status        lipgloss.Style
	NoticeInfo    lipgloss.Style
	NoticeOK      lipgloss.Style
	NoticeError   lipgloss.Style
	ModeIndicator lipgloss.Style

	// Help bar
	HelpBar lipgloss.Style
	HelpKey lipgloss.Style
	Muted   lipgloss.Style
}

// New builds Styles from a palette.
func New(p *ColorPalette) *Styles {
	if p == nil {
		p = DefaultPalette()
	}

	border := lipgloss.RoundedBorder()
	button := lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.Surface).
		Padding(0, 1)

	return &Styles{
		Palette: p,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.Muted),

		TextArea: lipgloss.NewStyle().
			Border(border).
			BorderForeground(p.Border).
			Foreground(p.Text).
			Padding(0, 1),
		TextAreaFocused: lipgloss.NewStyle().
			Border(border).
			BorderForeground(p.Primary).
			Foreground(p.Text).
			Padding(0, 1),
		Selection: lipgloss.NewStyle().
			Background(p.SelectionBg).
			Foreground(p.SelectionFg),
		Cursor: lipgloss.NewStyle().
			Reverse(true),
		Placeholder: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),

		Button: button,
		ButtonActive: button.
			Foreground(p.Surface).
			Background(p.Primary).
			Bold(true),
		ActionButton: button.
			Foreground(p.Secondary),

		CheckboxOn: lipgloss.NewStyle().
			Foreground(p.Secondary).
			Bold(true),
		CheckboxOff: lipgloss.NewStyle().
			Foreground(p.Muted),

		Status: lipgloss.NewStyle().
			Foreground(p.Muted),
		NoticeInfo: lipgloss.NewStyle().
			Foreground(p.Warning),
		NoticeOK: lipgloss.NewStyle().
			Foreground(p.Secondary),
		NoticeError: lipgloss.NewStyle().
			Foreground(p.Error).
			Bold(true),
		ModeIndicator: lipgloss.NewStyle().
			Foreground(p.Primary),

		HelpBar: lipgloss.NewStyle().
			Foreground(p.Muted),
		HelpKey: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(p.Muted),
	}
}

// ForTheme returns Styles for a built-in theme.
func ForTheme(name string) (*Styles, error) {
	if !IsValidTheme(name) {
		return nil, fmt.Errorf("unknown theme %q", name)
	}
	return New(GetPalette(ThemeName(name))), nil
}

// Resolve picks the styles for the tui.theme / tui.theme_file settings. A
// theme file, when given, wins over the named theme and may start from any
// built-in palette through its base field.
func Resolve(theme, themeFile string) (*Styles, error) {
	if themeFile != "" {
		tf, err := LoadThemeFile(themeFile)
		if err != nil {
			return nil, err
		}
		return New(tf.ToPalette()), nil
	}
	return ForTheme(theme)
}
