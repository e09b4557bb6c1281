package styles

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ThemeFile represents a custom theme definition loaded from YAML.
//
//	name: Midnight
//	version: "1"
//	base: nord
//	colors:
//	  primary: "#FF79C6"
//	  selection_bg: "#282A36"
type ThemeFile struct {
	// Name is the theme's display name
	Name string `yaml:"name"`
	// Author is the theme creator's name (optional)
	Author string `yaml:"author,omitempty"`
	// Version is the theme file format version (currently "1")
	Version string `yaml:"version"`
	// Base is the built-in theme supplying colors left unset (default: "default")
	Base string `yaml:"base,omitempty"`
	// Colors overrides palette entries
	Colors ThemeColors `yaml:"colors"`
}

// ThemeColors contains color overrides. Empty entries keep the base
// palette's color. Colors must be hex (#RRGGBB or #RGB).
type ThemeColors struct {
	Primary     string `yaml:"primary,omitempty"`
	Secondary   string `yaml:"secondary,omitempty"`
	Warning     string `yaml:"warning,omitempty"`
	Error       string `yaml:"error,omitempty"`
	Muted       string `yaml:"muted,omitempty"`
	Surface     string `yaml:"surface,omitempty"`
	Text        string `yaml:"text,omitempty"`
	Border      string `yaml:"border,omitempty"`
	SelectionBg string `yaml:"selection_bg,omitempty"`
	SelectionFg string `yaml:"selection_fg,omitempty"`
}

// hexColorRegex validates hex color format.
var hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// LoadThemeFile loads a theme from a YAML file.
func LoadThemeFile(path string) (*ThemeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}

	var theme ThemeFile
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("parsing theme file: %w", err)
	}

	if err := theme.Validate(); err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}

	return &theme, nil
}

// Validate checks that the theme file is well-formed.
func (t *ThemeFile) Validate() error {
	if t.Name == "" {
		return errors.New("theme name is required")
	}
	if t.Version == "" {
		return errors.New("theme version is required")
	}
	if t.Version != "1" {
		return fmt.Errorf("unsupported theme version: %s (supported: 1)", t.Version)
	}
	if t.Base != "" && !IsValidTheme(t.Base) {
		return fmt.Errorf("unknown base theme: %s", t.Base)
	}

	for _, c := range t.Colors.entries() {
		if c.value != "" && !isValidHexColor(c.value) {
			return fmt.Errorf("color '%s' has invalid format: %s (expected #RGB or #RRGGBB)", c.name, c.value)
		}
	}
	return nil
}

type colorEntry struct {
	name  string
	value string
	dst   func(*ColorPalette) *lipgloss.Color
}

// entries lists the overrides in a fixed order so validation errors are
// deterministic.
func (c ThemeColors) entries() []colorEntry {
	return []colorEntry{
		{"primary", c.Primary, func(p *ColorPalette) *lipgloss.Color { return &p.Primary }},
		{"secondary", c.Secondary, func(p *ColorPalette) *lipgloss.Color { return &p.Secondary }},
		{"warning", c.Warning, func(p *ColorPalette) *lipgloss.Color { return &p.Warning }},
		{"error", c.Error, func(p *ColorPalette) *lipgloss.Color { return &p.Error }},
		{"muted", c.Muted, func(p *ColorPalette) *lipgloss.Color { return &p.Muted }},
		{"surface", c.Surface, func(p *ColorPalette) *lipgloss.Color { return &p.Surface }},
		{"text", c.Text, func(p *ColorPalette) *lipgloss.Color { return &p.Text }},
		{"border", c.Border, func(p *ColorPalette) *lipgloss.Color { return &p.Border }},
		{"selection_bg", c.SelectionBg, func(p *ColorPalette) *lipgloss.Color { return &p.SelectionBg }},
		{"selection_fg", c.SelectionFg, func(p *ColorPalette) *lipgloss.Color { return &p.SelectionFg }},
	}
}

// isValidHexColor checks if a string is a valid hex color.
func isValidHexColor(color string) bool {
	return hexColorRegex.MatchString(color)
}

// ToPalette applies the overrides to the base palette.
func (t *ThemeFile) ToPalette() *ColorPalette {
	p := GetPalette(ThemeName(t.Base))
	for _, c := range t.Colors.entries() {
		if c.value != "" {
			*c.dst(p) = lipgloss.Color(c.value)
		}
	}
	return p
}

// ExportTheme renders a built-in palette as a theme file, a starting point
// for custom themes.
func ExportTheme(name ThemeName) ([]byte, error) {
	if !IsValidTheme(string(name)) {
		return nil, fmt.Errorf("unknown theme %q", name)
	}
	p := GetPalette(name)
	tf := ThemeFile{
		Name:    string(name),
		Version: "1",
		Base:    string(name),
		Colors: ThemeColors{
			Primary:     string(p.Primary),
			Secondary:   string(p.Secondary),
			Warning:     string(p.Warning),
			Error:       string(p.Error),
			Muted:       string(p.Muted),
			Surface:     string(p.Surface),
			Text:        string(p.Text),
			Border:      string(p.Border),
			SelectionBg: string(p.SelectionBg),
			SelectionFg: string(p.SelectionFg),
		},
	}
	return yaml.Marshal(&tf)
}
