// Package config implements the interactive settings editor started by
// "caseclipper config edit".
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	appconfig "github.com/Iron-Ham/caseclipper/internal/config"
	"github.com/Iron-Ham/caseclipper/internal/transform"
	"github.com/Iron-Ham/caseclipper/internal/tui/styles"
	"github.com/Iron-Ham/caseclipper/internal/util"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
)

// Item types.
const (
	TypeBool   = "bool"
	TypeInt    = "int"
	TypeString = "string"
	TypeSelect = "select"
	TypeList   = "list"
)

// ConfigItem represents a single configuration item
type ConfigItem struct {
	Key         string
	Label       string
	Description string
	Type        string
	Options     []string // For select type
}

// Category represents a group of config items
type Category struct {
	Name  string
	Items []ConfigItem
}

// Categories returns the editable settings grouped as shown on screen.
func Categories() []Category {
	return []Category{
		{
			Name: "Clipboard",
			Items: []ConfigItem{
				{
					Key:         "clipboard.auto_filter",
					Label:       "Auto-filter on start",
					Description: "Start the TUI with the clipboard auto-filter checkbox ticked",
					Type:        TypeBool,
				},
				{
					Key:         "clipboard.mode",
					Label:       "Auto-filter mode",
					Description: "Case applied to newly copied text",
					Type:        TypeSelect,
					Options:     transform.ValidModes(),
				},
				{
					Key:         "clipboard.poll_interval_ms",
					Label:       "Poll interval (ms)",
					Description: fmt.Sprintf("How often the clipboard is checked (%d-%d)", appconfig.MinPollIntervalMs, appconfig.MaxPollIntervalMs),
					Type:        TypeInt,
				},
				{
					Key:         "clipboard.ignore_patterns",
					Label:       "Ignore patterns",
					Description: "Comma-separated globs; matching clipboard content is left alone (e.g. http*)",
					Type:        TypeList,
				},
				{
					Key:         "clipboard.osc52_fallback",
					Label:       "OSC 52 fallback",
					Description: "Copy through the terminal when no clipboard tool is installed",
					Type:        TypeBool,
				},
			},
		},
		{
			Name: "TUI",
			Items: []ConfigItem{
				{
					Key:         "tui.theme",
					Label:       "Theme",
					Description: "Built-in color theme",
					Type:        TypeSelect,
					Options:     styles.BuiltinThemes(),
				},
				{
					Key:         "tui.theme_file",
					Label:       "Theme file",
					Description: "YAML theme file overriding the theme (empty for none)",
					Type:        TypeString,
				},
				{
					Key:         "tui.mouse",
					Label:       "Mouse",
					Description: "Click buttons and the auto-filter checkbox",
					Type:        TypeBool,
				},
			},
		},
		{
			Name: "Logging",
			Items: []ConfigItem{
				{
					Key:         "logging.enabled",
					Label:       "Debug log",
					Description: "Write a JSON debug log (view it with 'caseclipper logs')",
					Type:        TypeBool,
				},
				{
					Key:         "logging.level",
					Label:       "Level",
					Description: "Minimum level written to the debug log",
					Type:        TypeSelect,
					Options:     appconfig.ValidLogLevels(),
				},
				{
					Key:         "logging.max_size_mb",
					Label:       "Max size (MB)",
					Description: "Rotate the debug log at this size (0 = never)",
					Type:        TypeInt,
				},
				{
					Key:         "logging.max_backups",
					Label:       "Max backups",
					Description: "Number of rotated logs to keep",
					Type:        TypeInt,
				},
			},
		},
	}
}

// Model is the Bubbletea model for the interactive config UI. It edits v
// and writes it to path after every accepted change.
type Model struct {
	v      *viper.Viper
	path   string
	styles *styles.Styles

	categories     []Category
	categoryIndex  int
	itemIndex      int
	width          int
	height         int
	editing        bool
	textInput      textinput.Model
	selectIndex    int // For select-type options
	errorMsg       string
	infoMsg        string
	quitting       bool
	configModified bool
}

// New creates a config editor for v, saving to path.
func New(v *viper.Viper, path string) Model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 40

	st, err := styles.ForTheme(v.GetString("tui.theme"))
	if err != nil {
		st = styles.New(styles.DefaultPalette())
	}

	return Model{
		v:          v,
		path:       path,
		styles:     st,
		categories: Categories(),
		textInput:  ti,
	}
}

// Modified reports whether any change was saved.
func (m Model) Modified() bool {
	return m.configModified
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Clear messages on any key
		m.errorMsg = ""
		m.infoMsg = ""

		if m.editing {
			return m.handleEditingKeypress(msg)
		}

		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			m.itemIndex--
			if m.itemIndex < 0 {
				m.categoryIndex = (m.categoryIndex - 1 + len(m.categories)) % len(m.categories)
				m.itemIndex = len(m.categories[m.categoryIndex].Items) - 1
			}

		case "down", "j":
			m.itemIndex++
			if m.itemIndex >= len(m.categories[m.categoryIndex].Items) {
				m.categoryIndex = (m.categoryIndex + 1) % len(m.categories)
				m.itemIndex = 0
			}

		case "tab":
			m.categoryIndex = (m.categoryIndex + 1) % len(m.categories)
			m.itemIndex = 0

		case "shift+tab":
			m.categoryIndex = (m.categoryIndex - 1 + len(m.categories)) % len(m.categories)
			m.itemIndex = 0

		case "enter", " ":
			item := m.currentItem()
			switch item.Type {
			case TypeBool:
				m.apply(item, !m.v.GetBool(item.Key))
			case TypeSelect:
				m.editing = true
				m.selectIndex = m.getCurrentSelectIndex()
			default:
				m.editing = true
				m.textInput.SetValue(m.getDisplayValue(item))
				m.textInput.CursorEnd()
				m.textInput.Focus()
			}

		case "r":
			m.resetCurrentToDefault()
		}
	}

	return m, nil
}

func (m Model) handleEditingKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item := m.currentItem()

	switch msg.String() {
	case "esc":
		m.editing = false
		m.textInput.SetValue("")
		return m, nil

	case "enter":
		if item.Type == TypeSelect {
			if m.apply(item, item.Options[m.selectIndex]) {
				m.editing = false
			}
			return m, nil
		}
		value, err := parseValue(item, m.textInput.Value())
		if err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		if m.apply(item, value) {
			m.editing = false
			m.textInput.SetValue("")
		}
		return m, nil

	case "up", "k":
		if item.Type == TypeSelect {
			m.selectIndex = (m.selectIndex - 1 + len(item.Options)) % len(item.Options)
			return m, nil
		}

	case "down", "j":
		if item.Type == TypeSelect {
			m.selectIndex = (m.selectIndex + 1) % len(item.Options)
			return m, nil
		}
	}

	if item.Type != TypeSelect {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// parseValue converts text typed for item into the value stored in viper.
func parseValue(item ConfigItem, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch item.Type {
	case TypeInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("expected integer value")
		}
		if n < 0 {
			return nil, fmt.Errorf("value must be non-negative")
		}
		return n, nil
	case TypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("expected true or false")
		}
		return b, nil
	case TypeList:
		items := []string{}
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
		return items, nil
	case TypeSelect:
		if !slices.Contains(item.Options, value) {
			return nil, fmt.Errorf("invalid option: %s", value)
		}
	}
	return value, nil
}

// apply sets item to value, validates the whole configuration and saves it.
// An invalid value is rolled back and reported.
func (m *Model) apply(item ConfigItem, value any) bool {
	previous := m.v.Get(item.Key)
	m.v.Set(item.Key, value)

	if _, err := appconfig.LoadFrom(m.v); err != nil {
		m.v.Set(item.Key, previous)
		m.errorMsg = err.Error()
		return false
	}
	return m.saveConfig()
}

func (m *Model) saveConfig() bool {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		m.errorMsg = fmt.Sprintf("Failed to create config directory: %v", err)
		return false
	}
	if err := m.v.WriteConfigAs(m.path); err != nil {
		m.errorMsg = fmt.Sprintf("Failed to save config: %v", err)
		return false
	}

	m.infoMsg = "Saved!"
	m.configModified = true
	return true
}

func (m *Model) resetCurrentToDefault() {
	item := m.currentItem()

	defaults := viper.New()
	appconfig.SetDefaultsOn(defaults)
	if m.apply(item, defaults.Get(item.Key)) {
		m.infoMsg = fmt.Sprintf("Reset %s to default", item.Label)
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	st := m.styles

	b.WriteString(st.Title.Render("CaseClipper Configuration"))
	b.WriteString("\n\n")
	b.WriteString(st.Muted.Render("Config file: " + m.path))
	b.WriteString("\n\n")

	for ci, cat := range m.categories {
		isActiveCategory := ci == m.categoryIndex

		catStyle := st.Muted.Bold(true)
		if isActiveCategory {
			catStyle = st.Title
		}
		b.WriteString(catStyle.Render(fmt.Sprintf("[ %s ]", cat.Name)))
		b.WriteString("\n")

		for ii, item := range cat.Items {
			b.WriteString(m.renderItem(item, isActiveCategory && ii == m.itemIndex))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.editing {
		b.WriteString(m.renderEditOverlay())
	} else {
		b.WriteString(st.Muted.Render(m.currentItem().Description))
	}
	b.WriteString("\n")

	if m.errorMsg != "" {
		b.WriteString("\n")
		b.WriteString(st.NoticeError.Render("Error: " + m.errorMsg))
	}
	if m.infoMsg != "" {
		b.WriteString("\n")
		b.WriteString(st.NoticeOK.Render(m.infoMsg))
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderItem(item ConfigItem, selected bool) string {
	value := m.getDisplayValue(item)
	if value == "" {
		value = "(none)"
	}

	paddedLabel := fmt.Sprintf("%-25s", util.TruncateRunes(item.Label, 25))

	st := m.styles
	if selected {
		cursor := st.CheckboxOn.Render(">")
		return fmt.Sprintf("  %s %s  %s", cursor, lipgloss.NewStyle().Bold(true).Render(paddedLabel), st.ModeIndicator.Render(value))
	}
	return fmt.Sprintf("    %s  %s", st.Muted.Render(paddedLabel), value)
}

func (m Model) renderEditOverlay() string {
	item := m.currentItem()
	st := m.styles

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(st.Palette.Primary).
		Padding(1, 2).
		Width(50)

	var content strings.Builder
	if item.Type == TypeSelect {
		content.WriteString(fmt.Sprintf("Select %s:\n\n", item.Label))
		for i, opt := range item.Options {
			if i == m.selectIndex {
				content.WriteString(st.ButtonActive.Render(" > "+opt+" ") + "\n")
			} else {
				content.WriteString("   " + opt + "\n")
			}
		}
		content.WriteString("\n" + st.Muted.Render("j/k or arrows to select, enter to confirm, esc to cancel"))
	} else {
		content.WriteString(fmt.Sprintf("Edit %s:\n\n", item.Label))
		content.WriteString(m.textInput.View())
		content.WriteString("\n\n" + st.Muted.Render("enter to save, esc to cancel"))
	}

	return "\n" + borderStyle.Render(content.String())
}

func (m Model) renderHelp() string {
	key := m.styles.HelpKey.Render
	bar := m.styles.HelpBar

	if m.editing {
		return bar.Render(key("enter") + " save  " + key("esc") + " cancel")
	}
	return bar.Render(
		key("j/k") + " navigate  " +
			key("tab") + " next category  " +
			key("enter/space") + " edit  " +
			key("r") + " reset  " +
			key("q") + " quit",
	)
}

func (m Model) currentItem() ConfigItem {
	return m.categories[m.categoryIndex].Items[m.itemIndex]
}

func (m Model) getDisplayValue(item ConfigItem) string {
	switch item.Type {
	case TypeBool:
		return strconv.FormatBool(m.v.GetBool(item.Key))
	case TypeInt:
		return strconv.Itoa(m.v.GetInt(item.Key))
	case TypeList:
		return strings.Join(m.v.GetStringSlice(item.Key), ", ")
	default:
		return m.v.GetString(item.Key)
	}
}

func (m Model) getCurrentSelectIndex() int {
	item := m.currentItem()
	current := strings.ToLower(m.v.GetString(item.Key))
	if i := slices.Index(item.Options, current); i >= 0 {
		return i
	}
	return 0
}

// Run starts the interactive config UI and reports whether anything was
// saved.
func Run(v *viper.Viper, path string) (bool, error) {
	p := tea.NewProgram(New(v, path), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, _ := final.(Model)
	return m.Modified(), nil
}
