package tui

import (
	"strings"

	"github.com/Iron-Ham/caseclipper/internal/tui/keymap"
	"github.com/Iron-Ham/caseclipper/internal/util"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const placeholder = "Type or paste text here"

// View renders the window.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	width := max(m.width, minWidth)

	if m.showHelp {
		return m.renderHelp(width)
	}

	var b strings.Builder
	b.WriteString(m.renderTitle(width))
	b.WriteString("\n")
	b.WriteString(m.renderTextArea())
	b.WriteString("\n")
	b.WriteString(m.renderButtons(width))
	b.WriteString("\n")
	b.WriteString(m.renderStatusRow(width))
	b.WriteString("\n")
	b.WriteString(m.renderNotice(width))
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar(width))
	return b.String()
}

func (m Model) renderTitle(width int) string {
	left := m.styles.Title.Render("CaseClipper") + m.styles.Subtitle.Render(" – Case Converter")
	if m.lastApplied == "" {
		return ansi.Truncate(left, width, "")
	}
	right := m.styles.ModeIndicator.Render(m.lastApplied.Label())
	return joinEnds(left, right, width)
}

func (m Model) renderTextArea() string {
	return m.styles.TextAreaFocused.
		Width(m.viewport.Width + 2).
		Height(m.viewport.Height).
		Render(m.viewport.View())
}

// renderRows draws the wrapped text with the selection and cursor applied.
// Runs of equally styled runes are rendered together.
func (m Model) renderRows(text []rune) string {
	if len(text) == 0 {
		return m.styles.Cursor.Render(" ") + m.styles.Placeholder.Render(placeholder)
	}

	selStart, selEnd, hasSel := m.buf.Selection()
	cursor := m.buf.Cursor()

	const (
		plain = iota
		selected
		atCursor
	)
	styleOf := func(i int) int {
		switch {
		case i == cursor:
			return atCursor
		case hasSel && i >= selStart && i < selEnd:
			return selected
		}
		return plain
	}
	render := func(kind int, s string) string {
		switch kind {
		case selected:
			return m.styles.Selection.Render(s)
		case atCursor:
			return m.styles.Cursor.Render(s)
		}
		return s
	}

	lines := make([]string, len(m.rows))
	for n, row := range m.rows {
		var line, run strings.Builder
		kind := plain
		flush := func() {
			if run.Len() > 0 {
				line.WriteString(render(kind, run.String()))
				run.Reset()
			}
		}
		for i := row.Start; i < row.End; i++ {
			if k := styleOf(i); k != kind {
				flush()
				kind = k
			}
			r := text[i]
			if r < ' ' {
				r = ' '
			}
			run.WriteRune(r)
		}
		flush()
		if row.LineEnd && cursor == row.End {
			line.WriteString(m.styles.Cursor.Render(" "))
		}
		lines[n] = line.String()
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderButtons(width int) string {
	var b strings.Builder
	x := 0
	for _, btn := range layoutButtons(m.styles) {
		if gap := btn.X0 - x; gap > 0 {
			b.WriteString(strings.Repeat(" ", gap))
		}
		style := m.styles.Button
		switch {
		case btn.Command == keymap.CmdCopy || btn.Command == keymap.CmdClear:
			style = m.styles.ActionButton
		default:
			if mode, ok := commandMode(btn.Command); ok && mode == m.lastApplied {
				style = m.styles.ButtonActive
			}
		}
		b.WriteString(style.Render("[" + btn.Label + "]"))
		x = btn.X1
	}
	return ansi.Truncate(b.String(), width, "")
}

func (m Model) renderStatusRow(width int) string {
	box := m.styles.CheckboxOff.Render(checkboxText(false))
	if m.autoFilter {
		box = m.styles.CheckboxOn.Render(checkboxText(true))
	}
	return joinEnds(box, m.styles.Status.Render(m.stats.String()), width)
}

func (m Model) renderNotice(width int) string {
	if m.notice == "" {
		return ""
	}
	style := m.styles.NoticeInfo
	switch m.noticeKind {
	case noticeOK:
		style = m.styles.NoticeOK
	case noticeError:
		style = m.styles.NoticeError
	}
	return util.TruncateWidth(style.Render(m.notice), width)
}

func (m Model) renderHelpBar(width int) string {
	items := []struct {
		key  string
		desc string
	}{
		{"f1-f5", "convert"},
		{"alt+c", "copy"},
		{"alt+x", "clear"},
		{"alt+a", "auto-filter"},
		{"f10", "help"},
		{"ctrl+q", "quit"},
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = m.styles.HelpKey.Render(it.key) + " " + m.styles.HelpBar.Render(it.desc)
	}
	return ansi.Truncate(strings.Join(parts, m.styles.Muted.Render("  ")), width, "")
}

// renderHelp draws the key binding overlay. Categories are packed into
// columns so the overlay fits the terminal height.
func (m Model) renderHelp(width int) string {
	maxRows := max(m.height-4, minTextRows)

	var columns []string
	var column []string
	for _, category := range m.keymap.GetCategories(keymap.ModeEdit) {
		block := []string{m.styles.Subtitle.Render(category)}
		for _, entry := range m.keymap.Help(keymap.ModeEdit, category) {
			keys := m.styles.HelpKey.Render(strings.Join(entry.Keys, ", "))
			block = append(block, "  "+lipgloss.NewStyle().Width(26).Render(keys)+entry.Description)
		}
		block = append(block, "")

		if len(column) > 0 && len(column)+len(block) > maxRows {
			columns = append(columns, strings.Join(column, "\n"))
			column = nil
		}
		column = append(column, block...)
	}
	if len(column) > 0 {
		columns = append(columns, strings.Join(column, "\n"))
	}

	cells := make([]string, 0, 2*len(columns))
	for i, c := range columns {
		if i > 0 {
			cells = append(cells, "    ")
		}
		cells = append(cells, c)
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, cells...)

	lines := strings.Split(body, "\n")
	for i, line := range lines {
		lines[i] = util.TruncateWidth(line, width)
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("CaseClipper key bindings"))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("f10, esc or q to close"))
	return b.String()
}

// joinEnds places left and right at opposite ends of a width-wide line.
// When both do not fit, right is dropped.
func joinEnds(left, right string, width int) string {
	lw, rw := lipgloss.Width(left), lipgloss.Width(right)
	if lw+1+rw > width {
		return ansi.Truncate(left, width, "")
	}
	return left + strings.Repeat(" ", width-lw-rw) + right
}
