package tui

import (
	"github.com/Iron-Ham/caseclipper/internal/tui/keymap"
	"github.com/Iron-Ham/caseclipper/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Layout constants. The screen is, top to bottom: title line, bordered text
// area, button row, checkbox/counter row, notice line, help bar.
const (
	titleRows      = 1
	textAreaChrome = 2 // top and bottom border
	footerRows     = 4 // buttons, checkbox/counter, notice, help bar
	minTextRows    = 3
	minWidth       = 20

	// Border plus horizontal padding on each side of the text area.
	textAreaInsetX = 2

	checkboxLabel = "Clipboard auto-filter"
)

// textAreaSize returns the inner size of the text area for a terminal of
// the given size.
func textAreaSize(width, height int) (w, h int) {
	width = max(width, minWidth)
	w = width - 2*textAreaInsetX
	h = max(height-titleRows-textAreaChrome-footerRows, minTextRows)
	return w, h
}

// Screen rows of the footer widgets for a terminal height.
func buttonRowY(height int) int {
	_, h := textAreaSize(minWidth, height)
	return titleRows + textAreaChrome + h
}

func checkboxRowY(height int) int { return buttonRowY(height) + 1 }

// textAreaOrigin is the screen cell of the first text cell.
func textAreaOrigin() (x, y int) {
	return textAreaInsetX, titleRows + 1
}

// button is a clickable label in the button row.
type button struct {
	Label   string
	Command keymap.Command
	X0, X1  int // occupied columns, [X0, X1)
}

// buttonSpec lists the buttons left to right with the gap preceding each.
var buttonSpec = []struct {
	label string
	cmd   keymap.Command
	gap   int
}{
	{"UPPER", keymap.CmdUpper, 0},
	{"lower", keymap.CmdLower, 1},
	{"Title", keymap.CmdTitle, 1},
	{"Sentence", keymap.CmdSentence, 1},
	{"tOGGLE", keymap.CmdToggle, 1},
	{"Copy", keymap.CmdCopy, 2},
	{"Clear", keymap.CmdClear, 1},
}

// layoutButtons positions the button row for the given styles.
func layoutButtons(st *styles.Styles) []button {
	buttons := make([]button, 0, len(buttonSpec))
	x := 0
	for _, spec := range buttonSpec {
		x += spec.gap
		w := lipgloss.Width(st.Button.Render("[" + spec.label + "]"))
		buttons = append(buttons, button{Label: spec.label, Command: spec.cmd, X0: x, X1: x + w})
		x += w
	}
	return buttons
}

// checkboxText renders the checkbox label without styling.
func checkboxText(on bool) string {
	if on {
		return "[x] " + checkboxLabel
	}
	return "[ ] " + checkboxLabel
}

// visualRow is one screen row of the text area: the runes [Start, End) of
// the buffer. LineEnd marks the last row of a logical line.
type visualRow struct {
	Start, End int
	LineEnd    bool
}

// wrapRows splits text into screen rows no wider than width cells. Lines
// wrap at character boundaries; a newline always starts a new row.
func wrapRows(text []rune, width int) []visualRow {
	width = max(width, 1)
	var rows []visualRow

	start, cells := 0, 0
	for i, r := range text {
		if r == '\n' {
			rows = append(rows, visualRow{Start: start, End: i, LineEnd: true})
			start, cells = i+1, 0
			continue
		}
		w := cellWidth(r)
		if cells+w > width && i > start {
			rows = append(rows, visualRow{Start: start, End: i})
			start, cells = i, 0
		}
		cells += w
	}
	rows = append(rows, visualRow{Start: start, End: len(text), LineEnd: true})
	return rows
}

// rowOf returns the index of the row the cursor at pos is drawn on. A
// position at the end of a soft-wrapped row belongs to the next row.
func rowOf(rows []visualRow, pos int) int {
	for i, r := range rows {
		if pos >= r.Start && (pos < r.End || (pos == r.End && r.LineEnd)) {
			return i
		}
	}
	return len(rows) - 1
}

// offsetAt maps a click at column col of row to a buffer offset.
func offsetAt(text []rune, rows []visualRow, row, col int) int {
	if len(rows) == 0 {
		return 0
	}
	row = min(max(row, 0), len(rows)-1)
	r := rows[row]
	cells := 0
	for i := r.Start; i < r.End; i++ {
		w := cellWidth(text[i])
		if cells+w > col {
			return i
		}
		cells += w
	}
	if !r.LineEnd && r.End > r.Start {
		return r.End - 1
	}
	return r.End
}

// cellWidth is the number of terminal cells r occupies in the text area.
// Tabs and other zero-width controls are drawn as a single space.
func cellWidth(r rune) int {
	if r == '\t' {
		return 1
	}
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	if r < ' ' {
		return 1
	}
	return 0
}
