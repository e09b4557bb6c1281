// Package buffer implements the editable text buffer behind the main text
// area: a rune slice with a cursor and an optional selection anchor.
//
// All positions are rune offsets in the range [0, Len()]. The buffer is not
// safe for concurrent use; it is owned by the TUI event loop.
package buffer

import (
	"strings"
	"unicode"
)

// Buffer is a mutable multi-line text buffer with a cursor and selection.
type Buffer struct {
	text      []rune
	cursor    int
	anchor    int
	hasAnchor bool
}

// New creates a buffer holding text with the cursor at the end.
func New(text string) *Buffer {
	b := &Buffer{}
	b.SetText(text)
	return b
}

// String returns the buffer contents.
func (b *Buffer) String() string {
	return string(b.text)
}

// Len returns the number of runes in the buffer.
func (b *Buffer) Len() int {
	return len(b.text)
}

// IsEmpty reports whether the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	return len(b.text) == 0
}

// Cursor returns the cursor offset.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// SetText replaces the contents, moves the cursor to the end and drops the
// selection.
func (b *Buffer) SetText(text string) {
	b.text = []rune(text)
	b.cursor = len(b.text)
	b.hasAnchor = false
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.text = b.text[:0]
	b.cursor = 0
	b.hasAnchor = false
}

// -----------------------------------------------------------------------------
// Selection
// -----------------------------------------------------------------------------

// Selection returns the selected range as [start, end). ok is false when
// nothing is selected, including when the anchor sits on the cursor.
func (b *Buffer) Selection() (start, end int, ok bool) {
	if !b.hasAnchor || b.anchor == b.cursor {
		return 0, 0, false
	}
	if b.anchor < b.cursor {
		return b.anchor, b.cursor, true
	}
	return b.cursor, b.anchor, true
}

// HasSelection reports whether a non-empty range is selected.
func (b *Buffer) HasSelection() bool {
	_, _, ok := b.Selection()
	return ok
}

// SelectedText returns the selected text, or "" without a selection.
func (b *Buffer) SelectedText() string {
	start, end, ok := b.Selection()
	if !ok {
		return ""
	}
	return string(b.text[start:end])
}

// Select selects [start, end), leaving the cursor at end.
func (b *Buffer) Select(start, end int) {
	b.anchor = b.clamp(start)
	b.cursor = b.clamp(end)
	b.hasAnchor = true
}

// SelectAll selects the whole buffer.
func (b *Buffer) SelectAll() {
	b.Select(0, len(b.text))
}

// ClearSelection drops the selection without moving the cursor.
func (b *Buffer) ClearSelection() {
	b.hasAnchor = false
}

// deleteSelection removes the selected range and reports whether anything
// was removed.
func (b *Buffer) deleteSelection() bool {
	start, end, ok := b.Selection()
	if !ok {
		b.hasAnchor = false
		return false
	}
	b.text = append(b.text[:start], b.text[end:]...)
	b.cursor = start
	b.hasAnchor = false
	return true
}

// ApplySelection rewrites the selected range with fn, or the whole buffer
// when nothing is selected. The rewritten range stays selected. It reports
// whether a selection was used.
func (b *Buffer) ApplySelection(fn func(string) string) bool {
	start, end, ok := b.Selection()
	if !ok {
		replaced := []rune(fn(string(b.text)))
		b.text = replaced
		b.cursor = b.clamp(b.cursor)
		b.hasAnchor = false
		return false
	}

	replaced := []rune(fn(string(b.text[start:end])))
	tail := append([]rune(nil), b.text[end:]...)
	b.text = append(append(b.text[:start], replaced...), tail...)
	b.Select(start, start+len(replaced))
	return true
}

// -----------------------------------------------------------------------------
// Editing
// -----------------------------------------------------------------------------

// Insert inserts s at the cursor, replacing the selection if there is one.
func (b *Buffer) Insert(s string) {
	b.deleteSelection()
	if s == "" {
		return
	}
	runes := []rune(s)
	tail := append([]rune(nil), b.text[b.cursor:]...)
	b.text = append(append(b.text[:b.cursor], runes...), tail...)
	b.cursor += len(runes)
}

// DeleteBack removes up to n runes before the cursor. With a selection it
// removes the selection instead.
func (b *Buffer) DeleteBack(n int) {
	if b.deleteSelection() || n <= 0 {
		return
	}
	if n > b.cursor {
		n = b.cursor
	}
	b.text = append(b.text[:b.cursor-n], b.text[b.cursor:]...)
	b.cursor -= n
}

// DeleteForward removes up to n runes after the cursor. With a selection it
// removes the selection instead.
func (b *Buffer) DeleteForward(n int) {
	if b.deleteSelection() || n <= 0 {
		return
	}
	if b.cursor+n > len(b.text) {
		n = len(b.text) - b.cursor
	}
	b.text = append(b.text[:b.cursor], b.text[b.cursor+n:]...)
}

// -----------------------------------------------------------------------------
// Cursor movement
// -----------------------------------------------------------------------------

// MoveTo moves the cursor to pos. When extend is true the selection grows
// from the current anchor (set at the old cursor if absent); otherwise the
// selection is dropped.
func (b *Buffer) MoveTo(pos int, extend bool) {
	if extend {
		if !b.hasAnchor {
			b.anchor = b.cursor
			b.hasAnchor = true
		}
	} else {
		b.hasAnchor = false
	}
	b.cursor = b.clamp(pos)
}

// MoveCursor moves the cursor by delta runes.
func (b *Buffer) MoveCursor(delta int, extend bool) {
	b.MoveTo(b.cursor+delta, extend)
}

// MoveToStart moves the cursor to the start of the buffer.
func (b *Buffer) MoveToStart(extend bool) {
	b.MoveTo(0, extend)
}

// MoveToEnd moves the cursor to the end of the buffer.
func (b *Buffer) MoveToEnd(extend bool) {
	b.MoveTo(len(b.text), extend)
}

// MoveLineStart moves the cursor to the start of its line.
func (b *Buffer) MoveLineStart(extend bool) {
	b.MoveTo(b.LineStart(), extend)
}

// MoveLineEnd moves the cursor to the end of its line.
func (b *Buffer) MoveLineEnd(extend bool) {
	b.MoveTo(b.LineEnd(), extend)
}

// MoveUp moves the cursor to the previous line, keeping the column where
// the line is long enough.
func (b *Buffer) MoveUp(extend bool) {
	start := b.LineStart()
	if start == 0 {
		b.MoveTo(0, extend)
		return
	}
	col := b.cursor - start
	prevEnd := start - 1
	prevStart := b.lineStartAt(prevEnd)
	b.MoveTo(min(prevStart+col, prevEnd), extend)
}

// MoveDown moves the cursor to the next line, keeping the column where the
// line is long enough.
func (b *Buffer) MoveDown(extend bool) {
	end := b.LineEnd()
	if end == len(b.text) {
		b.MoveTo(len(b.text), extend)
		return
	}
	col := b.cursor - b.LineStart()
	nextStart := end + 1
	nextEnd := b.lineEndAt(nextStart)
	b.MoveTo(min(nextStart+col, nextEnd), extend)
}

// MoveWordLeft moves the cursor to the previous word boundary.
func (b *Buffer) MoveWordLeft(extend bool) {
	b.MoveTo(b.PrevWordBoundary(), extend)
}

// MoveWordRight moves the cursor to the next word boundary.
func (b *Buffer) MoveWordRight(extend bool) {
	b.MoveTo(b.NextWordBoundary(), extend)
}

// LineStart returns the offset of the first rune on the cursor's line.
func (b *Buffer) LineStart() int {
	return b.lineStartAt(b.cursor)
}

// LineEnd returns the offset just past the last rune on the cursor's line.
func (b *Buffer) LineEnd() int {
	return b.lineEndAt(b.cursor)
}

func (b *Buffer) lineStartAt(pos int) int {
	for pos > 0 && b.text[pos-1] != '\n' {
		pos--
	}
	return pos
}

func (b *Buffer) lineEndAt(pos int) int {
	for pos < len(b.text) && b.text[pos] != '\n' {
		pos++
	}
	return pos
}

// PrevWordBoundary returns the start of the word before the cursor,
// skipping any whitespace directly before it.
func (b *Buffer) PrevWordBoundary() int {
	pos := b.cursor
	for pos > 0 && unicode.IsSpace(b.text[pos-1]) {
		pos--
	}
	for pos > 0 && !unicode.IsSpace(b.text[pos-1]) {
		pos--
	}
	return pos
}

// NextWordBoundary returns the end of the word after the cursor, skipping
// any whitespace directly after it.
func (b *Buffer) NextWordBoundary() int {
	pos := b.cursor
	for pos < len(b.text) && unicode.IsSpace(b.text[pos]) {
		pos++
	}
	for pos < len(b.text) && !unicode.IsSpace(b.text[pos]) {
		pos++
	}
	return pos
}

// -----------------------------------------------------------------------------
// Rendering helpers
// -----------------------------------------------------------------------------

// Lines returns the buffer split on newlines. An empty buffer has one empty
// line.
func (b *Buffer) Lines() []string {
	return strings.Split(string(b.text), "\n")
}

// CursorPosition returns the zero-based line and column of the cursor.
func (b *Buffer) CursorPosition() (line, col int) {
	return b.PositionOf(b.cursor)
}

// PositionOf converts a rune offset into a zero-based line and column.
func (b *Buffer) PositionOf(pos int) (line, col int) {
	pos = b.clamp(pos)
	for i := 0; i < pos; i++ {
		if b.text[i] == '\n' {
			line++
			col = 0
			continue
		}
		col++
	}
	return line, col
}

func (b *Buffer) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(b.text) {
		return len(b.text)
	}
	return pos
}
