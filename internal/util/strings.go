// Package util holds the string helpers shared by the TUI and the CLI.
package util

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Ellipsis marks text cut by the truncation helpers.
const Ellipsis = "…"

// TruncateRunes shortens s to at most maxLen runes, ending with Ellipsis when
// anything was removed. It ignores display width and escape sequences.
func TruncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + Ellipsis
}

// TruncateWidth shortens s to at most width terminal cells, ending with
// Ellipsis when anything was removed. Styling escapes are preserved.
func TruncateWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, Ellipsis)
}
