package msg

import (
	"time"

	"github.com/Iron-Ham/caseclipper/internal/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// PollTick returns a command that sends a PollTickMsg after interval.
func PollTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return PollTickMsg(t)
	})
}

// ReadClipboard returns a command that reads the clipboard for the poll loop.
func ReadClipboard(clip clipboard.Clipboard) tea.Cmd {
	return func() tea.Msg {
		content, err := clip.ReadAll()
		return ClipboardPolledMsg{Content: content, Err: err}
	}
}

// WriteClipboard returns a command that writes text to the clipboard.
func WriteClipboard(clip clipboard.Clipboard, text string, source WriteSource) tea.Cmd {
	return func() tea.Msg {
		err := clip.WriteAll(text)
		return ClipboardWrittenMsg{Text: text, Source: source, Err: err}
	}
}

// PasteClipboard returns a command that reads the clipboard for pasting into
// the text area.
func PasteClipboard(clip clipboard.Clipboard) tea.Cmd {
	return func() tea.Msg {
		text, err := clip.ReadAll()
		return ClipboardPastedMsg{Text: text, Err: err}
	}
}

// ClearNoticeAfter returns a command that expires notice seq after d.
func ClearNoticeAfter(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearNoticeMsg{Seq: seq}
	})
}
