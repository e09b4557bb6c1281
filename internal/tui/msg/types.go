// Package msg defines the message types used by the TUI's Bubble Tea event
// loop and the commands that produce them.
//
// Clipboard I/O happens inside commands; the results come back to Update as
// messages, so the model's state is only ever touched on the event loop.
package msg

import (
	"time"

	"github.com/Iron-Ham/caseclipper/internal/config"
)

// PollTickMsg is delivered when it is time to read the clipboard again.
type PollTickMsg time.Time

// ClipboardPolledMsg carries the result of a scheduled clipboard read.
type ClipboardPolledMsg struct {
	Content string
	Err     error
}

// WriteSource tells why the clipboard was written.
type WriteSource int

const (
	// WriteCopy is a write requested by the Copy button.
	WriteCopy WriteSource = iota
	// WriteAutoFilter is a rewrite made by the auto-filter.
	WriteAutoFilter
)

// String returns the source name used in logs.
func (s WriteSource) String() string {
	switch s {
	case WriteCopy:
		return "copy"
	case WriteAutoFilter:
		return "auto_filter"
	default:
		return "unknown"
	}
}

// ClipboardWrittenMsg reports the outcome of a clipboard write.
type ClipboardWrittenMsg struct {
	Text   string
	Source WriteSource
	Err    error
}

// ClipboardPastedMsg carries clipboard text requested by the paste action.
type ClipboardPastedMsg struct {
	Text string
	Err  error
}

// ConfigReloadedMsg is sent when the config file changed on disk. Err is set
// when the new file failed to load or validate; Config is nil then.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// ClearNoticeMsg expires the notice with the given sequence number.
type ClearNoticeMsg struct {
	Seq int
}
