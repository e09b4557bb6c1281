// Package clipboard provides access to the system clipboard and the
// auto-filter logic that rewrites new clipboard contents.
package clipboard

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/Iron-Ham/caseclipper/internal/errors"
	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// Clipboard reads and writes plain text.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// System is the operating system clipboard, reached through the platform
// utilities used by github.com/atotto/clipboard (pbcopy, xclip, xsel,
// wl-clipboard, the Windows API). When no utility is available, writes can
// fall back to an OSC 52 escape sequence so terminals that support it still
// receive the text; reads then report ErrClipboardUnavailable.
type System struct {
	// OSC52Fallback enables writing through OSC 52 when the platform
	// clipboard is unsupported or fails.
	OSC52Fallback bool
	// Out receives OSC 52 sequences. Defaults to os.Stdout.
	Out io.Writer

	// Overridable for tests.
	unsupported func() bool
	read        func() (string, error)
	write       func(string) error
	getenv      func(string) string
}

// NewSystem returns a System clipboard.
func NewSystem(osc52Fallback bool) *System {
	return &System{
		OSC52Fallback: osc52Fallback,
		Out:           os.Stdout,
		unsupported:   func() bool { return clipboard.Unsupported },
		read:          clipboard.ReadAll,
		write:         clipboard.WriteAll,
		getenv:        os.Getenv,
	}
}

// Backend names the mechanism System will use for writes.
func (s *System) Backend() string {
	if s.unsupported() {
		if s.OSC52Fallback {
			return "osc52"
		}
		return "none"
	}
	return "system"
}

// ReadAll returns the clipboard text.
func (s *System) ReadAll() (string, error) {
	if s.unsupported() {
		// Nothing to read from is a property of the environment, not a failure.
		return "", errors.NewClipboardError("read", errors.ErrClipboardUnavailable).
			WithBackend("none").
			WithSeverity(errors.SeverityInfo)
	}
	text, err := s.read()
	if err != nil {
		return "", errors.NewClipboardError("read", err).WithBackend("system")
	}
	return text, nil
}

// WriteAll replaces the clipboard text.
func (s *System) WriteAll(text string) error {
	if !s.unsupported() {
		err := s.write(text)
		if err == nil {
			return nil
		}
		if !s.OSC52Fallback {
			return errors.NewClipboardError("write", err).WithBackend("system")
		}
	} else if !s.OSC52Fallback {
		return errors.NewClipboardError("write", errors.ErrClipboardUnavailable).WithBackend("none")
	}
	return s.writeOSC52(text)
}

func (s *System) writeOSC52(text string) error {
	seq := osc52.New(text)
	switch {
	case s.getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(s.getenv("TERM"), "screen"):
		seq = seq.Screen()
	}

	out := s.Out
	if out == nil {
		out = os.Stdout
	}
	if _, err := seq.WriteTo(out); err != nil {
		return errors.NewClipboardError("write", err).WithBackend("osc52")
	}
	return nil
}

// Memory is an in-process clipboard. It is safe for concurrent use.
type Memory struct {
	mu       sync.Mutex
	text     string
	readErr  error
	writeErr error
	writes   []string
}

// NewMemory returns a Memory clipboard holding text.
func NewMemory(text string) *Memory {
	return &Memory{text: text}
}

// ReadAll returns the stored text or the configured read error.
func (m *Memory) ReadAll() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return "", m.readErr
	}
	return m.text, nil
}

// WriteAll stores text unless a write error is configured.
func (m *Memory) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.text = text
	m.writes = append(m.writes, text)
	return nil
}

// Set replaces the stored text as if another program had copied it.
func (m *Memory) Set(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
}

// FailReads makes subsequent reads return err; nil restores reads.
func (m *Memory) FailReads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = err
}

// FailWrites makes subsequent writes return err; nil restores writes.
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// Writes returns every text written through WriteAll, oldest first.
func (m *Memory) Writes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.writes...)
}

var (
	_ Clipboard = (*System)(nil)
	_ Clipboard = (*Memory)(nil)
)
