package clipboard

import (
	"os"
	"sync"
)

// Terminal is a terminal output shared between the TUI renderer and OSC 52
// clipboard writes. Every write holds one lock, so a clipboard sequence is
// only emitted between frames. It keeps the file's Fd so Bubble Tea still
// detects the TTY when given a Terminal as its output.
type Terminal struct {
	*os.File
	mu sync.Mutex
}

// NewTerminal wraps f, usually os.Stdout.
func NewTerminal(f *os.File) *Terminal {
	return &Terminal{File: f}
}

// Write writes p in one locked call.
func (t *Terminal) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.File.Write(p)
}

// WriteString is Write for strings. It shadows (*os.File).WriteString,
// which io.WriteString would otherwise reach without the lock.
func (t *Terminal) WriteString(s string) (int, error) {
	return t.Write([]byte(s))
}

// ShareOutput points the OSC 52 fallback of a System clipboard at out.
// Other clipboards are left alone.
func ShareOutput(c Clipboard, out *Terminal) {
	if sys, ok := c.(*System); ok {
		sys.Out = out
	}
}
