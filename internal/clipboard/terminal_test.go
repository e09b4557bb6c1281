package clipboard

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func tempTerminal(t *testing.T) (*Terminal, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tty")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating output file: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return NewTerminal(f), path
}

func TestTerminalWritesAreWhole(t *testing.T) {
	term, path := tempTerminal(t)

	const (
		writers = 16
		size    = 8192
	)
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			block := strings.Repeat(string(rune('a'+i)), size)
			var err error
			if i%2 == 0 {
				_, err = term.Write([]byte(block))
			} else {
				_, err = term.WriteString(block)
			}
			if err != nil {
				t.Errorf("write %d: %v", i, err)
			}
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(data) != writers*size {
		t.Fatalf("wrote %d bytes, want %d", len(data), writers*size)
	}
	for off := 0; off < len(data); off += size {
		block := data[off : off+size]
		if n := bytes.Count(block, block[:1]); n != size {
			t.Errorf("block at %d mixes writers", off)
		}
	}
}

func TestShareOutput(t *testing.T) {
	term, path := tempTerminal(t)

	s, mem, buf := fakeSystem(true, true, nil)
	mem.FailWrites(errors.New("no display"))
	ShareOutput(s, term)

	if err := s.WriteAll("shared"); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Error("OSC 52 still written to the old output")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.HasPrefix(string(data), "\x1b]52;c;") {
		t.Errorf("terminal output = %q, want an OSC 52 sequence", data)
	}

	// Clipboards without an OSC 52 fallback are left alone.
	ShareOutput(NewMemory(""), term)
}
