package clipboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	apperrors "github.com/Iron-Ham/caseclipper/internal/errors"
)

// fakeSystem returns a System wired to in-memory functions.
func fakeSystem(unsupported bool, osc52 bool, env map[string]string) (*System, *Memory, *bytes.Buffer) {
	mem := NewMemory("")
	out := &bytes.Buffer{}
	s := &System{
		OSC52Fallback: osc52,
		Out:           out,
		unsupported:   func() bool { return unsupported },
		read:          mem.ReadAll,
		write:         mem.WriteAll,
		getenv:        func(k string) string { return env[k] },
	}
	return s, mem, out
}

func TestSystemBackend(t *testing.T) {
	tests := []struct {
		name        string
		unsupported bool
		osc52       bool
		want        string
	}{
		{"system available", false, true, "system"},
		{"system available without fallback", false, false, "system"},
		{"unsupported with fallback", true, true, "osc52"},
		{"unsupported without fallback", true, false, "none"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := fakeSystem(tt.unsupported, tt.osc52, nil)
			if got := s.Backend(); got != tt.want {
				t.Errorf("Backend() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSystemReadWrite(t *testing.T) {
	s, mem, out := fakeSystem(false, true, nil)
	mem.Set("copied")

	got, err := s.ReadAll()
	if err != nil || got != "copied" {
		t.Fatalf("ReadAll() = %q, %v", got, err)
	}
	if err := s.WriteAll("NEW"); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if text, _ := mem.ReadAll(); text != "NEW" {
		t.Errorf("clipboard = %q, want NEW", text)
	}
	if out.Len() != 0 {
		t.Error("OSC 52 should not be used when the system clipboard works")
	}
}

func TestSystemReadUnsupported(t *testing.T) {
	s, _, _ := fakeSystem(true, true, nil)
	_, err := s.ReadAll()
	if !errors.Is(err, apperrors.ErrClipboardUnavailable) {
		t.Fatalf("ReadAll() error = %v, want ErrClipboardUnavailable", err)
	}
	var clipErr *apperrors.ClipboardError
	if !errors.As(err, &clipErr) || clipErr.Op != "read" {
		t.Errorf("ReadAll() error = %#v, want ClipboardError with op=read", err)
	}
	if got := apperrors.GetSeverity(err); got != apperrors.SeverityInfo {
		t.Errorf("GetSeverity() = %v, want info", got)
	}
}

func TestSystemReadFailureIsWrapped(t *testing.T) {
	s, mem, _ := fakeSystem(false, false, nil)
	cause := errors.New("xclip exited 1")
	mem.FailReads(cause)

	_, err := s.ReadAll()
	if !errors.Is(err, cause) {
		t.Errorf("ReadAll() error = %v, want wrapped cause", err)
	}
}

func TestSystemWriteFallsBackToOSC52(t *testing.T) {
	tests := []struct {
		name        string
		unsupported bool
		env         map[string]string
		wantPrefix  string
	}{
		{"unsupported", true, nil, "\x1b]52;c;"},
		{"write failure", false, nil, "\x1b]52;c;"},
		{"inside tmux", true, map[string]string{"TMUX": "/tmp/tmux-1000/default"}, "\x1bPtmux;"},
		{"inside screen", true, map[string]string{"TERM": "screen-256color"}, "\x1bP"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mem, out := fakeSystem(tt.unsupported, true, tt.env)
			mem.FailWrites(errors.New("no display"))

			if err := s.WriteAll("HELLO"); err != nil {
				t.Fatalf("WriteAll() error = %v", err)
			}
			got := out.String()
			if !strings.HasPrefix(got, tt.wantPrefix) {
				t.Errorf("OSC 52 output = %q, want prefix %q", got, tt.wantPrefix)
			}
			encoded := base64.StdEncoding.EncodeToString([]byte("HELLO"))
			if !strings.Contains(got, encoded) {
				t.Errorf("OSC 52 output = %q, want payload %q", got, encoded)
			}
		})
	}
}

func TestSystemWriteWithoutFallback(t *testing.T) {
	t.Run("unsupported", func(t *testing.T) {
		s, _, out := fakeSystem(true, false, nil)
		err := s.WriteAll("x")
		if !errors.Is(err, apperrors.ErrClipboardUnavailable) {
			t.Errorf("WriteAll() error = %v, want ErrClipboardUnavailable", err)
		}
		if got := apperrors.GetSeverity(err); got != apperrors.SeverityWarning {
			t.Errorf("GetSeverity() = %v, want warning", got)
		}
		if out.Len() != 0 {
			t.Error("OSC 52 written although fallback is disabled")
		}
	})

	t.Run("write failure", func(t *testing.T) {
		s, mem, _ := fakeSystem(false, false, nil)
		cause := errors.New("pbcopy missing")
		mem.FailWrites(cause)
		if err := s.WriteAll("x"); !errors.Is(err, cause) {
			t.Errorf("WriteAll() error = %v, want wrapped cause", err)
		}
	})
}

func TestMemory(t *testing.T) {
	m := NewMemory("start")
	if got, _ := m.ReadAll(); got != "start" {
		t.Errorf("ReadAll() = %q, want start", got)
	}

	_ = m.WriteAll("one")
	m.Set("external")
	_ = m.WriteAll("two")

	writes := m.Writes()
	if len(writes) != 2 || writes[0] != "one" || writes[1] != "two" {
		t.Errorf("Writes() = %q, want [one two]", writes)
	}

	boom := errors.New("boom")
	m.FailReads(boom)
	if _, err := m.ReadAll(); !errors.Is(err, boom) {
		t.Errorf("ReadAll() error = %v, want boom", err)
	}
	m.FailReads(nil)

	m.FailWrites(boom)
	if err := m.WriteAll("three"); !errors.Is(err, boom) {
		t.Errorf("WriteAll() error = %v, want boom", err)
	}
	if got, _ := m.ReadAll(); got != "two" {
		t.Errorf("failed write changed content to %q", got)
	}
}
