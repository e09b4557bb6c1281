package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestNewRotatingWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", LogFileName)

	w, err := NewRotatingWriter(path, DefaultRotationConfig())
	if err != nil {
		t.Fatalf("NewRotatingWriter failed: %v", err)
	}
	defer func() { _ = w.Close() }()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("log file not created: %v", err)
	}
	if w.Path() != path {
		t.Errorf("Path() = %q, want %q", w.Path(), path)
	}
	if w.Size() != 0 {
		t.Errorf("Size() = %d, want 0", w.Size())
	}
}

func TestRotatingWriterAppendsToExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), LogFileName)
	if err := os.WriteFile(path, []byte("existing\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewRotatingWriter(path, RotationConfig{})
	if err != nil {
		t.Fatalf("NewRotatingWriter failed: %v", err)
	}
	if w.Size() != int64(len("existing\n")) {
		t.Errorf("Size() = %d, want existing file size", w.Size())
	}
	if _, err := w.Write([]byte("more\n")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	_ = w.Close()

	content, _ := os.ReadFile(path)
	if string(content) != "existing\nmore\n" {
		t.Errorf("content = %q", content)
	}
}

func TestRotatingWriterRotates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, LogFileName)

	w, err := NewRotatingWriter(path, RotationConfig{MaxSizeMB: 1, MaxBackups: 2})
	if err != nil {
		t.Fatalf("NewRotatingWriter failed: %v", err)
	}
	defer func() { _ = w.Close() }()

	chunk := bytes.Repeat([]byte("x"), 700*1024)
	for i := 0; i < 4; i++ {
		if _, err := w.Write(chunk); err != nil {
			t.Fatalf("Write %d failed: %v", i, err)
		}
	}

	for _, name := range []string{LogFileName + ".1", LogFileName + ".2"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected backup %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, LogFileName+".3")); !os.IsNotExist(err) {
		t.Error("backups beyond MaxBackups should be removed")
	}
	if w.Size() != int64(len(chunk)) {
		t.Errorf("Size() after rotation = %d, want %d", w.Size(), len(chunk))
	}
}

func TestRotatingWriterWithoutBackups(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, LogFileName)

	w, err := NewRotatingWriter(path, RotationConfig{MaxSizeMB: 1})
	if err != nil {
		t.Fatalf("NewRotatingWriter failed: %v", err)
	}
	defer func() { _ = w.Close() }()

	chunk := bytes.Repeat([]byte("y"), 700*1024)
	_, _ = w.Write(chunk)
	_, _ = w.Write(chunk)

	if _, err := os.Stat(filepath.Join(dir, LogFileName+".1")); !os.IsNotExist(err) {
		t.Error("no backup should be kept when MaxBackups is 0")
	}
	if w.Size() != int64(len(chunk)) {
		t.Errorf("Size() = %d, want %d", w.Size(), len(chunk))
	}
}

func TestRotatingWriterClose(t *testing.T) {
	w, err := NewRotatingWriter(filepath.Join(t.TempDir(), LogFileName), RotationConfig{})
	if err != nil {
		t.Fatalf("NewRotatingWriter failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}
	if _, err := w.Write([]byte("late")); err == nil {
		t.Error("Write after Close should fail")
	}
}
