// Package testutil provides testing utilities for CaseClipper tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/Iron-Ham/caseclipper/internal/config"
	"github.com/spf13/viper"
)

// IsolateConfig points the config and state directories at a temporary
// directory and registers the defaults on the global viper instance.
// Returns the temporary directory; config lives under "config/caseclipper"
// and the debug log under "state/caseclipper".
func IsolateConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	config.SetDefaults()
	return dir
}

// NewViper returns a private viper instance carrying only the defaults.
func NewViper(t *testing.T) *viper.Viper {
	t.Helper()

	v := viper.New()
	config.SetDefaultsOn(v)
	return v
}

// WriteConfigFile writes content as the user's config file and returns its
// path. Call IsolateConfig first.
func WriteConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := config.ConfigFile()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

// Eventually polls cond every 10ms until it holds or timeout passes.
// Reports whether cond held.
func Eventually(timeout time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for {
		if cond() {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// SkipIfNoGolangciLint skips the test if golangci-lint is not installed.
func SkipIfNoGolangciLint(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("golangci-lint"); err != nil {
		t.Skip("golangci-lint not found in PATH, skipping test")
	}
}
