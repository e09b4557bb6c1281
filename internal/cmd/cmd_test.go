package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Iron-Ham/caseclipper/internal/clipboard"
	"github.com/Iron-Ham/caseclipper/internal/config"
	"github.com/Iron-Ham/caseclipper/internal/errors"
	"github.com/Iron-Ham/caseclipper/internal/testutil"
	"github.com/spf13/cobra"
)

// newTestCommand returns a bare command whose output is captured.
func newTestCommand(stdin string) (*cobra.Command, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	c := &cobra.Command{}
	c.SetOut(buf)
	c.SetErr(buf)
	c.SetIn(strings.NewReader(stdin))
	return c, buf
}

func useMemoryClipboard(t *testing.T, mem *clipboard.Memory) {
	t.Helper()
	orig := newClipboard
	newClipboard = func(*config.Config) clipboard.Clipboard { return mem }
	t.Cleanup(func() { newClipboard = orig })
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "caseclipper" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "caseclipper")
	}

	expectedCmds := []string{"convert", "watch", "modes", "config", "logs"}
	cmdMap := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		cmdMap[cmd.Name()] = true
	}
	for _, expected := range expectedCmds {
		if !cmdMap[expected] {
			t.Errorf("expected subcommand %q not found", expected)
		}
	}

	for _, flag := range []string{"auto-filter", "mode"} {
		if rootCmd.Flags().Lookup(flag) == nil {
			t.Errorf("root flag --%s not registered", flag)
		}
	}
	for _, flag := range []string{"config", "no-system-clipboard"} {
		if rootCmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s not registered", flag)
		}
	}
}

func TestNoSystemClipboard(t *testing.T) {
	cfg := config.Default()
	if _, ok := newClipboard(cfg).(*clipboard.System); !ok {
		t.Errorf("newClipboard() = %T, want *clipboard.System by default", newClipboard(cfg))
	}

	noSystemClipboard = true
	t.Cleanup(func() { noSystemClipboard = false })
	if _, ok := newClipboard(cfg).(*clipboard.Memory); !ok {
		t.Errorf("newClipboard() = %T, want *clipboard.Memory with --no-system-clipboard", newClipboard(cfg))
	}
}

func TestConvertArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"upper", []string{"upper", "Hello", "World"}, "HELLO WORLD\n"},
		{"lower", []string{"lower", "HELLO"}, "hello\n"},
		{"sentence", []string{"sentence", "a.b.c"}, "A. B. C\n"},
		{"toggle", []string{"toggle", "AbC"}, "aBc\n"},
		{"title", []string{"TITLE", "they're here"}, "They'Re Here\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, out := newTestCommand("")
			if err := runConvert(c, tt.args); err != nil {
				t.Fatalf("runConvert() error = %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestConvertStdin(t *testing.T) {
	c, out := newTestCommand("first line\nsecond line\n")
	if err := runConvert(c, []string{"upper"}); err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}
	if got := out.String(); got != "FIRST LINE\nSECOND LINE\n" {
		t.Errorf("output = %q", got)
	}
}

func TestConvertUnknownMode(t *testing.T) {
	c, _ := newTestCommand("")
	err := runConvert(c, []string{"shout", "x"})
	if !errors.Is(err, errors.ErrUnknownMode) {
		t.Errorf("runConvert() error = %v, want ErrUnknownMode", err)
	}
}

func TestConvertCopy(t *testing.T) {
	testutil.IsolateConfig(t)
	mem := clipboard.NewMemory("")
	useMemoryClipboard(t, mem)
	convertCopy = true
	t.Cleanup(func() { convertCopy = false })

	c, _ := newTestCommand("")
	if err := runConvert(c, []string{"lower", "COPY", "ME"}); err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}
	if got, _ := mem.ReadAll(); got != "copy me" {
		t.Errorf("clipboard = %q, want %q", got, "copy me")
	}

	c, _ = newTestCommand("")
	if err := runConvert(c, []string{"lower", ""}); !errors.Is(err, errors.ErrNothingToCopy) {
		t.Errorf("copying empty result error = %v, want ErrNothingToCopy", err)
	}
}

func TestModes(t *testing.T) {
	c, out := newTestCommand("")
	if err := runModes(c, nil); err != nil {
		t.Fatalf("runModes() error = %v", err)
	}
	for _, want := range []string{
		"THE QUICK BROWN FOX. JUMPS OVER",
		"The quick brown fox. Jumps over",
		"THE QUICK bROWN FOX. JUMPS OVER",
		"tOGGLE",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("modes output missing %q:\n%s", want, out.String())
		}
	}
}

func TestWatchStopsOnCancel(t *testing.T) {
	dir := testutil.IsolateConfig(t)
	mem := clipboard.NewMemory("already here")
	useMemoryClipboard(t, mem)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, out := newTestCommand("")
	c.SetContext(ctx)
	if err := runWatch(c, nil); err != nil {
		t.Fatalf("runWatch() error = %v", err)
	}
	if !strings.Contains(out.String(), "Watching clipboard (UPPER") {
		t.Errorf("output = %q", out.String())
	}
	if len(mem.Writes()) != 0 {
		t.Errorf("content present at startup was rewritten: %v", mem.Writes())
	}

	logData, err := os.ReadFile(filepath.Join(dir, "state", "caseclipper", "debug.log"))
	if err != nil {
		t.Fatalf("reading debug.log: %v", err)
	}
	if !bytes.Contains(logData, []byte("clipboard watcher started")) {
		t.Errorf("debug.log missing start entry:\n%s", logData)
	}
}

func TestWatchRejectsBadMode(t *testing.T) {
	testutil.IsolateConfig(t)
	watchMode = "loud"
	t.Cleanup(func() { watchMode = "" })

	c, _ := newTestCommand("")
	if err := runWatch(c, nil); !errors.Is(err, errors.ErrUnknownMode) {
		t.Errorf("runWatch() error = %v, want ErrUnknownMode", err)
	}
}

func TestConfigShow(t *testing.T) {
	testutil.IsolateConfig(t)
	c, out := newTestCommand("")
	if err := runConfigShow(c, nil); err != nil {
		t.Fatalf("runConfigShow() error = %v", err)
	}
	for _, want := range []string{"# Config file:", "poll_interval_ms: 500", "mode: upper", "theme: default"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("config show missing %q:\n%s", want, out.String())
		}
	}
}

func TestConfigInit(t *testing.T) {
	testutil.IsolateConfig(t)
	c, _ := newTestCommand("")
	if err := runConfigInit(c, nil); err != nil {
		t.Fatalf("runConfigInit() error = %v", err)
	}
	if _, err := os.Stat(config.ConfigFile()); err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if err := runConfigInit(c, nil); err == nil {
		t.Error("second runConfigInit() should fail")
	}
}

func TestDefaultConfigFileMatchesDefaults(t *testing.T) {
	v := testutil.NewViper(t)
	v.SetConfigType("yaml")
	if err := v.ReadConfig(strings.NewReader(defaultConfigFile)); err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}
	cfg, err := config.LoadFrom(v)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	want := config.Default()
	if cfg.Clipboard.Mode != want.Clipboard.Mode ||
		cfg.Clipboard.PollIntervalMs != want.Clipboard.PollIntervalMs ||
		cfg.Clipboard.AutoFilter != want.Clipboard.AutoFilter ||
		cfg.TUI.Theme != want.TUI.Theme ||
		cfg.Logging.MaxSizeMB != want.Logging.MaxSizeMB {
		t.Errorf("config file = %+v, want %+v", cfg, want)
	}
}

func TestConfigSet(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		want    string
		wantErr bool
	}{
		{name: "mode", key: "clipboard.mode", value: "Lower", want: "mode: lower"},
		{name: "bool", key: "clipboard.auto_filter", value: "true", want: "auto_filter: true"},
		{name: "int", key: "clipboard.poll_interval_ms", value: "250", want: "poll_interval_ms: 250"},
		{name: "list", key: "clipboard.ignore_patterns", value: "http*, *@*.com", want: "- http*"},
		{name: "theme", key: "tui.theme", value: "nord", want: "theme: nord"},
		{name: "unknown key", key: "clipboard.volume", value: "11", wantErr: true},
		{name: "bad bool", key: "tui.mouse", value: "maybe", wantErr: true},
		{name: "bad mode", key: "clipboard.mode", value: "shout", wantErr: true},
		{name: "interval too small", key: "clipboard.poll_interval_ms", value: "10", wantErr: true},
		{name: "bad theme", key: "tui.theme", value: "neon", wantErr: true},
		{name: "bad glob", key: "clipboard.ignore_patterns", value: "[oops", wantErr: true},
		{name: "bad level", key: "logging.level", value: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.IsolateConfig(t)
			c, _ := newTestCommand("")
			err := runConfigSet(c, []string{tt.key, tt.value})

			if tt.wantErr {
				if err == nil {
					t.Fatal("runConfigSet() expected error")
				}
				if _, statErr := os.Stat(config.ConfigFile()); statErr == nil {
					t.Error("config file written despite invalid value")
				}
				return
			}
			if err != nil {
				t.Fatalf("runConfigSet() error = %v", err)
			}
			data, err := os.ReadFile(config.ConfigFile())
			if err != nil {
				t.Fatalf("reading config: %v", err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("config file missing %q:\n%s", tt.want, data)
			}
		})
	}
}

func TestThemeExport(t *testing.T) {
	c, out := newTestCommand("")
	if err := runThemeExport(c, []string{"nord"}); err != nil {
		t.Fatalf("runThemeExport() error = %v", err)
	}
	if !strings.Contains(out.String(), "base: nord") {
		t.Errorf("export output missing base:\n%s", out.String())
	}

	path := filepath.Join(t.TempDir(), "mine.yaml")
	if err := runThemeExport(c, []string{"dracula", path}); err != nil {
		t.Fatalf("runThemeExport() to file error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("theme file not written: %v", err)
	}

	// The exported file loads back as a theme.
	c, out = newTestCommand("")
	if err := runThemeInfo(c, []string{path}); err != nil {
		t.Fatalf("runThemeInfo() error = %v", err)
	}
	if !strings.Contains(out.String(), "base dracula") {
		t.Errorf("info output = %q", out.String())
	}

	if err := runThemeExport(c, []string{"neon"}); err == nil {
		t.Error("exporting an unknown theme should fail")
	}
}

func TestThemeList(t *testing.T) {
	testutil.IsolateConfig(t)
	c, out := newTestCommand("")
	if err := runThemeList(c, nil); err != nil {
		t.Fatalf("runThemeList() error = %v", err)
	}
	for _, want := range []string{"* default", "nord", "dracula", "solarized-light"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("theme list missing %q:\n%s", want, out.String())
		}
	}
}

func TestPrintError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantHint bool
	}{
		{"unknown mode", errors.NewValidationError("unknown mode").WithCause(errors.ErrUnknownMode), false},
		{"nothing to copy", errors.ErrNothingToCopy, false},
		{"no input", errors.Wrap(errors.ErrNoInput, "pass text as arguments"), false},
		{"clipboard", errors.NewClipboardError("write", errors.ErrClipboardUnavailable), false},
		{"internal", errors.New("open config.yaml: permission denied"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			PrintError(&buf, tt.err)
			out := buf.String()
			if !strings.HasPrefix(out, "Error: "+tt.err.Error()+"\n") {
				t.Errorf("output = %q", out)
			}
			if got := strings.Contains(out, "caseclipper logs"); got != tt.wantHint {
				t.Errorf("log hint shown = %v, want %v", got, tt.wantHint)
			}
		})
	}
}
