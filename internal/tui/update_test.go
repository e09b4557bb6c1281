package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/Iron-Ham/caseclipper/internal/clipboard"
	"github.com/Iron-Ham/caseclipper/internal/config"
	apperrors "github.com/Iron-Ham/caseclipper/internal/errors"
	"github.com/Iron-Ham/caseclipper/internal/transform"
	"github.com/Iron-Ham/caseclipper/internal/tui/msg"
	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T, text string, autoFilter bool, clip *clipboard.Memory) Model {
	t.Helper()
	cfg := config.Default()
	cfg.Clipboard.AutoFilter = autoFilter
	return NewModel(Options{Clipboard: clip, Config: cfg, Text: text})
}

// send runs one message through Update and returns the updated model.
func send(t *testing.T, m Model, message tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(message)
	updated, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, want Model", next)
	}
	return updated, cmd
}

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func altKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func TestNewModelCountsInitialText(t *testing.T) {
	m := newTestModel(t, "hello big world", false, clipboard.NewMemory(""))
	if got := m.Stats().String(); got != "3 words · 15 characters" {
		t.Errorf("Stats() = %q", got)
	}
	if m.AutoFilter() {
		t.Error("AutoFilter() = true, want false")
	}
}

func TestInitStartsPolling(t *testing.T) {
	m := newTestModel(t, "", false, clipboard.NewMemory(""))
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init() returned nil")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("Init() command produced %T, want tea.BatchMsg", cmd())
	}
	if len(batch) != 2 {
		t.Errorf("Init() batched %d commands, want window title and poll tick", len(batch))
	}
	if Title != "CaseClipper – Case Converter" {
		t.Errorf("Title = %q", Title)
	}
}

func TestNewModelInitialSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{"default", 0, 0, 80 - 2*textAreaInsetX, 24 - titleRows - textAreaChrome - footerRows},
		{"terminal size", 120, 40, 120 - 2*textAreaInsetX, 40 - titleRows - textAreaChrome - footerRows},
		{"tiny terminal", 10, 5, minWidth - 2*textAreaInsetX, minTextRows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(Options{
				Clipboard: clipboard.NewMemory(""),
				Width:     tt.width,
				Height:    tt.height,
			})
			if m.viewport.Width != tt.wantW || m.viewport.Height != tt.wantH {
				t.Errorf("text area = %dx%d, want %dx%d", m.viewport.Width, m.viewport.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestConvertKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want string
	}{
		{"f1 upper", key(tea.KeyF1), "HELLO WORLD. IT'S ME"},
		{"f2 lower", key(tea.KeyF2), "hello world. it's me"},
		{"f3 title", key(tea.KeyF3), "Hello World. It'S Me"},
		{"f4 sentence", key(tea.KeyF4), "Hello world. It's me"},
		{"f5 toggle", key(tea.KeyF5), "HELLO wORLD. IT'S ME"},
		{"alt+u upper", altKey('u'), "HELLO WORLD. IT'S ME"},
		{"alt+g toggle", altKey('g'), "HELLO wORLD. IT'S ME"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, "hello World. it's me", false, clipboard.NewMemory(""))
			m, _ = send(t, m, tt.key)
			if got := m.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvertOnlySelection(t *testing.T) {
	m := newTestModel(t, "", false, clipboard.NewMemory(""))
	m = typeText(t, m, "keep shout")
	for range 5 {
		m, _ = send(t, m, key(tea.KeyShiftLeft))
	}
	m, _ = send(t, m, key(tea.KeyF1))

	if got := m.Text(); got != "keep SHOUT" {
		t.Errorf("Text() = %q, want %q", got, "keep SHOUT")
	}
	if got := m.buf.SelectedText(); got != "SHOUT" {
		t.Errorf("selection after convert = %q, want SHOUT", got)
	}
	if m.lastApplied != transform.ModeUpper {
		t.Errorf("lastApplied = %q, want upper", m.lastApplied)
	}
}

func TestTypingUpdatesCounter(t *testing.T) {
	m := newTestModel(t, "", false, clipboard.NewMemory(""))
	m = typeText(t, m, "one")
	m, _ = send(t, m, key(tea.KeySpace))
	m = typeText(t, m, "two")
	m, _ = send(t, m, key(tea.KeyEnter))
	m = typeText(t, m, "3")

	if got := m.Text(); got != "one two\n3" {
		t.Fatalf("Text() = %q", got)
	}
	if got := m.Stats().String(); got != "3 words · 9 characters" {
		t.Errorf("Stats() = %q", got)
	}

	m, _ = send(t, m, key(tea.KeyBackspace))
	if got := m.Stats().Chars; got != 8 {
		t.Errorf("Chars after backspace = %d, want 8", got)
	}
}

func TestCopyEmptyShowsNotice(t *testing.T) {
	mem := clipboard.NewMemory("untouched")
	m := newTestModel(t, "", false, mem)

	m, cmd := send(t, m, altKey('c'))
	if m.Notice() != NoticeNothingToCopy {
		t.Errorf("Notice() = %q, want %q", m.Notice(), NoticeNothingToCopy)
	}
	if cmd == nil {
		t.Error("expected a notice expiry command")
	}
	if len(mem.Writes()) != 0 {
		t.Errorf("clipboard written %d times, want 0", len(mem.Writes()))
	}
}

func TestCopyWritesWholeText(t *testing.T) {
	mem := clipboard.NewMemory("")
	m := newTestModel(t, "copy me please", false, mem)
	m.buf.Select(0, 4)

	m, cmd := send(t, m, altKey('c'))
	if cmd == nil {
		t.Fatal("copy returned no command")
	}
	written, ok := cmd().(msg.ClipboardWrittenMsg)
	if !ok {
		t.Fatal("copy command did not produce ClipboardWrittenMsg")
	}
	if content, _ := mem.ReadAll(); content != "copy me please" {
		t.Errorf("clipboard = %q, want whole text", content)
	}

	m, _ = send(t, m, written)
	if m.Notice() != NoticeCopied {
		t.Errorf("Notice() = %q, want %q", m.Notice(), NoticeCopied)
	}
}

func TestCopyFailureShowsError(t *testing.T) {
	mem := clipboard.NewMemory("")
	mem.FailWrites(errors.New("no display"))
	m := newTestModel(t, "text", false, mem)

	m, cmd := send(t, m, altKey('c'))
	m, _ = send(t, m, cmd())
	if !strings.HasPrefix(m.Notice(), "Copy failed") {
		t.Errorf("Notice() = %q, want copy failure", m.Notice())
	}
	if m.noticeKind != noticeError {
		t.Errorf("noticeKind = %v, want error", m.noticeKind)
	}
}

func TestClearEmptiesText(t *testing.T) {
	m := newTestModel(t, "some words here", false, clipboard.NewMemory(""))
	m, _ = send(t, m, altKey('x'))
	if m.Text() != "" {
		t.Errorf("Text() = %q, want empty", m.Text())
	}
	if got := m.Stats().String(); got != "0 words · 0 characters" {
		t.Errorf("Stats() = %q", got)
	}
}

func TestPasteNormalizesNewlines(t *testing.T) {
	mem := clipboard.NewMemory("a\r\nb\rc")
	m := newTestModel(t, "", false, mem)

	m, cmd := send(t, m, altKey('v'))
	m, _ = send(t, m, cmd())
	if got := m.Text(); got != "a\nb\nc" {
		t.Errorf("Text() = %q, want %q", got, "a\nb\nc")
	}
}

func TestDeleteToLineEdge(t *testing.T) {
	tests := []struct {
		name   string
		key    tea.KeyType
		cursor int
		sel    [2]int // selection [start, end); zero means none
		want   string
	}{
		{name: "ctrl+u to line start", key: tea.KeyCtrlU, cursor: 6, want: "abc\nfgh"},
		{name: "ctrl+k to line end", key: tea.KeyCtrlK, cursor: 6, want: "abc\nde"},
		{name: "ctrl+u at line start joins lines", key: tea.KeyCtrlU, cursor: 4, want: "abcdefgh"},
		{name: "ctrl+k at line end joins lines", key: tea.KeyCtrlK, cursor: 3, want: "abcdefgh"},
		{name: "ctrl+u deletes selection", key: tea.KeyCtrlU, sel: [2]int{1, 7}, want: "agh"},
		{name: "ctrl+k deletes selection", key: tea.KeyCtrlK, sel: [2]int{1, 7}, want: "agh"},
		{name: "ctrl+k deletes backward selection", key: tea.KeyCtrlK, sel: [2]int{7, 5}, want: "abc\ndgh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, "abc\ndefgh", false, clipboard.NewMemory(""))
			if tt.sel != [2]int{} {
				m.buf.Select(tt.sel[0], tt.sel[1])
			} else {
				m.buf.MoveTo(tt.cursor, false)
			}

			m, _ = send(t, m, key(tt.key))
			if got := m.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
			if m.buf.HasSelection() {
				t.Error("selection still active after delete")
			}
			if got := m.Stats().Chars; got != len([]rune(tt.want)) {
				t.Errorf("Chars = %d, want %d", got, len([]rune(tt.want)))
			}
		})
	}
}

func TestTabInsertsTab(t *testing.T) {
	m := newTestModel(t, "helloworld", false, clipboard.NewMemory(""))
	m.buf.MoveTo(5, false)

	m, _ = send(t, m, key(tea.KeyTab))
	if got := m.Text(); got != "hello\tworld" {
		t.Errorf("Text() = %q, want %q", got, "hello\tworld")
	}
	if got := m.Stats().String(); got != "2 words · 11 characters" {
		t.Errorf("Stats() = %q", got)
	}
}

func TestClipboardFailureNoticeKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want noticeKind
	}{
		{"no clipboard", apperrors.NewClipboardError("read", apperrors.ErrClipboardUnavailable).WithSeverity(apperrors.SeverityInfo), noticeInfo},
		{"read failed", apperrors.NewClipboardError("read", errors.New("xclip exited 1")), noticeError},
		{"plain error", errors.New("boom"), noticeError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, "", false, clipboard.NewMemory(""))
			m, _ = send(t, m, msg.ClipboardPastedMsg{Err: tt.err})
			if !strings.HasPrefix(m.Notice(), "Paste failed") {
				t.Errorf("Notice() = %q, want paste failure", m.Notice())
			}
			if m.noticeKind != tt.want {
				t.Errorf("noticeKind = %v, want %v", m.noticeKind, tt.want)
			}
		})
	}
}

func TestToggleAutoFilterKey(t *testing.T) {
	m := newTestModel(t, "", false, clipboard.NewMemory(""))
	m, _ = send(t, m, altKey('a'))
	if !m.AutoFilter() {
		t.Fatal("AutoFilter() = false after toggle")
	}
	m, _ = send(t, m, altKey('a'))
	if m.AutoFilter() {
		t.Fatal("AutoFilter() = true after second toggle")
	}
}

func TestPollLoopConvertsNewContent(t *testing.T) {
	mem := clipboard.NewMemory("hello there")
	m := newTestModel(t, "", true, mem)

	m, cmd := send(t, m, msg.PollTickMsg{})
	polled, ok := cmd().(msg.ClipboardPolledMsg)
	if !ok {
		t.Fatal("poll tick did not read the clipboard")
	}

	m, cmd = send(t, m, polled)
	written, ok := cmd().(msg.ClipboardWrittenMsg)
	if !ok {
		t.Fatal("new content was not rewritten")
	}
	if written.Source != msg.WriteAutoFilter || written.Text != "HELLO THERE" {
		t.Errorf("written = %+v", written)
	}

	// The rewrite is not treated as new content on the next poll.
	m, _ = send(t, m, written)
	before := len(mem.Writes())
	_, _ = send(t, m, msg.ClipboardPolledMsg{Content: "HELLO THERE"})
	if got := len(mem.Writes()); got != before {
		t.Errorf("clipboard written again: %d writes, want %d", got, before)
	}
}

func TestPollLoopIdleWhenDisabled(t *testing.T) {
	mem := clipboard.NewMemory("leave me")
	m := newTestModel(t, "", false, mem)

	m, _ = send(t, m, msg.ClipboardPolledMsg{Content: "leave me"})
	m, _ = send(t, m, msg.ClipboardPolledMsg{Content: "still lower"})
	if len(mem.Writes()) != 0 {
		t.Errorf("clipboard written while auto-filter off: %v", mem.Writes())
	}

	// Content seen while disabled is not converted after enabling.
	m, _ = send(t, m, altKey('a'))
	_, cmd := send(t, m, msg.ClipboardPolledMsg{Content: "still lower"})
	if _, isWrite := cmd().(msg.ClipboardWrittenMsg); isWrite {
		t.Error("previously seen content was rewritten")
	}
}

func TestClearNoticeIgnoresStaleSeq(t *testing.T) {
	m := newTestModel(t, "", false, clipboard.NewMemory(""))
	m, _ = send(t, m, altKey('c'))
	stale := m.noticeSeq
	m, _ = send(t, m, altKey('a'))

	m, _ = send(t, m, msg.ClearNoticeMsg{Seq: stale})
	if m.Notice() == "" {
		t.Fatal("stale ClearNoticeMsg cleared the current notice")
	}
	m, _ = send(t, m, msg.ClearNoticeMsg{Seq: m.noticeSeq})
	if m.Notice() != "" {
		t.Errorf("Notice() = %q, want cleared", m.Notice())
	}
}

func TestMouseButtons(t *testing.T) {
	m := newTestModel(t, "mixed Case", false, clipboard.NewMemory(""))
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	y := buttonRowY(24)

	for _, b := range layoutButtons(m.styles) {
		if b.Command != "lower" {
			continue
		}
		click := tea.MouseMsg{X: b.X0 + 1, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
		m, _ = send(t, m, click)
	}
	if got := m.Text(); got != "mixed case" {
		t.Errorf("Text() after clicking lower = %q", got)
	}

	click := tea.MouseMsg{X: 1, Y: checkboxRowY(24), Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, _ = send(t, m, click)
	if !m.AutoFilter() {
		t.Error("clicking the checkbox did not enable auto-filter")
	}
}

func TestMouseClickMovesCursor(t *testing.T) {
	m := newTestModel(t, "hello world", false, clipboard.NewMemory(""))
	ox, oy := textAreaOrigin()

	click := tea.MouseMsg{X: ox + 6, Y: oy, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, _ = send(t, m, click)
	if got := m.buf.Cursor(); got != 6 {
		t.Errorf("Cursor() = %d, want 6", got)
	}

	drag := tea.MouseMsg{X: ox + 11, Y: oy, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
	m, _ = send(t, m, drag)
	if got := m.buf.SelectedText(); got != "world" {
		t.Errorf("drag selected %q, want world", got)
	}
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(t, "", false, clipboard.NewMemory(""))
	m, _ = send(t, m, key(tea.KeyF10))
	if !m.showHelp {
		t.Fatal("f10 did not open help")
	}
	if !strings.Contains(m.View(), "key bindings") {
		t.Error("help view missing title")
	}

	// Keys are routed to the help bindings while it is open.
	m = typeText(t, m, "q")
	if m.showHelp {
		t.Error("q did not close help")
	}
	if m.Text() != "" {
		t.Errorf("q was typed into the text area: %q", m.Text())
	}
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyCtrlC, tea.KeyCtrlQ} {
		m := newTestModel(t, "", false, clipboard.NewMemory(""))
		m, cmd := send(t, m, key(k))
		if cmd == nil {
			t.Fatalf("%v returned no command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v did not quit", k)
		}
		if m.View() != "" {
			t.Errorf("View() after quit = %q, want empty", m.View())
		}
	}
}

func TestConfigReload(t *testing.T) {
	m := newTestModel(t, "", true, clipboard.NewMemory(""))

	cfg := config.Default()
	cfg.Clipboard.Mode = "title"
	cfg.Clipboard.PollIntervalMs = 250
	m, _ = send(t, m, msg.ConfigReloadedMsg{Config: cfg})

	if m.watcher.Mode() != transform.ModeTitle {
		t.Errorf("watcher mode = %q, want title", m.watcher.Mode())
	}
	if m.pollInterval.Milliseconds() != 250 {
		t.Errorf("pollInterval = %v, want 250ms", m.pollInterval)
	}
	if !m.AutoFilter() {
		t.Error("reload reset the runtime auto-filter toggle")
	}

	m, _ = send(t, m, msg.ConfigReloadedMsg{Err: errors.New("bad yaml")})
	if m.Config() != cfg {
		t.Error("failed reload replaced the config")
	}
	if !strings.Contains(m.Notice(), "bad yaml") {
		t.Errorf("Notice() = %q, want reload error", m.Notice())
	}
}

func TestViewShowsWidgets(t *testing.T) {
	m := newTestModel(t, "two words", true, clipboard.NewMemory(""))
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()

	for _, want := range []string{
		"CaseClipper",
		"[UPPER]",
		"[tOGGLE]",
		"[Copy]",
		"[x] " + checkboxLabel,
		"2 words · 9 characters",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestLongTextScrollsToCursor(t *testing.T) {
	m := newTestModel(t, "", false, clipboard.NewMemory(""))
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 40, Height: 12})
	m = typeText(t, m, strings.Repeat("line\n", 40))

	if m.viewport.YOffset == 0 {
		t.Error("viewport did not follow the cursor")
	}
	m, _ = send(t, m, key(tea.KeyCtrlHome))
	if m.viewport.YOffset != 0 {
		t.Errorf("YOffset after ctrl+home = %d, want 0", m.viewport.YOffset)
	}
}
