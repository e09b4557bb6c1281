// Package tui implements the CaseClipper terminal window: a text area,
// case conversion buttons, Copy and Clear, the clipboard auto-filter
// checkbox and the word/character counter.
package tui

import (
	"io"
	"time"

	"github.com/Iron-Ham/caseclipper/internal/buffer"
	"github.com/Iron-Ham/caseclipper/internal/clipboard"
	"github.com/Iron-Ham/caseclipper/internal/config"
	"github.com/Iron-Ham/caseclipper/internal/logging"
	"github.com/Iron-Ham/caseclipper/internal/textstats"
	"github.com/Iron-Ham/caseclipper/internal/transform"
	"github.com/Iron-Ham/caseclipper/internal/tui/keymap"
	"github.com/Iron-Ham/caseclipper/internal/tui/styles"
	"github.com/charmbracelet/bubbles/viewport"
)

// Title is the window title.
const Title = "CaseClipper – Case Converter"

// Notice texts.
const (
	NoticeNothingToCopy = "Nothing to copy."
	NoticeCopied        = "Copied to clipboard!"
)

// noticeTTL is how long a notice stays on screen.
const noticeTTL = 3 * time.Second

type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeOK
	noticeError
)

// Options configures a Model.
type Options struct {
	// Clipboard is read by the poll loop and written by Copy. Required.
	Clipboard clipboard.Clipboard
	// Config supplies the initial settings. Defaults are used when nil.
	Config *config.Config
	// Logger receives debug output. Never stderr: the TUI owns the terminal.
	Logger *logging.Logger
	// Styles overrides the theme from Config.
	Styles *styles.Styles
	// Text is the initial text area content.
	Text string
	// Output is the terminal the program draws to. Defaults to os.Stdout.
	// Pass the writer the clipboard's OSC 52 fallback uses so the two never
	// write at the same time.
	Output io.Writer
	// Width and Height pre-size the layout until the first WindowSizeMsg.
	// Zero means 80x24.
	Width, Height int
}

// Model is the Bubble Tea model for the main window. All state is owned by
// the event loop; clipboard I/O runs in commands and reports back as
// messages.
type Model struct {
	cfg    *config.Config
	clip   clipboard.Clipboard
	logger *logging.Logger
	keymap *keymap.Keymap
	styles *styles.Styles

	buf      *buffer.Buffer
	stats    textstats.Stats
	viewport viewport.Model
	rows     []visualRow

	autoFilter   bool
	watcher      *clipboard.Watcher
	pollInterval time.Duration
	lastApplied  transform.Mode

	width    int
	height   int
	showHelp bool

	notice     string
	noticeKind noticeKind
	noticeSeq  int

	quitting bool
}

// NewModel creates the main window model.
func NewModel(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	logger = logger.WithComponent("tui")

	st := opts.Styles
	if st == nil {
		resolved, err := styles.Resolve(cfg.TUI.Theme, cfg.TUI.ThemeFile)
		if err != nil {
			logger.Warn("falling back to default theme", "error", err.Error())
			resolved = styles.New(styles.DefaultPalette())
		}
		st = resolved
	}

	watcher, err := clipboard.NewWatcher(cfg.Clipboard.FilterMode(), cfg.Clipboard.IgnorePatterns, logger)
	if err != nil {
		// Config validation rejects bad patterns, so this only happens
		// with a hand-built Config.
		logger.Warn("ignoring invalid ignore patterns", "error", err.Error())
		watcher, _ = clipboard.NewWatcher(cfg.Clipboard.FilterMode(), nil, logger)
	}

	m := Model{
		cfg:          cfg,
		clip:         opts.Clipboard,
		logger:       logger,
		keymap:       keymap.DefaultKeymap(),
		styles:       st,
		buf:          buffer.New(opts.Text),
		viewport:     viewport.New(0, 0),
		autoFilter:   cfg.Clipboard.AutoFilter,
		watcher:      watcher,
		pollInterval: cfg.Clipboard.PollInterval(),
	}
	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = 80, 24
	}
	m.resize(width, height)
	m.textChanged()
	return m
}

// Text returns the text area content.
func (m Model) Text() string {
	return m.buf.String()
}

// Stats returns the current word and character counts.
func (m Model) Stats() textstats.Stats {
	return m.stats
}

// AutoFilter reports whether the clipboard auto-filter is enabled.
func (m Model) AutoFilter() bool {
	return m.autoFilter
}

// Notice returns the notice currently shown, if any.
func (m Model) Notice() string {
	return m.notice
}

// Config returns the settings in effect.
func (m Model) Config() *config.Config {
	return m.cfg
}
