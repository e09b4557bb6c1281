package tui

import (
	"strings"

	"github.com/Iron-Ham/caseclipper/internal/errors"
	"github.com/Iron-Ham/caseclipper/internal/textstats"
	"github.com/Iron-Ham/caseclipper/internal/transform"
	"github.com/Iron-Ham/caseclipper/internal/tui/keymap"
	"github.com/Iron-Ham/caseclipper/internal/tui/msg"
	"github.com/Iron-Ham/caseclipper/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea"
)

// wheelStep is the number of rows scrolled per mouse wheel notch.
const wheelStep = 3

// Init sets the window title and starts the clipboard poll loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(Title),
		msg.PollTick(m.pollInterval),
	)
}

// Update handles messages and updates the model
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		m.resize(message.Width, message.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(message)

	case tea.MouseMsg:
		return m.handleMouse(message)

	case msg.PollTickMsg:
		return m, msg.ReadClipboard(m.clip)

	case msg.ClipboardPolledMsg:
		return m.handlePoll(message)

	case msg.ClipboardWrittenMsg:
		return m.handleWritten(message)

	case msg.ClipboardPastedMsg:
		if message.Err != nil {
			return m, m.setNotice(noticeKindFor(message.Err), "Paste failed: "+clipboardErrorText(message.Err))
		}
		if message.Text == "" {
			return m, m.setNotice(noticeInfo, "Clipboard is empty.")
		}
		m.buf.Insert(normalizeNewlines(message.Text))
		m.textChanged()
		return m, nil

	case msg.ConfigReloadedMsg:
		return m.handleConfigReload(message)

	case msg.ClearNoticeMsg:
		if message.Seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil
	}

	return m, nil
}

// -----------------------------------------------------------------------------
// Keyboard
// -----------------------------------------------------------------------------

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	mode := keymap.ModeEdit
	if m.showHelp {
		mode = keymap.ModeHelp
	}

	command, ok := m.keymap.GetBinding(key, mode)
	if !ok {
		return m, nil
	}

	if command == keymap.CmdInsertChar {
		m.buf.Insert(normalizeNewlines(string(key.Runes)))
		m.textChanged()
		return m, nil
	}
	return m.execute(command)
}

// execute runs a keymap command. Buttons and the checkbox dispatch through
// here too, so a click and its key binding behave identically.
func (m Model) execute(command keymap.Command) (tea.Model, tea.Cmd) {
	if mode, ok := commandMode(command); ok {
		m.apply(mode)
		return m, nil
	}

	switch command {
	case keymap.CmdCopy:
		return m.copyText()
	case keymap.CmdClear:
		m.clear()
	case keymap.CmdPaste:
		return m, msg.PasteClipboard(m.clip)
	case keymap.CmdToggleAutoFilter:
		return m, m.toggleAutoFilter()
	case keymap.CmdToggleHelp:
		m.showHelp = !m.showHelp
	case keymap.CmdCloseHelp:
		m.showHelp = false
	case keymap.CmdQuit:
		m.quitting = true
		return m, tea.Quit

	// Selection
	case keymap.CmdSelectAll:
		m.buf.SelectAll()
	case keymap.CmdClearSelection:
		m.buf.ClearSelection()
	case keymap.CmdSelectLeft:
		m.buf.MoveCursor(-1, true)
	case keymap.CmdSelectRight:
		m.buf.MoveCursor(1, true)
	case keymap.CmdSelectUp:
		m.buf.MoveUp(true)
	case keymap.CmdSelectDown:
		m.buf.MoveDown(true)
	case keymap.CmdSelectWordLeft:
		m.buf.MoveWordLeft(true)
	case keymap.CmdSelectWordRt:
		m.buf.MoveWordRight(true)
	case keymap.CmdSelectHome:
		m.buf.MoveLineStart(true)
	case keymap.CmdSelectEnd:
		m.buf.MoveLineEnd(true)

	// Movement
	case keymap.CmdMoveLeft:
		m.moveHorizontal(-1)
	case keymap.CmdMoveRight:
		m.moveHorizontal(1)
	case keymap.CmdMoveUp:
		m.buf.MoveUp(false)
	case keymap.CmdMoveDown:
		m.buf.MoveDown(false)
	case keymap.CmdMoveWordLeft:
		m.buf.MoveWordLeft(false)
	case keymap.CmdMoveWordRight:
		m.buf.MoveWordRight(false)
	case keymap.CmdMoveLineStart:
		m.buf.MoveLineStart(false)
	case keymap.CmdMoveLineEnd:
		m.buf.MoveLineEnd(false)
	case keymap.CmdMoveTextStart:
		m.buf.MoveToStart(false)
	case keymap.CmdMoveTextEnd:
		m.buf.MoveToEnd(false)
	case keymap.CmdPageUp:
		m.movePage(-1)
	case keymap.CmdPageDown:
		m.movePage(1)

	// Editing
	case keymap.CmdInsertSpace:
		m.buf.Insert(" ")
		m.textChanged()
		return m, nil
	case keymap.CmdInsertTab:
		m.buf.Insert("\t")
		m.textChanged()
		return m, nil
	case keymap.CmdInsertNewline:
		m.buf.Insert("\n")
		m.textChanged()
		return m, nil
	case keymap.CmdDeleteBack:
		m.buf.DeleteBack(1)
		m.textChanged()
		return m, nil
	case keymap.CmdDeleteForward:
		m.buf.DeleteForward(1)
		m.textChanged()
		return m, nil
	case keymap.CmdDeletePrevWord:
		if !m.buf.HasSelection() {
			m.buf.MoveWordLeft(true)
		}
		m.buf.DeleteBack(1)
		m.textChanged()
		return m, nil
	case keymap.CmdDeleteToLineStart:
		m.deleteTo(m.buf.LineStart())
		return m, nil
	case keymap.CmdDeleteToLineEnd:
		m.deleteTo(m.buf.LineEnd())
		return m, nil
	}

	m.syncView(true)
	return m, nil
}

func commandMode(command keymap.Command) (transform.Mode, bool) {
	switch command {
	case keymap.CmdUpper:
		return transform.ModeUpper, true
	case keymap.CmdLower:
		return transform.ModeLower, true
	case keymap.CmdTitle:
		return transform.ModeTitle, true
	case keymap.CmdSentence:
		return transform.ModeSentence, true
	case keymap.CmdToggle:
		return transform.ModeToggle, true
	}
	return "", false
}

// moveHorizontal collapses a selection to its edge, like most editors,
// instead of moving past it.
func (m *Model) moveHorizontal(delta int) {
	if start, end, ok := m.buf.Selection(); ok {
		if delta < 0 {
			m.buf.MoveTo(start, false)
		} else {
			m.buf.MoveTo(end, false)
		}
		return
	}
	m.buf.MoveCursor(delta, false)
}

func (m *Model) movePage(dir int) {
	for range max(m.viewport.Height-1, 1) {
		if dir < 0 {
			m.buf.MoveUp(false)
		} else {
			m.buf.MoveDown(false)
		}
	}
}

// deleteTo removes the text between the cursor and pos. With nothing in
// between, the adjacent newline is removed so repeated presses join lines.
// An active selection is deleted instead.
func (m *Model) deleteTo(pos int) {
	if m.buf.HasSelection() {
		m.buf.DeleteBack(1)
		m.textChanged()
		return
	}
	m.buf.ClearSelection()
	cursor := m.buf.Cursor()
	switch {
	case pos < cursor:
		m.buf.MoveTo(pos, true)
		m.buf.DeleteBack(1)
	case pos > cursor:
		m.buf.MoveTo(pos, true)
		m.buf.DeleteForward(1)
	case pos == m.buf.LineStart():
		m.buf.DeleteBack(1)
	default:
		m.buf.DeleteForward(1)
	}
	m.textChanged()
}

// -----------------------------------------------------------------------------
// Actions
// -----------------------------------------------------------------------------

// apply converts the selection, or the whole text when nothing is selected.
func (m *Model) apply(mode transform.Mode) {
	usedSelection := m.buf.ApplySelection(func(s string) string {
		return transform.Apply(s, mode)
	})
	m.lastApplied = mode
	m.textChanged()
	m.logger.Debug("applied conversion", "mode", string(mode), "selection", usedSelection)
}

func (m Model) copyText() (tea.Model, tea.Cmd) {
	text := m.buf.String()
	if text == "" {
		return m, m.setNotice(noticeInfo, NoticeNothingToCopy)
	}
	return m, msg.WriteClipboard(m.clip, text, msg.WriteCopy)
}

func (m *Model) clear() {
	m.buf.Clear()
	m.textChanged()
}

func (m *Model) toggleAutoFilter() tea.Cmd {
	m.autoFilter = !m.autoFilter
	m.logger.Info("auto-filter toggled", "enabled", m.autoFilter, "mode", string(m.watcher.Mode()))
	if m.autoFilter {
		return m.setNotice(noticeOK, "Clipboard auto-filter on ("+m.watcher.Mode().Label()+")")
	}
	return m.setNotice(noticeInfo, "Clipboard auto-filter off")
}

// setNotice shows text and returns the command that expires it.
func (m *Model) setNotice(kind noticeKind, text string) tea.Cmd {
	m.noticeSeq++
	m.notice = text
	m.noticeKind = kind
	return msg.ClearNoticeAfter(noticeTTL, m.noticeSeq)
}

// -----------------------------------------------------------------------------
// Clipboard poll loop
// -----------------------------------------------------------------------------

// handlePoll feeds one clipboard read to the watcher. The next tick is only
// scheduled once this poll's work, including any rewrite, has finished, so
// at most one poll is ever in flight.
func (m Model) handlePoll(polled msg.ClipboardPolledMsg) (tea.Model, tea.Cmd) {
	decision := m.watcher.Observe(polled.Content, polled.Err, m.autoFilter)
	if decision.Rewrite {
		return m, msg.WriteClipboard(m.clip, decision.Text, msg.WriteAutoFilter)
	}
	return m, msg.PollTick(m.pollInterval)
}

func (m Model) handleWritten(written msg.ClipboardWrittenMsg) (tea.Model, tea.Cmd) {
	switch written.Source {
	case msg.WriteAutoFilter:
		if written.Err != nil {
			m.logger.Warn("auto-filter write failed", "error", written.Err.Error())
		}
		return m, msg.PollTick(m.pollInterval)

	default:
		if written.Err != nil {
			m.logger.Warn("copy failed", "error", written.Err.Error())
			return m, m.setNotice(noticeKindFor(written.Err), "Copy failed: "+clipboardErrorText(written.Err))
		}
		m.logger.Debug("copied text", "chars", textstats.Count(written.Text).Chars)
		return m, m.setNotice(noticeOK, NoticeCopied)
	}
}

// noticeKindFor styles a failure notice by the error's severity.
func noticeKindFor(err error) noticeKind {
	if errors.GetSeverity(err) < errors.SeverityWarning {
		return noticeInfo
	}
	return noticeError
}

// clipboardErrorText reduces a clipboard error to a short notice.
func clipboardErrorText(err error) string {
	if errors.Is(err, errors.ErrClipboardUnavailable) {
		return "no clipboard available"
	}
	var clipErr *errors.ClipboardError
	if errors.As(err, &clipErr) && errors.Unwrap(clipErr) != nil {
		return errors.Unwrap(clipErr).Error()
	}
	return err.Error()
}

// -----------------------------------------------------------------------------
// Configuration
// -----------------------------------------------------------------------------

func (m Model) handleConfigReload(reloaded msg.ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if reloaded.Err != nil || reloaded.Config == nil {
		m.logger.Warn("config reload rejected", "error", errorString(reloaded.Err))
		return m, m.setNotice(noticeError, "Config not reloaded: "+errorString(reloaded.Err))
	}

	cfg := reloaded.Config
	st, err := styles.Resolve(cfg.TUI.Theme, cfg.TUI.ThemeFile)
	if err != nil {
		return m, m.setNotice(noticeError, "Config not reloaded: "+err.Error())
	}
	if err := m.watcher.SetIgnorePatterns(cfg.Clipboard.IgnorePatterns); err != nil {
		return m, m.setNotice(noticeError, "Config not reloaded: "+err.Error())
	}

	m.cfg = cfg
	m.styles = st
	m.watcher.SetMode(cfg.Clipboard.FilterMode())
	m.pollInterval = cfg.Clipboard.PollInterval()
	m.syncView(false)

	m.logger.Info("config reloaded",
		"mode", cfg.Clipboard.Mode,
		"poll_interval_ms", cfg.Clipboard.PollIntervalMs,
		"theme", cfg.TUI.Theme,
	)
	return m, m.setNotice(noticeOK, "Configuration reloaded")
}

func errorString(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

// -----------------------------------------------------------------------------
// Mouse
// -----------------------------------------------------------------------------

func (m Model) handleMouse(mouse tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if mouse.Action == tea.MouseActionPress && mouse.Button == tea.MouseButtonLeft {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case mouse.Button == tea.MouseButtonWheelUp:
		m.viewport.SetYOffset(m.viewport.YOffset - wheelStep)
		return m, nil
	case mouse.Button == tea.MouseButtonWheelDown:
		m.viewport.SetYOffset(m.viewport.YOffset + wheelStep)
		return m, nil
	case mouse.Button != tea.MouseButtonLeft:
		return m, nil
	}

	switch mouse.Action {
	case tea.MouseActionPress:
		if mouse.Y == buttonRowY(m.height) {
			for _, b := range layoutButtons(m.styles) {
				if mouse.X >= b.X0 && mouse.X < b.X1 {
					return m.execute(b.Command)
				}
			}
			return m, nil
		}
		if mouse.Y == checkboxRowY(m.height) && mouse.X < len(checkboxText(m.autoFilter)) {
			return m, m.toggleAutoFilter()
		}
		if pos, ok := m.textOffsetAt(mouse.X, mouse.Y); ok {
			m.buf.MoveTo(pos, false)
			m.syncView(false)
		}
	case tea.MouseActionMotion:
		// Drag selects.
		if pos, ok := m.textOffsetAt(mouse.X, mouse.Y); ok {
			m.buf.MoveTo(pos, true)
			m.syncView(false)
		}
	}
	return m, nil
}

// textOffsetAt maps a screen cell inside the text area to a buffer offset.
func (m Model) textOffsetAt(x, y int) (int, bool) {
	ox, oy := textAreaOrigin()
	col, row := x-ox, y-oy
	if col < 0 || row < 0 || col >= m.viewport.Width || row >= m.viewport.Height {
		return 0, false
	}
	return offsetAt([]rune(m.buf.String()), m.rows, m.viewport.YOffset+row, col), true
}

// -----------------------------------------------------------------------------
// View state
// -----------------------------------------------------------------------------

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	w, h := textAreaSize(width, height)
	m.viewport.Width = w
	m.viewport.Height = h
	m.syncView(true)
}

// textChanged recomputes the counter and redraws the text area after any
// edit or conversion.
func (m *Model) textChanged() {
	m.stats = textstats.Count(m.buf.String())
	m.syncView(true)
}

// syncView re-renders the text area into the viewport. With followCursor
// the viewport scrolls so the cursor row is visible.
func (m *Model) syncView(followCursor bool) {
	text := []rune(m.buf.String())
	// One cell is kept free for the cursor at the end of a full row.
	m.rows = wrapRows(text, m.viewport.Width-1)
	m.viewport.SetContent(m.renderRows(text))

	if !followCursor {
		return
	}
	row := rowOf(m.rows, m.buf.Cursor())
	switch {
	case row < m.viewport.YOffset:
		m.viewport.SetYOffset(row)
	case row >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(row - m.viewport.Height + 1)
	}
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
