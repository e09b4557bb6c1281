// Package keymap provides key binding definitions and lookup for the TUI.
// Bindings are declarative and grouped by mode so the model's Update stays a
// switch over commands rather than over raw keys.
package keymap

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Mode represents the current input mode of the TUI.
type Mode string

const (
	ModeEdit Mode = "edit" // Typing in the text area (default)
	ModeHelp Mode = "help" // Help overlay is open
)

// Command represents a named action that can be triggered by a key binding.
type Command string

// Case conversion commands
const (
	CmdUpper    Command = "upper"
	CmdLower    Command = "lower"
	CmdTitle    Command = "title"
	CmdSentence Command = "sentence"
	CmdToggle   Command = "toggle"
)

// Action commands
const (
	CmdCopy             Command = "copy"
	CmdClear            Command = "clear"
	CmdPaste            Command = "paste"
	CmdToggleAutoFilter Command = "toggle_auto_filter"
	CmdToggleHelp       Command = "toggle_help"
	CmdQuit             Command = "quit"
)

// Selection commands
const (
	CmdSelectAll      Command = "select_all"
	CmdClearSelection Command = "clear_selection"
	CmdSelectLeft     Command = "select_left"
	CmdSelectRight    Command = "select_right"
	CmdSelectUp       Command = "select_up"
	CmdSelectDown     Command = "select_down"
	CmdSelectWordLeft Command = "select_word_left"
	CmdSelectWordRt   Command = "select_word_right"
	CmdSelectHome     Command = "select_line_start"
	CmdSelectEnd      Command = "select_line_end"
)

// Editing commands
const (
	CmdInsertChar        Command = "insert_char"
	CmdInsertSpace       Command = "insert_space"
	CmdInsertTab         Command = "insert_tab"
	CmdInsertNewline     Command = "insert_newline"
	CmdDeleteBack        Command = "delete_back"
	CmdDeleteForward     Command = "delete_forward"
	CmdDeletePrevWord    Command = "delete_prev_word"
	CmdDeleteToLineStart Command = "delete_to_line_start"
	CmdDeleteToLineEnd   Command = "delete_to_line_end"
	CmdMoveLeft          Command = "move_left"
	CmdMoveRight         Command = "move_right"
	CmdMoveUp            Command = "move_up"
	CmdMoveDown          Command = "move_down"
	CmdMoveWordLeft      Command = "move_word_left"
	CmdMoveWordRight     Command = "move_word_right"
	CmdMoveLineStart     Command = "move_line_start"
	CmdMoveLineEnd       Command = "move_line_end"
	CmdMoveTextStart     Command = "move_text_start"
	CmdMoveTextEnd       Command = "move_text_end"
	CmdPageUp            Command = "page_up"
	CmdPageDown          Command = "page_down"
)

// Help overlay commands
const (
	CmdCloseHelp Command = "close_help"
)

// Modifier represents keyboard modifiers that are reported separately from
// the key type. Only Alt is reported that way by Bubble Tea; Ctrl and Shift
// combinations have their own key types (tea.KeyCtrlA, tea.KeyShiftLeft).
type Modifier uint8

const (
	ModNone Modifier = 0
	ModAlt  Modifier = 1 << iota
)

// String returns a human-readable representation of modifiers.
func (m Modifier) String() string {
	if m&ModAlt != 0 {
		return "alt+"
	}
	return ""
}

// KeyBinding represents a single key binding configuration.
type KeyBinding struct {
	// KeyType is the key. For rune keys use tea.KeyRunes and set Rune.
	KeyType tea.KeyType

	// Rune is the character for rune-based keys. Zero matches any rune.
	Rune rune

	// Modifiers contains the modifier keys that must be pressed.
	Modifiers Modifier

	// Command is the action to execute when this binding is triggered.
	Command Command

	// Description is a human-readable description for help display.
	Description string

	// Category groups related bindings together in help display.
	Category string
}

// Matches checks if a tea.KeyMsg matches this binding.
func (kb KeyBinding) Matches(msg tea.KeyMsg) bool {
	wantAlt := kb.Modifiers&ModAlt != 0
	if msg.Alt != wantAlt {
		return false
	}

	if kb.KeyType != tea.KeyRunes {
		return msg.Type == kb.KeyType
	}

	if msg.Type != tea.KeyRunes || len(msg.Runes) == 0 {
		return false
	}
	if kb.Rune == 0 {
		return true
	}
	// Multi-rune messages are pastes; only catch-all bindings take them.
	return len(msg.Runes) == 1 && msg.Runes[0] == kb.Rune
}

// String returns a human-readable representation of the key binding.
func (kb KeyBinding) String() string {
	prefix := kb.Modifiers.String()
	if kb.KeyType != tea.KeyRunes {
		return prefix + kb.KeyType.String()
	}
	if kb.Rune == 0 {
		return prefix + "any key"
	}
	return prefix + string(kb.Rune)
}

// ModeBindings holds all key bindings for a specific mode.
type ModeBindings struct {
	Mode     Mode
	Bindings []KeyBinding
}

// GetBinding looks up a command for a key in this mode. The first matching
// binding wins.
func (mb *ModeBindings) GetBinding(msg tea.KeyMsg) (Command, bool) {
	for _, binding := range mb.Bindings {
		if binding.Matches(msg) {
			return binding.Command, true
		}
	}
	return "", false
}

// Keymap contains all key bindings organized by mode.
type Keymap struct {
	Name  string
	Modes map[Mode]*ModeBindings
}

// GetBinding looks up a command for a key in a specific mode.
func (km *Keymap) GetBinding(msg tea.KeyMsg, mode Mode) (Command, bool) {
	mb, ok := km.Modes[mode]
	if !ok {
		return "", false
	}
	return mb.GetBinding(msg)
}

// GetBindingsForCommand returns all bindings that trigger cmd in mode.
func (km *Keymap) GetBindingsForCommand(cmd Command, mode Mode) []KeyBinding {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}

	var result []KeyBinding
	for _, binding := range mb.Bindings {
		if binding.Command == cmd {
			result = append(result, binding)
		}
	}
	return result
}

// KeysFor returns the display strings of every key bound to cmd in mode,
// e.g. ["f1", "alt+u"].
func (km *Keymap) KeysFor(cmd Command, mode Mode) []string {
	bindings := km.GetBindingsForCommand(cmd, mode)
	keys := make([]string, len(bindings))
	for i, b := range bindings {
		keys[i] = b.String()
	}
	return keys
}

// GetCategories returns the categories of a mode's bindings in the order
// they first appear.
func (km *Keymap) GetCategories(mode Mode) []string {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}

	seen := make(map[string]bool)
	var categories []string
	for _, binding := range mb.Bindings {
		if binding.Category != "" && !seen[binding.Category] {
			seen[binding.Category] = true
			categories = append(categories, binding.Category)
		}
	}
	return categories
}

// HelpEntry is one line of the help overlay.
type HelpEntry struct {
	Keys        []string
	Description string
}

// Help returns the bindings of a category merged by command, in binding
// order, for display.
func (km *Keymap) Help(mode Mode, category string) []HelpEntry {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}

	index := make(map[Command]int)
	var entries []HelpEntry
	for _, b := range mb.Bindings {
		if b.Category != category {
			continue
		}
		if i, ok := index[b.Command]; ok {
			entries[i].Keys = append(entries[i].Keys, b.String())
			continue
		}
		index[b.Command] = len(entries)
		entries = append(entries, HelpEntry{Keys: []string{b.String()}, Description: b.Description})
	}
	return entries
}
