package keymap

import tea "github.com/charmbracelet/bubbletea"

// DefaultKeymap returns the built-in key bindings.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name: "default",
		Modes: map[Mode]*ModeBindings{
			ModeEdit: defaultEditBindings(),
			ModeHelp: defaultHelpBindings(),
		},
	}
}

func defaultEditBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeEdit,
		Bindings: []KeyBinding{
			// Case conversion
			{KeyType: tea.KeyF1, Command: CmdUpper, Description: "UPPER CASE", Category: "Convert"},
			{KeyType: tea.KeyRunes, Rune: 'u', Modifiers: ModAlt, Command: CmdUpper, Description: "UPPER CASE", Category: "Convert"},
			{KeyType: tea.KeyF2, Command: CmdLower, Description: "lower case", Category: "Convert"},
			{KeyType: tea.KeyRunes, Rune: 'l', Modifiers: ModAlt, Command: CmdLower, Description: "lower case", Category: "Convert"},
			{KeyType: tea.KeyF3, Command: CmdTitle, Description: "Title Case", Category: "Convert"},
			{KeyType: tea.KeyRunes, Rune: 't', Modifiers: ModAlt, Command: CmdTitle, Description: "Title Case", Category: "Convert"},
			{KeyType: tea.KeyF4, Command: CmdSentence, Description: "Sentence case", Category: "Convert"},
			{KeyType: tea.KeyRunes, Rune: 's', Modifiers: ModAlt, Command: CmdSentence, Description: "Sentence case", Category: "Convert"},
			{KeyType: tea.KeyF5, Command: CmdToggle, Description: "tOGGLE cASE", Category: "Convert"},
			{KeyType: tea.KeyRunes, Rune: 'g', Modifiers: ModAlt, Command: CmdToggle, Description: "tOGGLE cASE", Category: "Convert"},

			// Actions
			{KeyType: tea.KeyRunes, Rune: 'c', Modifiers: ModAlt, Command: CmdCopy, Description: "Copy text to clipboard", Category: "Actions"},
			{KeyType: tea.KeyRunes, Rune: 'x', Modifiers: ModAlt, Command: CmdClear, Description: "Clear text", Category: "Actions"},
			{KeyType: tea.KeyRunes, Rune: 'v', Modifiers: ModAlt, Command: CmdPaste, Description: "Paste clipboard into text", Category: "Actions"},
			{KeyType: tea.KeyRunes, Rune: 'a', Modifiers: ModAlt, Command: CmdToggleAutoFilter, Description: "Toggle clipboard auto-filter", Category: "Actions"},
			{KeyType: tea.KeyF10, Command: CmdToggleHelp, Description: "Show help", Category: "Actions"},
			{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "Quit", Category: "Actions"},
			{KeyType: tea.KeyCtrlQ, Command: CmdQuit, Description: "Quit", Category: "Actions"},

			// Selection
			{KeyType: tea.KeyCtrlA, Command: CmdSelectAll, Description: "Select all", Category: "Selection"},
			{KeyType: tea.KeyEsc, Command: CmdClearSelection, Description: "Clear selection", Category: "Selection"},
			{KeyType: tea.KeyShiftLeft, Command: CmdSelectLeft, Description: "Extend selection left", Category: "Selection"},
			{KeyType: tea.KeyShiftRight, Command: CmdSelectRight, Description: "Extend selection right", Category: "Selection"},
			{KeyType: tea.KeyShiftUp, Command: CmdSelectUp, Description: "Extend selection up", Category: "Selection"},
			{KeyType: tea.KeyShiftDown, Command: CmdSelectDown, Description: "Extend selection down", Category: "Selection"},
			{KeyType: tea.KeyCtrlShiftLeft, Command: CmdSelectWordLeft, Description: "Extend selection a word left", Category: "Selection"},
			{KeyType: tea.KeyCtrlShiftRight, Command: CmdSelectWordRt, Description: "Extend selection a word right", Category: "Selection"},
			{KeyType: tea.KeyShiftHome, Command: CmdSelectHome, Description: "Extend selection to line start", Category: "Selection"},
			{KeyType: tea.KeyShiftEnd, Command: CmdSelectEnd, Description: "Extend selection to line end", Category: "Selection"},

			// Cursor movement
			{KeyType: tea.KeyLeft, Command: CmdMoveLeft, Description: "Move left", Category: "Movement"},
			{KeyType: tea.KeyRight, Command: CmdMoveRight, Description: "Move right", Category: "Movement"},
			{KeyType: tea.KeyUp, Command: CmdMoveUp, Description: "Move up", Category: "Movement"},
			{KeyType: tea.KeyDown, Command: CmdMoveDown, Description: "Move down", Category: "Movement"},
			{KeyType: tea.KeyCtrlLeft, Command: CmdMoveWordLeft, Description: "Previous word", Category: "Movement"},
			{KeyType: tea.KeyLeft, Modifiers: ModAlt, Command: CmdMoveWordLeft, Description: "Previous word", Category: "Movement"},
			{KeyType: tea.KeyCtrlRight, Command: CmdMoveWordRight, Description: "Next word", Category: "Movement"},
			{KeyType: tea.KeyRight, Modifiers: ModAlt, Command: CmdMoveWordRight, Description: "Next word", Category: "Movement"},
			{KeyType: tea.KeyHome, Command: CmdMoveLineStart, Description: "Line start", Category: "Movement"},
			{KeyType: tea.KeyEnd, Command: CmdMoveLineEnd, Description: "Line end", Category: "Movement"},
			{KeyType: tea.KeyCtrlHome, Command: CmdMoveTextStart, Description: "Start of text", Category: "Movement"},
			{KeyType: tea.KeyCtrlEnd, Command: CmdMoveTextEnd, Description: "End of text", Category: "Movement"},
			{KeyType: tea.KeyPgUp, Command: CmdPageUp, Description: "Page up", Category: "Movement"},
			{KeyType: tea.KeyPgDown, Command: CmdPageDown, Description: "Page down", Category: "Movement"},

			// Editing
			{KeyType: tea.KeyEnter, Command: CmdInsertNewline, Description: "New line", Category: "Editing"},
			{KeyType: tea.KeyBackspace, Command: CmdDeleteBack, Description: "Delete backward", Category: "Editing"},
			{KeyType: tea.KeyDelete, Command: CmdDeleteForward, Description: "Delete forward", Category: "Editing"},
			{KeyType: tea.KeyCtrlW, Command: CmdDeletePrevWord, Description: "Delete previous word", Category: "Editing"},
			{KeyType: tea.KeyBackspace, Modifiers: ModAlt, Command: CmdDeletePrevWord, Description: "Delete previous word", Category: "Editing"},
			{KeyType: tea.KeyCtrlU, Command: CmdDeleteToLineStart, Description: "Delete to line start", Category: "Editing"},
			{KeyType: tea.KeyCtrlK, Command: CmdDeleteToLineEnd, Description: "Delete to line end", Category: "Editing"},
			{KeyType: tea.KeySpace, Command: CmdInsertSpace, Description: "Space", Category: "Editing"},
			{KeyType: tea.KeyTab, Command: CmdInsertTab, Description: "Tab", Category: "Editing"},
			{KeyType: tea.KeyRunes, Command: CmdInsertChar, Description: "Type text", Category: "Editing"},
		},
	}
}

func defaultHelpBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeHelp,
		Bindings: []KeyBinding{
			{KeyType: tea.KeyF10, Command: CmdCloseHelp, Description: "Close help"},
			{KeyType: tea.KeyEsc, Command: CmdCloseHelp, Description: "Close help"},
			{KeyType: tea.KeyRunes, Rune: 'q', Command: CmdCloseHelp, Description: "Close help"},
			{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "Quit"},
			{KeyType: tea.KeyCtrlQ, Command: CmdQuit, Description: "Quit"},
		},
	}
}
