package editor

import (
	"github.com/kobzarvs/vedit/internal/config"
	"github.com/kobzarvs/vedit/internal/logger"
)

type Action string

const (
	actionMoveLeft        Action = "move_left"
	actionMoveRight       Action = "move_right"
	actionMoveUp          Action = "move_up"
	actionMoveDown        Action = "move_down"
	actionLineStart       Action = "line_start"
	actionLineEnd         Action = "line_end"
	actionFirstNonBlank   Action = "first_non_blank"
	actionWordForward     Action = "word_forward"
	actionWordBackward    Action = "word_backward"
	actionWordEnd         Action = "word_end"
	actionGotoMode        Action = "goto_mode" // g, waits for a second g
	actionGotoLastLine    Action = "goto_last_line"
	actionEnterInsert     Action = "enter_insert"
	actionInsertLineStart Action = "insert_line_start"
	actionAppend          Action = "append"
	actionAppendLineEnd   Action = "append_line_end"
	actionOpenBelow       Action = "open_below"
	actionOpenAbove       Action = "open_above"
	actionDeleteChar      Action = "delete_char"
	actionEnterCommand    Action = "enter_command"
	actionEnterVisual     Action = "enter_visual"
	actionEnterVisualLine Action = "enter_visual_line"
	actionEnterNormal     Action = "enter_normal"
	actionBackspace       Action = "backspace"
	actionNewline         Action = "newline"
	actionDeleteWordLeft  Action = "delete_word_left"
	actionSave            Action = "save"
	actionQuit            Action = "quit"
	actionForceQuit       Action = "force_quit"
)

var knownActions = map[Action]bool{
	actionMoveLeft: true, actionMoveRight: true, actionMoveUp: true, actionMoveDown: true,
	actionLineStart: true, actionLineEnd: true, actionFirstNonBlank: true,
	actionWordForward: true, actionWordBackward: true, actionWordEnd: true,
	actionGotoMode: true, actionGotoLastLine: true,
	actionEnterInsert: true, actionInsertLineStart: true, actionAppend: true, actionAppendLineEnd: true,
	actionOpenBelow: true, actionOpenAbove: true, actionDeleteChar: true,
	actionEnterCommand: true, actionEnterVisual: true, actionEnterVisualLine: true, actionEnterNormal: true,
	actionBackspace: true, actionNewline: true, actionDeleteWordLeft: true,
	actionSave: true, actionQuit: true, actionForceQuit: true,
}

type binding struct {
	key    int
	action Action
}

var defaultNormalBindings = []binding{
	{'i', actionEnterInsert},
	{'I', actionInsertLineStart},
	{'a', actionAppend},
	{'A', actionAppendLineEnd},
	{'o', actionOpenBelow},
	{'O', actionOpenAbove},
	{'w', actionWordForward},
	{'b', actionWordBackward},
	{'e', actionWordEnd},
	{'0', actionLineStart},
	{'$', actionLineEnd},
	{'_', actionFirstNonBlank},
	{'^', actionFirstNonBlank},
	{'g', actionGotoMode},
	{'G', actionGotoLastLine},
	{'h', actionMoveLeft},
	{'j', actionMoveDown},
	{'k', actionMoveUp},
	{'l', actionMoveRight},
	{KeyArrowLeft, actionMoveLeft},
	{KeyArrowDown, actionMoveDown},
	{KeyArrowUp, actionMoveUp},
	{KeyArrowRight, actionMoveRight},
	{'x', actionDeleteChar},
	{KeyEnter, actionMoveDown},
	{KeyCR, actionMoveDown},
	{KeyLF, actionMoveDown},
	{KeyBackspace, actionMoveLeft},
	{KeyCtrlH, actionMoveLeft},
	{KeyDEL, actionMoveLeft},
	{':', actionEnterCommand},
	{'v', actionEnterVisual},
	{'V', actionEnterVisualLine},
	{KeyCtrlS, actionSave},
	{KeyCtrlQ, actionQuit},
}

var defaultInsertBindings = []binding{
	{KeyEsc, actionEnterNormal},
	{KeyCtrlC, actionEnterNormal},
	{KeyBackspace, actionBackspace},
	{KeyCtrlH, actionBackspace},
	{KeyDEL, actionBackspace},
	{KeyEnter, actionNewline},
	{KeyCR, actionNewline},
	{KeyLF, actionNewline},
	{KeyCtrlW, actionDeleteWordLeft},
	{KeyArrowLeft, actionMoveLeft},
	{KeyArrowRight, actionMoveRight},
	{KeyArrowUp, actionMoveUp},
	{KeyArrowDown, actionMoveDown},
	{KeyCtrlS, actionSave},
}

var defaultVisualBindings = []binding{
	{'h', actionMoveLeft},
	{'j', actionMoveDown},
	{'k', actionMoveUp},
	{'l', actionMoveRight},
	{KeyArrowLeft, actionMoveLeft},
	{KeyArrowDown, actionMoveDown},
	{KeyArrowUp, actionMoveUp},
	{KeyArrowRight, actionMoveRight},
	{'0', actionLineStart},
	{'$', actionLineEnd},
	{'w', actionWordForward},
	{'b', actionWordBackward},
	{'e', actionWordEnd},
	{KeyEsc, actionEnterNormal},
	{KeyCtrlC, actionEnterNormal},
	{'v', actionEnterNormal},
	{'V', actionEnterNormal},
	{KeyCtrlS, actionSave},
}

// buildBindings puts user bindings in front of the defaults so they win
// the first-match lookup. Unknown keys or actions are logged and skipped.
func buildBindings(mode Mode, user map[string]string, defaults []binding) []binding {
	out := make([]binding, 0, len(user)+len(defaults))
	for name, act := range user {
		code, err := ParseKey(name)
		if err != nil {
			logger.Warn("keymap: skipping binding", "mode", mode.String(), "key", name, "error", err)
			continue
		}
		if !knownActions[Action(act)] {
			logger.Warn("keymap: unknown action", "mode", mode.String(), "key", name, "action", act)
			continue
		}
		out = append(out, binding{key: code, action: Action(act)})
	}
	return append(out, defaults...)
}

func buildKeymaps(km config.Keymap) map[Mode][]binding {
	return map[Mode][]binding{
		ModeNormal: buildBindings(ModeNormal, km.Normal, defaultNormalBindings),
		ModeInsert: buildBindings(ModeInsert, km.Insert, defaultInsertBindings),
		ModeVisual: buildBindings(ModeVisual, km.Visual, defaultVisualBindings),
	}
}

func lookup(bindings []binding, code int) (Action, bool) {
	for _, b := range bindings {
		if b.key == code {
			return b.action, true
		}
	}
	return "", false
}
