package editor

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/kobzarvs/vedit/internal/buffer"
	"github.com/kobzarvs/vedit/internal/config"
	"github.com/kobzarvs/vedit/internal/fileio"
	"github.com/kobzarvs/vedit/internal/logger"
	"github.com/kobzarvs/vedit/internal/selection"
)

type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeVisual
)

func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "INSERT"
	case ModeVisual:
		return "VISUAL"
	default:
		return "NORMAL"
	}
}

// Outcome tells the host loop whether to keep reading keys.
type Outcome int

const (
	OutcomeContinue Outcome = iota
	OutcomeExit
)

// Surface is the terminal as seen by the editor. ReadKey blocks until a
// key is available.
type Surface interface {
	ReadKey() (int, error)
	Size() (width, height int)
	Draw(f Frame)
}

// GutterWidth is the fixed width of the line number column. Row content
// always starts at this screen column.
const GutterWidth = 5

const minTabStop = 1

type LineNumberMode int

const (
	LineNumberRelative LineNumberMode = iota
	LineNumberAbsolute
)

func parseLineNumberMode(s string) LineNumberMode {
	if s == "absolute" || s == "abs" {
		return LineNumberAbsolute
	}
	return LineNumberRelative
}

type Editor struct {
	buf       *buffer.Store
	cursor    buffer.Position
	viewStart int
	width     int
	height    int
	mode      Mode
	sel       selection.Selection

	filename string
	filetype string

	message     string
	messageTime time.Time
	prompting   bool

	scrollOff      int
	messageTimeout time.Duration
	lineNumberMode LineNumberMode
	keymaps        map[Mode][]binding
	languages      config.Languages
	pendingGoto    bool

	surface   Surface
	now       func() time.Time
	writeFile func(path string, data []byte) (int, error)
}

func New(cfg config.Config, langs config.Languages, surface Surface) *Editor {
	tabStop := cfg.Editor.TabStop
	if tabStop < minTabStop {
		tabStop = buffer.DefaultTabStop
	}
	scrollOff := cfg.Editor.ScrollOff
	if scrollOff < 0 {
		scrollOff = 0
	}
	e := &Editor{
		buf:            buffer.New(tabStop),
		mode:           ModeNormal,
		scrollOff:      scrollOff,
		messageTimeout: cfg.Editor.MessageTimeoutDuration(),
		lineNumberMode: parseLineNumberMode(cfg.Editor.LineNumbers),
		keymaps:        buildKeymaps(cfg.Keymap),
		languages:      langs,
		surface:        surface,
		now:            time.Now,
		writeFile:      fileio.WriteAll,
	}
	e.syncSize()
	return e
}

// Load replaces the buffer content and resets the cursor and view.
func (e *Editor) Load(lines []string) {
	e.buf.Load(lines)
	e.cursor = buffer.Position{}
	e.viewStart = 0
	e.mode = ModeNormal
	e.sel.End()
	e.pendingGoto = false
}

// Open loads path. A missing file yields an empty buffer and a notice; the
// file is created by the first save.
func (e *Editor) Open(path string) error {
	lines, err := fileio.ReadLines(path)
	if err != nil && !errors.Is(err, fileio.ErrNotFound) {
		return err
	}
	e.Load(lines)
	e.filename = path
	e.filetype = fileio.DetectFiletype(path, e.languages)
	if err != nil {
		e.setStatus("%s does not exist, it will be created on save.", path)
		logger.Info("opened new file", "path", path)
		return nil
	}
	logger.Info("opened file", "path", path, "rows", e.buf.Count(), "bytes", e.buf.ByteCount())
	return nil
}

func (e *Editor) Filename() string               { return e.filename }
func (e *Editor) Filetype() string               { return e.filetype }
func (e *Editor) Mode() Mode                     { return e.mode }
func (e *Editor) Cursor() buffer.Position        { return e.cursor }
func (e *Editor) ViewStart() int                 { return e.viewStart }
func (e *Editor) Dirty() int                     { return e.buf.Dirty() }
func (e *Editor) Lines() []string                { return e.buf.Lines() }
func (e *Editor) Serialize() []byte              { return e.buf.Serialize() }
func (e *Editor) Selection() selection.Selection { return e.sel }

// AbsPath returns the absolute path of the open file, or "" when unnamed.
func (e *Editor) AbsPath() string {
	if e.filename == "" {
		return ""
	}
	abs, err := filepath.Abs(e.filename)
	if err != nil {
		return e.filename
	}
	return abs
}

// Restore moves the cursor and view to a remembered position, clamped to
// the current content.
func (e *Editor) Restore(cursor buffer.Position, viewStart int) {
	e.cursor = cursor
	e.viewStart = viewStart
	if e.cursor.Row < 0 {
		e.cursor.Row = 0
	}
	if e.cursor.Row >= e.buf.Count() {
		e.cursor.Row = e.buf.Count() - 1
	}
	e.clampForMode()
	e.scroll()
}

// Notify shows msg on the message line.
func (e *Editor) Notify(msg string) {
	e.setStatus("%s", msg)
}

func (e *Editor) setStatus(format string, args ...any) {
	e.message = fmt.Sprintf(format, args...)
	e.messageTime = e.now()
}

func (e *Editor) syncSize() {
	if e.surface == nil {
		return
	}
	e.width, e.height = e.surface.Size()
}

func (e *Editor) viewHeight() int {
	h := e.height - 2
	if h < 0 {
		return 0
	}
	return h
}

// HandleKey runs the action bound to code in the current mode and then
// restores the cursor and view invariants.
func (e *Editor) HandleKey(code int) Outcome {
	e.syncSize()
	out := e.dispatch(code)
	e.clampForMode()
	if e.mode == ModeVisual {
		e.sel.Extend(e.cursor)
	}
	e.scroll()
	return out
}

func (e *Editor) dispatch(code int) Outcome {
	if code == KeyRefresh {
		return OutcomeContinue
	}
	if e.pendingGoto {
		e.pendingGoto = false
		if code == 'g' {
			e.gotoFirstLine()
			return OutcomeContinue
		}
	}

	act, ok := lookup(e.keymaps[e.mode], code)
	if ok {
		return e.execAction(act)
	}

	if e.mode == ModeInsert {
		if isPrintable(code) || code == KeyTab {
			e.insertChar(byte(code))
			return OutcomeContinue
		}
	}
	logger.Debug("unhandled key", "mode", e.mode.String(), "key", KeyName(code))
	return OutcomeContinue
}

func (e *Editor) execAction(act Action) Outcome {
	switch act {
	case actionMoveLeft:
		e.moveLeft()
	case actionMoveRight:
		e.moveRight()
	case actionMoveUp:
		e.moveUp()
	case actionMoveDown:
		e.moveDown()
	case actionLineStart:
		e.cursor.Col = 0
	case actionLineEnd:
		e.moveLineEnd()
	case actionFirstNonBlank:
		e.moveFirstNonBlank()
	case actionWordForward:
		e.wordForward()
	case actionWordBackward:
		e.wordBackward()
	case actionWordEnd:
		e.wordEnd()
	case actionGotoMode:
		e.pendingGoto = true
	case actionGotoLastLine:
		e.gotoLastLine()
	case actionEnterInsert:
		e.mode = ModeInsert
	case actionInsertLineStart:
		e.moveFirstNonBlank()
		e.mode = ModeInsert
	case actionAppend:
		if e.currentRowLen() > 0 {
			e.cursor.Col++
		}
		e.mode = ModeInsert
	case actionAppendLineEnd:
		e.cursor.Col = e.currentRowLen()
		e.mode = ModeInsert
	case actionOpenBelow:
		e.openBelow()
	case actionOpenAbove:
		e.openAbove()
	case actionDeleteChar:
		e.deleteCharUnderCursor()
	case actionEnterVisual:
		e.mode = ModeVisual
		e.sel.Begin(e.cursor)
	case actionEnterVisualLine:
		e.mode = ModeVisual
		e.sel.BeginLines(e.cursor)
	case actionEnterNormal:
		e.enterNormal()
	case actionBackspace:
		e.backspace()
	case actionNewline:
		e.newline()
	case actionDeleteWordLeft:
		e.deleteWordLeft()
	case actionEnterCommand:
		return e.commandEntry()
	case actionSave:
		e.save()
	case actionQuit:
		return e.quit()
	case actionForceQuit:
		return OutcomeExit
	}
	return OutcomeContinue
}

func (e *Editor) enterNormal() {
	if e.mode == ModeInsert && e.cursor.Col > 0 {
		e.cursor.Col--
	}
	e.mode = ModeNormal
	e.sel.End()
}

func (e *Editor) quit() Outcome {
	if e.buf.Dirty() != 0 {
		e.setStatus("unsaved changes (use :!q)")
		return OutcomeContinue
	}
	return OutcomeExit
}
