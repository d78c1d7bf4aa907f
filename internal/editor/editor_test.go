package editor

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kobzarvs/vedit/internal/buffer"
	"github.com/kobzarvs/vedit/internal/config"
)

// fakeSurface replays scripted keys and records every frame drawn.
type fakeSurface struct {
	w, h   int
	keys   []int
	frames []Frame
}

func (s *fakeSurface) ReadKey() (int, error) {
	if len(s.keys) == 0 {
		return 0, io.EOF
	}
	k := s.keys[0]
	s.keys = s.keys[1:]
	return k, nil
}

func (s *fakeSurface) Size() (int, int) { return s.w, s.h }
func (s *fakeSurface) Draw(f Frame)     { s.frames = append(s.frames, f) }

func (s *fakeSurface) script(keys ...int) {
	s.keys = append(s.keys, keys...)
}

func (s *fakeSurface) scriptText(text string) {
	for i := 0; i < len(text); i++ {
		s.keys = append(s.keys, int(text[i]))
	}
}

func newTestEditorWithConfig(cfg config.Config, lines ...string) (*Editor, *fakeSurface) {
	s := &fakeSurface{w: 80, h: 24}
	e := New(cfg, config.DefaultLanguages(), s)
	e.Load(lines)
	return e, s
}

func newTestEditor(lines ...string) (*Editor, *fakeSurface) {
	return newTestEditorWithConfig(config.Default(), lines...)
}

func press(e *Editor, keys string) Outcome {
	out := OutcomeContinue
	for i := 0; i < len(keys); i++ {
		out = e.HandleKey(int(keys[i]))
	}
	return out
}

func wantLines(t *testing.T, e *Editor, want ...string) {
	t.Helper()
	got := e.Lines()
	if strings.Join(got, "|") != strings.Join(want, "|") || len(got) != len(want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
}

func wantCursor(t *testing.T, e *Editor, row, col int) {
	t.Helper()
	if e.Cursor() != (buffer.Position{Row: row, Col: col}) {
		t.Fatalf("cursor = %+v, want {Row:%d Col:%d}", e.Cursor(), row, col)
	}
}

func TestTypeHiThenEnter(t *testing.T) {
	e, _ := newTestEditor()
	press(e, "iHi")
	wantLines(t, e, "Hi")
	wantCursor(t, e, 0, 2)

	e.HandleKey(KeyEnter)
	wantLines(t, e, "Hi", "")
	wantCursor(t, e, 1, 0)
	if e.Mode() != ModeInsert {
		t.Fatalf("mode = %v, want INSERT", e.Mode())
	}
	if e.Dirty() != 3 {
		t.Fatalf("dirty = %d, want 3", e.Dirty())
	}
}

func TestEnterKeepsIndent(t *testing.T) {
	e, _ := newTestEditor("func main() {", "\tfoo()")
	press(e, "jA")
	e.HandleKey(KeyCR)
	wantLines(t, e, "func main() {", "\tfoo()", "\t")
	wantCursor(t, e, 2, 1)
}

func TestInsertEscapeMovesLeft(t *testing.T) {
	e, _ := newTestEditor()
	press(e, "iab")
	e.HandleKey(KeyEsc)
	if e.Mode() != ModeNormal {
		t.Fatalf("mode = %v, want NORMAL", e.Mode())
	}
	wantCursor(t, e, 0, 1)

	press(e, "i")
	e.HandleKey(KeyCtrlC)
	wantCursor(t, e, 0, 0)
	e.HandleKey(KeyEsc)
	wantCursor(t, e, 0, 0)
}

func TestNormalModeClampsPastEnd(t *testing.T) {
	e, _ := newTestEditor("abc", "x")
	press(e, "$")
	wantCursor(t, e, 0, 2)
	press(e, "l")
	wantCursor(t, e, 0, 2)
	press(e, "j")
	wantCursor(t, e, 1, 0)

	press(e, "kA")
	wantCursor(t, e, 0, 3)
	e.HandleKey(KeyEsc)
	wantCursor(t, e, 0, 2)
}

func TestInsertModeAllowsEndColumn(t *testing.T) {
	e, _ := newTestEditor("abc", "abcdef")
	press(e, "ja")
	e.HandleKey(KeyArrowRight)
	e.HandleKey(KeyArrowRight)
	e.HandleKey(KeyArrowRight)
	e.HandleKey(KeyArrowRight)
	e.HandleKey(KeyArrowRight)
	e.HandleKey(KeyArrowRight)
	wantCursor(t, e, 1, 6)
	e.HandleKey(KeyArrowUp)
	wantCursor(t, e, 0, 3)
}

func TestMovementNeverWraps(t *testing.T) {
	e, _ := newTestEditor("ab", "cd")
	press(e, "jh")
	wantCursor(t, e, 1, 0)
	press(e, "lll")
	wantCursor(t, e, 1, 1)
	press(e, "jjj")
	wantCursor(t, e, 1, 1)
	press(e, "kkk")
	wantCursor(t, e, 0, 1)
}

func TestEnterAndBackspaceMoveInNormalMode(t *testing.T) {
	e, _ := newTestEditor("abc", "def")
	press(e, "l")
	e.HandleKey(KeyEnter)
	wantCursor(t, e, 1, 1)
	e.HandleKey(KeyBackspace)
	wantCursor(t, e, 1, 0)
	wantLines(t, e, "abc", "def")
}

func TestInsertVariants(t *testing.T) {
	e, _ := newTestEditor("  foo bar")
	press(e, "$I")
	wantCursor(t, e, 0, 2)
	e.HandleKey(KeyEsc)

	press(e, "0a")
	wantCursor(t, e, 0, 1)
	e.HandleKey(KeyEsc)

	press(e, "A!")
	wantLines(t, e, "  foo bar!")
}

func TestAppendOnEmptyRow(t *testing.T) {
	e, _ := newTestEditor("")
	press(e, "ax")
	wantLines(t, e, "x")
}

func TestOpenBelowAndAbove(t *testing.T) {
	e, _ := newTestEditor("a", "\tb", "c")
	press(e, "jo")
	wantLines(t, e, "a", "\tb", "\t", "c")
	wantCursor(t, e, 2, 1)
	if e.Mode() != ModeInsert {
		t.Fatalf("mode = %v, want INSERT", e.Mode())
	}
	e.HandleKey(KeyEsc)

	press(e, "kO")
	wantLines(t, e, "a", "\t", "\tb", "\t", "c")
	wantCursor(t, e, 1, 1)
}

func TestOpenBelowOnEmptyRow(t *testing.T) {
	e, _ := newTestEditor("")
	press(e, "oz")
	wantLines(t, e, "", "z")
	wantCursor(t, e, 1, 1)
}

func TestDeleteCharUnderCursor(t *testing.T) {
	e, _ := newTestEditor("abc", "")
	press(e, "lx")
	wantLines(t, e, "ac", "")
	wantCursor(t, e, 0, 1)
	press(e, "x")
	wantLines(t, e, "a", "")
	wantCursor(t, e, 0, 0)
	press(e, "xx")
	wantLines(t, e, "", "")
	press(e, "jx")
	wantLines(t, e, "", "")
	if e.Dirty() != 3 {
		t.Fatalf("dirty = %d, want 3", e.Dirty())
	}
}

func TestBackspaceJoinsRows(t *testing.T) {
	e, _ := newTestEditor("foo", "bar")
	press(e, "ji")
	e.HandleKey(KeyBackspace)
	wantLines(t, e, "foobar")
	wantCursor(t, e, 0, 3)

	press(e, "\x1b0i")
	e.HandleKey(KeyDEL)
	wantLines(t, e, "foobar")
	wantCursor(t, e, 0, 0)
}

func TestDeleteWordLeft(t *testing.T) {
	e, _ := newTestEditor("call foo.bar  ")
	press(e, "A")
	e.HandleKey(KeyCtrlW)
	wantLines(t, e, "call ")
	wantCursor(t, e, 0, 5)
	e.HandleKey(KeyCtrlW)
	wantLines(t, e, "")
	e.HandleKey(KeyCtrlW)
	wantLines(t, e, "")
}

func TestDeleteWordLeftAtColumnZeroJoins(t *testing.T) {
	e, _ := newTestEditor("ab", "cd")
	press(e, "ji")
	e.HandleKey(KeyCtrlW)
	wantLines(t, e, "abcd")
	wantCursor(t, e, 0, 2)
}

func TestInsertTabAndIgnoreControlBytes(t *testing.T) {
	e, _ := newTestEditor()
	press(e, "i")
	e.HandleKey(KeyTab)
	e.HandleKey(Ctrl('b'))
	e.HandleKey(Ctrl('z'))
	e.HandleKey('x')
	wantLines(t, e, "\tx")
	if e.Dirty() != 2 {
		t.Fatalf("dirty = %d, want 2", e.Dirty())
	}
}

func TestUnboundNormalKeyIsNoop(t *testing.T) {
	e, _ := newTestEditor("abc")
	if out := press(e, "zQ"); out != OutcomeContinue {
		t.Fatalf("outcome = %v, want continue", out)
	}
	wantLines(t, e, "abc")
	wantCursor(t, e, 0, 0)
}

func TestWordMotions(t *testing.T) {
	e, _ := newTestEditor("foo  bar.baz qux", "  next line")
	press(e, "w")
	wantCursor(t, e, 0, 5)
	press(e, "w")
	wantCursor(t, e, 0, 13)
	press(e, "w")
	wantCursor(t, e, 1, 2)
	press(e, "b")
	wantCursor(t, e, 0, 13)
	press(e, "b")
	wantCursor(t, e, 0, 5)
	press(e, "l")
	press(e, "b")
	wantCursor(t, e, 0, 5)
	press(e, "b")
	wantCursor(t, e, 0, 0)
	press(e, "b")
	wantCursor(t, e, 0, 0)

	press(e, "e")
	wantCursor(t, e, 0, 2)
	press(e, "e")
	wantCursor(t, e, 0, 11)
	press(e, "e")
	wantCursor(t, e, 0, 15)
	press(e, "e")
	wantCursor(t, e, 1, 5)
	press(e, "ee")
	wantCursor(t, e, 1, 10)
}

func TestWordForwardOnLastRowStopsAtEnd(t *testing.T) {
	e, _ := newTestEditor("one two")
	press(e, "ww")
	wantCursor(t, e, 0, 6)
}

func TestLineMotions(t *testing.T) {
	e, _ := newTestEditor("\t  hello  ")
	press(e, "_")
	wantCursor(t, e, 0, 3)
	press(e, "$")
	wantCursor(t, e, 0, 9)
	press(e, "0")
	wantCursor(t, e, 0, 0)
	press(e, "^")
	wantCursor(t, e, 0, 3)
}

func TestGotoFirstAndLastLine(t *testing.T) {
	e, _ := newTestEditor("a", "b", "  c")
	press(e, "G")
	wantCursor(t, e, 2, 2)
	press(e, "gg")
	wantCursor(t, e, 0, 0)

	press(e, "G")
	press(e, "gj")
	wantCursor(t, e, 2, 2)
	press(e, "kg")
	press(e, "k")
	wantCursor(t, e, 0, 0)
}

func TestVisualSelectionFollowsCursor(t *testing.T) {
	e, _ := newTestEditor("hello world", "second")
	press(e, "lv")
	sel := e.Selection()
	if !sel.Active() {
		t.Fatalf("selection inactive after v")
	}
	press(e, "lll")
	sel = e.Selection()
	start, end := sel.Bounds()
	if start != (buffer.Position{Row: 0, Col: 1}) || end != (buffer.Position{Row: 0, Col: 4}) {
		t.Fatalf("bounds = %+v %+v", start, end)
	}
	press(e, "j")
	sel = e.Selection()
	if !sel.Contains(buffer.Position{Row: 0, Col: 10}) || !sel.Contains(buffer.Position{Row: 1, Col: 4}) {
		t.Fatalf("selection does not span rows: %+v", sel)
	}
	if e.Mode() != ModeVisual {
		t.Fatalf("mode = %v, want VISUAL", e.Mode())
	}

	e.HandleKey(KeyEsc)
	sel = e.Selection()
	if sel.Active() || e.Mode() != ModeNormal {
		t.Fatalf("visual not left: active=%v mode=%v", sel.Active(), e.Mode())
	}
	wantCursor(t, e, 1, 4)
}

func TestVisualIgnoresEditingKeys(t *testing.T) {
	e, _ := newTestEditor("abc")
	press(e, "vxi")
	wantLines(t, e, "abc")
	if e.Mode() != ModeVisual {
		t.Fatalf("mode = %v, want VISUAL", e.Mode())
	}
	press(e, "v")
	if e.Mode() != ModeNormal {
		t.Fatalf("mode = %v, want NORMAL", e.Mode())
	}
}

func TestKeymapOverrides(t *testing.T) {
	cfg := config.Default()
	cfg.Keymap.Normal["Q"] = "force_quit"
	cfg.Keymap.Normal["x"] = "move_right"
	cfg.Keymap.Normal["ctrl+k"] = "no_such_action"
	cfg.Keymap.Insert["ctrl+b"] = "move_left"
	e, _ := newTestEditorWithConfig(cfg, "abc")

	press(e, "x")
	wantLines(t, e, "abc")
	wantCursor(t, e, 0, 1)

	press(e, "i")
	e.HandleKey(Ctrl('b'))
	wantCursor(t, e, 0, 0)
	e.HandleKey(KeyEsc)

	if out := e.HandleKey(Ctrl('k')); out != OutcomeContinue {
		t.Fatalf("invalid binding triggered exit")
	}
	if out := press(e, "Q"); out != OutcomeExit {
		t.Fatalf("Q outcome = %v, want exit", out)
	}
}

func TestCtrlQQuitsOnlyWhenClean(t *testing.T) {
	e, _ := newTestEditor("abc")
	if out := e.HandleKey(KeyCtrlQ); out != OutcomeExit {
		t.Fatalf("clean ctrl+q = %v, want exit", out)
	}
	press(e, "x")
	if out := e.HandleKey(KeyCtrlQ); out != OutcomeContinue {
		t.Fatalf("dirty ctrl+q = %v, want continue", out)
	}
}

func TestOpenMissingFileThenSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.c")
	e, _ := newTestEditor()
	if err := e.Open(path); err != nil {
		t.Fatalf("Open error: %v", err)
	}
	wantLines(t, e, "")
	f := e.Frame()
	if f.Message != path+" does not exist, it will be created on save." {
		t.Fatalf("message = %q", f.Message)
	}
	if e.Filetype() != "c" {
		t.Fatalf("filetype = %q, want c", e.Filetype())
	}

	e.HandleKey(KeyCtrlS)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "\n" {
		t.Fatalf("saved = %q, want newline", data)
	}
	if e.Dirty() != 0 {
		t.Fatalf("dirty = %d, want 0", e.Dirty())
	}
	if msg := e.Frame().Message; msg != "1 bytes written to "+path {
		t.Fatalf("message = %q", msg)
	}
}

func TestOpenExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.go")
	if err := os.WriteFile(path, []byte("package main\r\n\nfunc main() {}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	e, _ := newTestEditor()
	if err := e.Open(path); err != nil {
		t.Fatalf("Open error: %v", err)
	}
	wantLines(t, e, "package main", "", "func main() {}")
	if e.Filetype() != "go" {
		t.Fatalf("filetype = %q, want go", e.Filetype())
	}
	if e.Frame().Message != "" {
		t.Fatalf("unexpected message %q", e.Frame().Message)
	}
}

func TestOpenUnreadablePathFails(t *testing.T) {
	e, _ := newTestEditor("keep")
	if err := e.Open(t.TempDir()); err == nil {
		t.Fatalf("Open of a directory succeeded")
	}
	wantLines(t, e, "keep")
}

func TestSaveResetsDirtyAfterEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	e, _ := newTestEditor()
	if err := e.Open(path); err != nil {
		t.Fatalf("Open error: %v", err)
	}
	press(e, "iabc")
	e.HandleKey(KeyEnter)
	press(e, "d")
	if e.Dirty() == 0 {
		t.Fatalf("dirty not counted")
	}
	e.HandleKey(KeyCtrlS)
	if e.Dirty() != 0 {
		t.Fatalf("dirty = %d after save", e.Dirty())
	}
	data, _ := os.ReadFile(path)
	if string(data) != "abc\nd\n" {
		t.Fatalf("saved = %q", data)
	}
	if e.Mode() != ModeInsert {
		t.Fatalf("save changed mode to %v", e.Mode())
	}
}

func TestSaveFailureKeepsDirty(t *testing.T) {
	e, _ := newTestEditor("abc")
	e.filename = "/nowhere/file.txt"
	e.writeFile = func(string, []byte) (int, error) { return 0, errors.New("permission denied") }
	press(e, "x")
	e.HandleKey(KeyCtrlS)
	if e.Dirty() != 1 {
		t.Fatalf("dirty = %d, want 1", e.Dirty())
	}
	if msg := e.Frame().Message; msg != "Failed to save: permission denied" {
		t.Fatalf("message = %q", msg)
	}
}

func TestSavePromptsForFilename(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	e, s := newTestEditor("hello")
	s.scriptText(path)
	s.script(KeyBackspace, int(path[len(path)-1]), KeyEnter)

	e.HandleKey(KeyCtrlS)
	if e.Filename() != path {
		t.Fatalf("filename = %q, want %q", e.Filename(), path)
	}
	if e.Filetype() != "txt" {
		t.Fatalf("filetype = %q, want txt", e.Filetype())
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "hello\n" {
		t.Fatalf("saved = %q err=%v", data, err)
	}
	if len(s.frames) == 0 || !strings.HasPrefix(s.frames[0].Message, "Enter a filename: ") {
		t.Fatalf("prompt not drawn: %+v", s.frames)
	}
}

func TestSavePromptCancelled(t *testing.T) {
	e, s := newTestEditor("hello")
	called := false
	e.writeFile = func(string, []byte) (int, error) { called = true; return 0, nil }
	s.scriptText("name")
	s.script(KeyEsc)

	e.HandleKey(KeyCtrlS)
	if called {
		t.Fatalf("write attempted after cancel")
	}
	if e.Filename() != "" {
		t.Fatalf("filename = %q, want empty", e.Filename())
	}
	if msg := e.Frame().Message; msg != "Failed to save. Invalid file name." {
		t.Fatalf("message = %q", msg)
	}
}

func TestSavePromptEmptyName(t *testing.T) {
	e, s := newTestEditor("hello")
	s.script(KeyEnter)
	e.HandleKey(KeyCtrlS)
	if msg := e.Frame().Message; msg != "Failed to save. Invalid file name." {
		t.Fatalf("message = %q", msg)
	}
}

func runCommand(e *Editor, s *fakeSurface, cmd string) Outcome {
	s.scriptText(cmd)
	s.script(KeyCR)
	return e.HandleKey(':')
}

func TestCommandTable(t *testing.T) {
	stub := func(e *Editor) *int {
		writes := 0
		e.filename = "stub.txt"
		e.writeFile = func(_ string, data []byte) (int, error) { writes++; return len(data), nil }
		return &writes
	}

	t.Run("q clean", func(t *testing.T) {
		e, s := newTestEditor("a")
		if out := runCommand(e, s, "q"); out != OutcomeExit {
			t.Fatalf("outcome = %v, want exit", out)
		}
	})
	t.Run("q dirty", func(t *testing.T) {
		e, s := newTestEditor("a")
		press(e, "x")
		if out := runCommand(e, s, "q"); out != OutcomeContinue {
			t.Fatalf("outcome = %v, want continue", out)
		}
		if msg := e.Frame().Message; msg != "unsaved changes (use :!q)" {
			t.Fatalf("message = %q", msg)
		}
	})
	t.Run("force quit", func(t *testing.T) {
		for _, cmd := range []string{"!q", "q!"} {
			e, s := newTestEditor("a")
			press(e, "x")
			if out := runCommand(e, s, cmd); out != OutcomeExit {
				t.Fatalf("%s outcome = %v, want exit", cmd, out)
			}
		}
	})
	t.Run("w", func(t *testing.T) {
		e, s := newTestEditor("a")
		writes := stub(e)
		press(e, "x")
		if out := runCommand(e, s, "w"); out != OutcomeContinue {
			t.Fatalf("outcome = %v, want continue", out)
		}
		if *writes != 1 || e.Dirty() != 0 {
			t.Fatalf("writes=%d dirty=%d", *writes, e.Dirty())
		}
	})
	t.Run("wq", func(t *testing.T) {
		e, s := newTestEditor("a")
		writes := stub(e)
		if out := runCommand(e, s, "wq"); out != OutcomeExit {
			t.Fatalf("outcome = %v, want exit", out)
		}
		if *writes != 1 {
			t.Fatalf("writes = %d", *writes)
		}
	})
	t.Run("wq failing save", func(t *testing.T) {
		e, s := newTestEditor("a")
		e.filename = "x.txt"
		e.writeFile = func(string, []byte) (int, error) { return 0, errors.New("disk full") }
		if out := runCommand(e, s, "wq"); out != OutcomeContinue {
			t.Fatalf("outcome = %v, want continue", out)
		}
	})
	t.Run("unknown", func(t *testing.T) {
		e, s := newTestEditor("a")
		if out := runCommand(e, s, "wqa"); out != OutcomeContinue {
			t.Fatalf("outcome = %v, want continue", out)
		}
		if msg := e.Frame().Message; msg != "Unknown command: wqa" {
			t.Fatalf("message = %q", msg)
		}
		wantLines(t, e, "a")
	})
}

func TestCommandPromptEditing(t *testing.T) {
	e, s := newTestEditor("a")
	s.scriptText("qx")
	s.script(KeyBackspace, KeyCtrlH, 'q', KeyEnter)
	if out := e.HandleKey(':'); out != OutcomeExit {
		t.Fatalf("outcome = %v, want exit", out)
	}
}

func TestCommandPromptCancelDoesNotDispatch(t *testing.T) {
	e, s := newTestEditor("abc")
	s.scriptText("ix")
	s.script(Ctrl('a'), KeyEsc)
	if out := e.HandleKey(':'); out != OutcomeContinue {
		t.Fatalf("outcome = %v, want continue", out)
	}
	if e.Mode() != ModeNormal {
		t.Fatalf("prompt keys reached the dispatcher: mode %v", e.Mode())
	}
	wantLines(t, e, "abc")
	if e.Frame().Message != "" {
		t.Fatalf("message = %q, want empty", e.Frame().Message)
	}
	if len(s.frames) != 4 {
		t.Fatalf("prompt drew %d frames, want 4", len(s.frames))
	}
	if s.frames[2].Message != ":ix" {
		t.Fatalf("prompt message = %q", s.frames[2].Message)
	}
}

func TestPromptEndsWhenInputCloses(t *testing.T) {
	e, s := newTestEditor("abc")
	s.scriptText("wq")
	if out := e.HandleKey(':'); out != OutcomeContinue {
		t.Fatalf("outcome = %v, want continue", out)
	}
}

func TestRestoreClampsPosition(t *testing.T) {
	e, _ := newTestEditor("short", "x")
	e.Restore(buffer.Position{Row: 10, Col: 40}, 7)
	wantCursor(t, e, 1, 0)
	if e.ViewStart() != 0 {
		t.Fatalf("viewStart = %d, want 0", e.ViewStart())
	}
}

func TestNotifyExpires(t *testing.T) {
	e, _ := newTestEditor("abc")
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return clock }
	e.Notify("notes.txt changed on disk")
	if msg := e.Frame().Message; msg != "notes.txt changed on disk" {
		t.Fatalf("message = %q", msg)
	}
	clock = clock.Add(4999 * time.Millisecond)
	if e.Frame().Message == "" {
		t.Fatalf("message expired early")
	}
	clock = clock.Add(time.Millisecond)
	if msg := e.Frame().Message; msg != "" {
		t.Fatalf("message = %q after timeout", msg)
	}
}
