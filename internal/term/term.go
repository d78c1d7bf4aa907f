package term

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/vedit/internal/config"
	"github.com/kobzarvs/vedit/internal/editor"
)

// ErrClosed is returned by ReadKey once the screen has been finalized.
var ErrClosed = errors.New("screen closed")

// Screen adapts a tcell.Screen to the editor's Surface.
type Screen struct {
	s tcell.Screen

	styleMain       tcell.Style
	styleStatus     tcell.Style
	styleLineNumber tcell.Style
	styleActiveLine tcell.Style
	styleSelection  tcell.Style
	styleFiller     tcell.Style
}

// New wraps an initialized tcell screen.
func New(s tcell.Screen, theme config.Theme) *Screen {
	fg := parseColor(theme.Foreground, tcell.ColorDefault)
	bg := parseColor(theme.Background, tcell.ColorDefault)
	main := tcell.StyleDefault.Foreground(fg).Background(bg)
	lineNr := main.Foreground(parseColor(theme.LineNumberForeground, tcell.ColorYellow))
	status := tcell.StyleDefault.
		Foreground(parseColor(theme.StatuslineForeground, tcell.ColorBlack)).
		Background(parseColor(theme.StatuslineBackground, tcell.ColorWhite))
	selection := tcell.StyleDefault.
		Foreground(parseColor(theme.SelectionForeground, tcell.ColorBlack)).
		Background(parseColor(theme.SelectionBackground, tcell.ColorSilver))
	sc := &Screen{
		s:               s,
		styleMain:       main,
		styleStatus:     status,
		styleLineNumber: lineNr,
		styleActiveLine: lineNr.Bold(true),
		styleSelection:  selection,
		styleFiller:     main.Foreground(tcell.ColorNavy),
	}
	s.SetStyle(main)
	return sc
}

// Open creates, initializes and wraps the real terminal.
func Open(theme config.Theme) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	return New(s, theme), nil
}

// Close restores the terminal.
func (sc *Screen) Close() {
	sc.s.Fini()
}

// Wake makes a blocked ReadKey return editor.KeyRefresh.
func (sc *Screen) Wake() {
	_ = sc.s.PostEvent(tcell.NewEventInterrupt(nil))
}

func (sc *Screen) Size() (int, int) {
	return sc.s.Size()
}

// ReadKey blocks until a key, resize or wake-up arrives.
func (sc *Screen) ReadKey() (int, error) {
	for {
		ev := sc.s.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return 0, ErrClosed
		case *tcell.EventKey:
			if code, ok := translateKey(ev); ok {
				return code, nil
			}
		case *tcell.EventResize:
			sc.s.Sync()
			return editor.KeyRefresh, nil
		case *tcell.EventInterrupt:
			return editor.KeyRefresh, nil
		}
	}
}

// translateKey maps a tcell key event to an editor key code. ASCII runes
// and control bytes keep their byte value.
func translateKey(ev *tcell.EventKey) (int, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			if r >= 'a' && r <= 'z' {
				return editor.Ctrl(byte(r)), true
			}
			if r >= 'A' && r <= 'Z' {
				return editor.Ctrl(byte(r - 'A' + 'a')), true
			}
		}
		if r > 0 && r < 128 {
			return int(r), true
		}
		// Multi-byte input is not representable in a byte row.
		return 0, false
	case tcell.KeyEnter:
		return editor.KeyEnter, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return editor.KeyBackspace, true
	case tcell.KeyEscape:
		return editor.KeyEsc, true
	case tcell.KeyTab:
		return editor.KeyTab, true
	case tcell.KeyLeft:
		return editor.KeyArrowLeft, true
	case tcell.KeyRight:
		return editor.KeyArrowRight, true
	case tcell.KeyUp:
		return editor.KeyArrowUp, true
	case tcell.KeyDown:
		return editor.KeyArrowDown, true
	}
	if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return int(k), true
	}
	return 0, false
}

// Draw paints a full frame and positions the cursor.
func (sc *Screen) Draw(f editor.Frame) {
	s := sc.s
	s.Clear()
	w := f.Width
	for _, row := range f.Rows {
		y := row.ScreenRow
		if row.Filler {
			s.SetContent(0, y, '~', nil, sc.styleFiller)
			continue
		}
		gutterStyle := sc.styleLineNumber
		if row.Current {
			gutterStyle = sc.styleActiveLine
		}
		sc.put(0, y, min(w, editor.GutterWidth), row.Gutter, gutterStyle)
		x := editor.GutterWidth
		for i, ch := range row.Content {
			if x >= w {
				break
			}
			style := sc.styleMain
			if row.SelStart >= 0 && i >= row.SelStart && i < row.SelEnd {
				style = sc.styleSelection
			}
			s.SetContent(x, y, rune(ch), nil, style)
			x++
		}
		// An empty selected row still shows one highlighted cell.
		if len(row.Content) == 0 && row.SelStart == 0 && row.SelEnd > 0 && x < w {
			s.SetContent(x, y, ' ', nil, sc.styleSelection)
		}
	}

	if f.Height >= 2 {
		y := f.Height - 2
		x := sc.put(0, y, w, f.Status, sc.styleStatus)
		for ; x < w; x++ {
			s.SetContent(x, y, ' ', nil, sc.styleStatus)
		}
	}
	if f.Height >= 1 {
		sc.put(0, f.Height-1, w, f.Message, sc.styleMain)
	}

	cursorStyle := tcell.CursorStyleSteadyBlock
	if f.Mode == editor.ModeInsert {
		cursorStyle = tcell.CursorStyleSteadyBar
	}
	s.SetCursorStyle(cursorStyle)
	s.ShowCursor(f.CursorX, f.CursorY)
	s.Show()
}

func (sc *Screen) put(x, y, w int, text string, style tcell.Style) int {
	for i := 0; i < len(text) && x < w; i++ {
		sc.s.SetContent(x, y, rune(text[i]), nil, style)
		x++
	}
	return x
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return fallback
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
