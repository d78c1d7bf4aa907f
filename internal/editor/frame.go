package editor

import (
	"fmt"
	"strings"

	"github.com/kobzarvs/vedit/internal/buffer"
	"github.com/kobzarvs/vedit/internal/selection"
)

// RowRequest asks the terminal to draw one text row. Content is the
// tab-expanded row, drawn after the gutter. SelStart and SelEnd are the
// selected render columns, end exclusive; SelStart is -1 when nothing on
// the row is selected.
type RowRequest struct {
	ScreenRow int
	Gutter    string
	Content   []byte
	Filler    bool
	Current   bool
	SelStart  int
	SelEnd    int
}

// Frame is everything the terminal needs for one refresh.
type Frame struct {
	Width   int
	Height  int
	Rows    []RowRequest
	Status  string
	Message string
	CursorX int
	CursorY int
	Mode    Mode
}

// Frame recomputes the view and builds the draw requests for the current
// state.
func (e *Editor) Frame() Frame {
	e.syncSize()
	e.clampForMode()
	e.scroll()

	h := e.viewHeight()
	f := Frame{
		Width:   e.width,
		Height:  e.height,
		Rows:    make([]RowRequest, 0, h),
		Status:  e.composeStatusLine(e.width),
		Message: e.currentMessage(),
		CursorX: e.screenCol(),
		CursorY: e.cursor.Row - e.viewStart,
		Mode:    e.mode,
	}
	for y := 0; y < h; y++ {
		idx := e.viewStart + y
		if idx >= e.buf.Count() {
			f.Rows = append(f.Rows, RowRequest{ScreenRow: y, Filler: true, SelStart: -1, SelEnd: -1})
			continue
		}
		req := RowRequest{
			ScreenRow: y,
			Gutter:    e.gutter(idx),
			Content:   e.buf.Row(idx).Render(),
			Current:   idx == e.cursor.Row,
		}
		req.SelStart, req.SelEnd = e.selectionSpan(idx)
		f.Rows = append(f.Rows, req)
	}
	if e.prompting {
		f.CursorX = len(f.Message)
		f.CursorY = e.height - 1
	}
	return f
}

// gutter formats the line number column. In relative mode the cursor row
// shows its own number and the others their distance to it. Numbers too
// wide for the column lose their trailing bytes, as if the row content
// had been drawn over them.
func (e *Editor) gutter(idx int) string {
	var s string
	switch {
	case e.lineNumberMode == LineNumberAbsolute:
		s = fmt.Sprintf("%*d ", GutterWidth-1, idx+1)
	case idx == e.cursor.Row:
		s = fmt.Sprintf("%*d  ", GutterWidth-2, idx+1)
	default:
		d := idx - e.cursor.Row
		if d < 0 {
			d = -d
		}
		s = fmt.Sprintf("%*d ", GutterWidth-1, d)
	}
	return truncate(s, GutterWidth)
}

// selectionSpan converts the raw selection on row idx into render columns.
func (e *Editor) selectionSpan(idx int) (int, int) {
	if !e.sel.Active() {
		return -1, -1
	}
	start, end := e.sel.Bounds()
	if idx < start.Row || idx > end.Row {
		return -1, -1
	}
	n := e.buf.Row(idx).Len()
	from, to := 0, n
	if e.sel.Kind() != selection.KindLine {
		if idx == start.Row {
			from = start.Col
		}
		if idx == end.Row {
			to = end.Col + 1
		}
	}
	if to > n {
		to = n
	}
	if from > n {
		from = n
	}
	rs, re := e.buf.RenderX(idx, from), e.buf.RenderX(idx, to)
	if re <= rs {
		if n == 0 && e.sel.Contains(buffer.Position{Row: idx, Col: 0}) {
			return 0, 1
		}
		return -1, -1
	}
	return rs, re
}

func (e *Editor) currentMessage() string {
	if e.message == "" {
		return ""
	}
	if e.now().Sub(e.messageTime) >= e.messageTimeout {
		return ""
	}
	return e.message
}

// composeStatusLine lays out the left and right segments on a line of
// exactly width bytes. The right segment is only drawn when it fits after
// the left one.
func (e *Editor) composeStatusLine(width int) string {
	if width <= 0 {
		return ""
	}
	name := e.filename
	if name == "" {
		name = "[No Name]"
	}
	modified := ""
	if e.buf.Dirty() != 0 {
		modified = "- (modified)"
	}
	left := fmt.Sprintf(" %s %s %s", truncate(e.mode.String(), 10), truncate(name, 20), modified)

	ft := e.filetype
	if ft == "" {
		ft = "no ft"
	}
	right := fmt.Sprintf("%s | %db | %d:%d ", ft, e.buf.ByteCount(), e.cursor.Row+1, e.screenCol()+1)

	if len(left) >= width {
		return left[:width]
	}
	var b strings.Builder
	b.Grow(width)
	b.WriteString(left)
	gap := width - len(left) - len(right)
	if gap < 0 {
		b.WriteString(strings.Repeat(" ", width-len(left)))
		return b.String()
	}
	b.WriteString(strings.Repeat(" ", gap))
	b.WriteString(right)
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
