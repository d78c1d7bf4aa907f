package editor

import (
	"github.com/kobzarvs/vedit/internal/buffer"
	"github.com/kobzarvs/vedit/internal/logger"
)

func (e *Editor) apply(op string, p buffer.Position, err error) {
	if err != nil {
		logger.Warn("edit rejected", "op", op, "row", e.cursor.Row, "col", e.cursor.Col, "error", err)
		return
	}
	e.cursor = p
}

func (e *Editor) insertChar(c byte) {
	p, err := e.buf.InsertChar(e.cursor, c)
	e.apply("insert_char", p, err)
}

func (e *Editor) backspace() {
	p, err := e.buf.RemoveChar(e.cursor)
	e.apply("backspace", p, err)
}

func (e *Editor) newline() {
	p, err := e.buf.SplitForNewline(e.cursor, e.buf.CalculateIndent(e.cursor.Row))
	e.apply("newline", p, err)
}

func (e *Editor) openBelow() {
	e.cursor.Col = e.currentRowLen()
	e.newline()
	e.mode = ModeInsert
}

// openAbove inserts an indented row at the cursor row and leaves the
// cursor on it.
func (e *Editor) openAbove() {
	row := e.cursor.Row
	indent := e.buf.CalculateIndent(row)
	_, err := e.buf.SplitForNewline(buffer.Position{Row: row}, indent)
	e.apply("open_above", buffer.Position{Row: row, Col: len(indent)}, err)
	e.mode = ModeInsert
}

// deleteCharUnderCursor removes the byte the cursor rests on.
func (e *Editor) deleteCharUnderCursor() {
	if e.currentRowLen() == 0 {
		return
	}
	p, err := e.buf.RemoveChar(buffer.Position{Row: e.cursor.Row, Col: e.cursor.Col + 1})
	e.apply("delete_char", p, err)
}

// deleteWordLeft removes trailing whitespace and then one word before the
// cursor, one byte at a time. At column 0 it joins with the previous row.
func (e *Editor) deleteWordLeft() {
	if e.cursor.Col == 0 {
		e.backspace()
		return
	}
	raw := e.rawAt(e.cursor.Row)
	col := e.cursor.Col
	for col > 0 && isWhitespace(raw[col-1]) {
		col--
	}
	for col > 0 && !isWhitespace(raw[col-1]) {
		col--
	}
	for n := e.cursor.Col - col; n > 0; n-- {
		e.backspace()
	}
}
