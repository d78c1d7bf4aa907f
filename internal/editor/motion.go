package editor

import "github.com/kobzarvs/vedit/internal/buffer"

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

func firstNonBlank(raw []byte) int {
	i := 0
	for i < len(raw) && isWhitespace(raw[i]) {
		i++
	}
	return i
}

func (e *Editor) rawAt(row int) []byte {
	r := e.buf.Row(row)
	if r == nil {
		return nil
	}
	return r.Raw()
}

func (e *Editor) moveLineEnd() {
	e.cursor.Col = e.currentRowLen()
}

func (e *Editor) moveFirstNonBlank() {
	e.cursor.Col = firstNonBlank(e.rawAt(e.cursor.Row))
}

// wordForward moves to the start of the next word: past the rest of the
// current word, then past whitespace. At the end of a row it continues on
// the first non-blank of the next row.
func (e *Editor) wordForward() {
	raw := e.rawAt(e.cursor.Row)
	col := e.cursor.Col
	for col < len(raw) && !isWhitespace(raw[col]) {
		col++
	}
	for col < len(raw) && isWhitespace(raw[col]) {
		col++
	}
	if col < len(raw) {
		e.cursor.Col = col
		return
	}
	if e.cursor.Row < e.buf.Count()-1 {
		e.cursor.Row++
		e.cursor.Col = firstNonBlank(e.rawAt(e.cursor.Row))
		return
	}
	e.cursor.Col = len(raw)
}

func (e *Editor) wordBackward() {
	row := e.cursor.Row
	raw := e.rawAt(row)
	col := e.cursor.Col
	if col > len(raw) {
		col = len(raw)
	}
	for {
		for col > 0 && isWhitespace(raw[col-1]) {
			col--
		}
		if col > 0 {
			break
		}
		if row == 0 {
			e.cursor = buffer.Position{}
			return
		}
		row--
		raw = e.rawAt(row)
		col = len(raw)
	}
	for col > 0 && !isWhitespace(raw[col-1]) {
		col--
	}
	e.cursor = buffer.Position{Row: row, Col: col}
}

// wordEnd moves to the last byte of the current word, or of the next one
// when already there.
func (e *Editor) wordEnd() {
	row := e.cursor.Row
	raw := e.rawAt(row)
	col := e.cursor.Col + 1
	for {
		for col < len(raw) && isWhitespace(raw[col]) {
			col++
		}
		if col < len(raw) {
			break
		}
		if row == e.buf.Count()-1 {
			e.cursor = buffer.Position{Row: row, Col: len(raw)}
			return
		}
		row++
		raw = e.rawAt(row)
		col = 0
	}
	for col+1 < len(raw) && !isWhitespace(raw[col+1]) {
		col++
	}
	e.cursor = buffer.Position{Row: row, Col: col}
}

func (e *Editor) gotoFirstLine() {
	e.cursor.Row = 0
	e.moveFirstNonBlank()
}

func (e *Editor) gotoLastLine() {
	e.cursor.Row = e.buf.Count() - 1
	e.moveFirstNonBlank()
}
