package editor

// maxCol is the last column the cursor may rest on in the current mode.
// Insert mode may sit one past the last byte.
func (e *Editor) maxCol() int {
	n := e.currentRowLen()
	if e.mode == ModeInsert {
		return n
	}
	if n == 0 {
		return 0
	}
	return n - 1
}

func (e *Editor) currentRowLen() int {
	r := e.buf.Row(e.cursor.Row)
	if r == nil {
		return 0
	}
	return r.Len()
}

// clampForMode keeps the cursor inside the buffer and off the position
// past the last byte outside Insert mode.
func (e *Editor) clampForMode() {
	if e.cursor.Row >= e.buf.Count() {
		e.cursor.Row = e.buf.Count() - 1
	}
	if e.cursor.Row < 0 {
		e.cursor.Row = 0
	}
	n := e.currentRowLen()
	if e.cursor.Col > n {
		e.cursor.Col = n
	}
	if e.cursor.Col < 0 {
		e.cursor.Col = 0
	}
	if e.mode != ModeInsert && e.cursor.Col == n && e.cursor.Col > 0 {
		e.cursor.Col--
	}
}

// renderCol is the tab-expanded cursor column, without the gutter.
func (e *Editor) renderCol() int {
	return e.buf.RenderX(e.cursor.Row, e.cursor.Col)
}

func (e *Editor) screenCol() int {
	return GutterWidth + e.renderCol()
}

// effectiveScrollOff shrinks the margin on short screens so the cursor row
// always stays inside the view.
func (e *Editor) effectiveScrollOff() int {
	off := e.scrollOff
	if m := (e.viewHeight() - 1) / 2; off > m {
		off = m
	}
	if off < 0 {
		return 0
	}
	return off
}

func (e *Editor) scroll() {
	h := e.viewHeight()
	off := e.effectiveScrollOff()
	row := e.cursor.Row

	if row < e.viewStart+off {
		e.viewStart = row - off
		if e.viewStart < 0 {
			e.viewStart = 0
		}
	} else if row >= e.viewStart+h-off {
		e.viewStart = row - h + 1 + off
	}

	if limit := e.buf.Count() - h; e.viewStart > limit {
		e.viewStart = limit
	}
	if e.viewStart < 0 {
		e.viewStart = 0
	}
}

func (e *Editor) moveLeft() {
	if e.cursor.Col > 0 {
		e.cursor.Col--
	}
}

func (e *Editor) moveRight() {
	if e.cursor.Col < e.maxCol() {
		e.cursor.Col++
	}
}

func (e *Editor) moveUp() {
	if e.cursor.Row > 0 {
		e.cursor.Row--
	}
	if e.cursor.Col > e.maxCol() {
		e.cursor.Col = e.maxCol()
	}
}

func (e *Editor) moveDown() {
	if e.cursor.Row < e.buf.Count()-1 {
		e.cursor.Row++
	}
	if e.cursor.Col > e.maxCol() {
		e.cursor.Col = e.maxCol()
	}
}
