package buffer

// Row is one line of text. raw holds the bytes as typed, render holds raw
// with every tab expanded to the next tab stop.
type Row struct {
	raw    []byte
	render []byte
}

func newRow(b []byte, tabStop int) *Row {
	r := &Row{raw: append([]byte(nil), b...)}
	r.update(tabStop)
	return r
}

func (r *Row) Raw() []byte    { return r.raw }
func (r *Row) Render() []byte { return r.render }
func (r *Row) Len() int       { return len(r.raw) }
func (r *Row) RenderLen() int { return len(r.render) }

// update re-derives render from raw. Every mutation of raw must be
// followed by update before the row is read again.
func (r *Row) update(tabStop int) {
	if tabStop < 1 {
		tabStop = 1
	}
	tabs := 0
	for _, c := range r.raw {
		if c == '\t' {
			tabs++
		}
	}
	render := r.render[:0]
	if cap(render) < len(r.raw)+tabs*(tabStop-1) {
		render = make([]byte, 0, len(r.raw)+tabs*(tabStop-1))
	}
	for _, c := range r.raw {
		if c != '\t' {
			render = append(render, c)
			continue
		}
		render = append(render, ' ')
		for len(render)%tabStop != 0 {
			render = append(render, ' ')
		}
	}
	r.render = render
}

// renderX maps a raw column to its column in render.
func (r *Row) renderX(col, tabStop int) int {
	if tabStop < 1 {
		tabStop = 1
	}
	if col > len(r.raw) {
		col = len(r.raw)
	}
	rx := 0
	for i := 0; i < col; i++ {
		if r.raw[i] == '\t' {
			rx += tabStop - rx%tabStop
			continue
		}
		rx++
	}
	return rx
}

func (r *Row) insert(col int, b []byte) {
	r.raw = append(r.raw, b...)
	copy(r.raw[col+len(b):], r.raw[col:len(r.raw)-len(b)])
	copy(r.raw[col:], b)
}

func (r *Row) delete(col int) {
	r.raw = append(r.raw[:col], r.raw[col+1:]...)
}
