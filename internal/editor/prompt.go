package editor

// prompt reads a line of input on the message line. format must contain
// one %s, replaced by the text typed so far. ok is false when the user
// pressed Esc or the surface stopped delivering keys.
//
// The prompt redraws through the surface itself and never dispatches keys
// to the mode tables.
func (e *Editor) prompt(format string) (input string, ok bool) {
	if e.surface == nil {
		return "", false
	}
	e.prompting = true
	defer func() { e.prompting = false }()

	var buf []byte
	for {
		e.setStatus(format, string(buf))
		e.surface.Draw(e.Frame())

		code, err := e.surface.ReadKey()
		if err != nil {
			e.setStatus("")
			return "", false
		}
		switch {
		case code == KeyBackspace || code == KeyCtrlH || code == KeyDEL:
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
			}
		case code == KeyEnter || code == KeyCR || code == KeyLF:
			e.setStatus("")
			return string(buf), true
		case code == KeyEsc:
			e.setStatus("")
			return "", false
		case code == KeyRefresh:
			e.syncSize()
		case isPrintable(code):
			buf = append(buf, byte(code))
		}
	}
}
