package editor

import (
	"fmt"
	"strings"
)

// Key codes delivered by the terminal surface. Printable bytes and the
// control bytes 1-26 arrive as their own value; named keys use codes
// outside the byte range.
const (
	KeyCtrlC     = 3
	KeyCtrlH     = 8
	KeyTab       = 9
	KeyLF        = 10
	KeyCR        = 13
	KeyCtrlQ     = 17
	KeyCtrlS     = 19
	KeyCtrlW     = 23
	KeyEsc       = 27
	KeyDEL       = 127
	KeyArrowLeft = 1000 + iota
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyBackspace
	KeyEnter
	// KeyRefresh redraws without acting, e.g. after a resize.
	KeyRefresh
)

// Ctrl returns the control byte for a letter.
func Ctrl(c byte) int {
	return int(c & 0x1f)
}

func isControl(code int) bool {
	return code >= 1 && code <= 26
}

func isPrintable(code int) bool {
	return code >= 32 && code < 127
}

var namedKeys = map[string]int{
	"esc":       KeyEsc,
	"tab":       KeyTab,
	"space":     ' ',
	"enter":     KeyEnter,
	"backspace": KeyBackspace,
	"left":      KeyArrowLeft,
	"right":     KeyArrowRight,
	"up":        KeyArrowUp,
	"down":      KeyArrowDown,
}

// ParseKey converts a config key name such as "x", "space", "ctrl+s" or
// "left" into a key code.
func ParseKey(name string) (int, error) {
	if len(name) == 1 && isPrintable(int(name[0])) {
		return int(name[0]), nil
	}
	lower := strings.ToLower(name)
	if code, ok := namedKeys[lower]; ok {
		return code, nil
	}
	if rest, ok := strings.CutPrefix(lower, "ctrl+"); ok && len(rest) == 1 && rest[0] >= 'a' && rest[0] <= 'z' {
		return Ctrl(rest[0]), nil
	}
	return 0, fmt.Errorf("unknown key %q", name)
}

// KeyName is the inverse of ParseKey, used in log output.
func KeyName(code int) string {
	switch {
	case code == ' ':
		return "space"
	case isPrintable(code):
		return string(rune(code))
	case code == KeyTab:
		return "tab"
	case code == KeyEsc:
		return "esc"
	case isControl(code):
		return "ctrl+" + string(rune('a'+code-1))
	}
	for name, c := range namedKeys {
		if c == code {
			return name
		}
	}
	return fmt.Sprintf("key(%d)", code)
}
