// Package selection tracks the single visual-mode range of an editing
// session: a fixed anchor and a live end that follows the cursor.
package selection

import "github.com/kobzarvs/vedit/internal/buffer"

// Kind says whether a selection covers characters or whole rows.
type Kind int

const (
	KindChar Kind = iota
	KindLine
)

type Selection struct {
	anchor buffer.Position
	live   buffer.Position
	active bool
	kind   Kind
}

// Begin starts a character-wise selection with anchor and live at p.
func (s *Selection) Begin(p buffer.Position) {
	s.anchor = p
	s.live = p
	s.active = true
	s.kind = KindChar
}

// BeginLines starts a row-wise selection at p.
func (s *Selection) BeginLines(p buffer.Position) {
	s.Begin(p)
	s.kind = KindLine
}

// Extend moves the live end. It does nothing while inactive.
func (s *Selection) Extend(p buffer.Position) {
	if !s.active {
		return
	}
	s.live = p
}

func (s *Selection) End() { s.active = false }

func (s *Selection) Active() bool            { return s.active }
func (s *Selection) Kind() Kind              { return s.kind }
func (s *Selection) Anchor() buffer.Position { return s.anchor }
func (s *Selection) Live() buffer.Position   { return s.live }

// Bounds returns anchor and live ordered so that start comes first.
func (s *Selection) Bounds() (start, end buffer.Position) {
	if before(s.live, s.anchor) {
		return s.live, s.anchor
	}
	return s.anchor, s.live
}

// Contains reports whether p lies inside the active selection, both ends
// included. A row-wise selection contains every column of its rows.
func (s *Selection) Contains(p buffer.Position) bool {
	if !s.active {
		return false
	}
	start, end := s.Bounds()
	if p.Row < start.Row || p.Row > end.Row {
		return false
	}
	if s.kind == KindLine {
		return true
	}
	if start.Row == end.Row {
		return p.Col >= start.Col && p.Col <= end.Col
	}
	switch p.Row {
	case start.Row:
		return p.Col >= start.Col
	case end.Row:
		return p.Col <= end.Col
	}
	return true
}

func before(a, b buffer.Position) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}
