package buffer

import (
	"bytes"
	"errors"
	"fmt"
)

// DefaultTabStop is the render width of a tab when none is configured.
const DefaultTabStop = 4

// ErrInvalidIndex is returned for any row or column outside the store's
// bounds. The store is left unchanged when it is returned.
var ErrInvalidIndex = errors.New("invalid index")

// Position is a raw (unexpanded) location in the store.
type Position struct {
	Row int
	Col int
}

// Store is the ordered sequence of rows of one editing session. Once
// created it always holds at least one row.
type Store struct {
	rows    []*Row
	dirty   int
	tabStop int
}

func New(tabStop int) *Store {
	if tabStop < 1 {
		tabStop = DefaultTabStop
	}
	return &Store{
		rows:    []*Row{newRow(nil, tabStop)},
		tabStop: tabStop,
	}
}

// Load replaces the content with lines. An empty slice yields a single
// empty row. The dirty counter is reset.
func (s *Store) Load(lines []string) {
	rows := make([]*Row, 0, max(len(lines), 1))
	for _, line := range lines {
		rows = append(rows, newRow([]byte(line), s.tabStop))
	}
	if len(rows) == 0 {
		rows = append(rows, newRow(nil, s.tabStop))
	}
	s.rows = rows
	s.dirty = 0
}

func (s *Store) Count() int   { return len(s.rows) }
func (s *Store) TabStop() int { return s.tabStop }
func (s *Store) Dirty() int   { return s.dirty }

// ResetDirty marks the content as saved.
func (s *Store) ResetDirty() { s.dirty = 0 }

// Row returns row i, or nil when i is out of range.
func (s *Store) Row(i int) *Row {
	if i < 0 || i >= len(s.rows) {
		return nil
	}
	return s.rows[i]
}

// ByteCount is the total number of raw bytes, newlines excluded.
func (s *Store) ByteCount() int {
	n := 0
	for _, r := range s.rows {
		n += len(r.raw)
	}
	return n
}

// InsertRow inserts a row holding b at pos, 0 <= pos <= Count().
func (s *Store) InsertRow(pos int, b []byte) error {
	if pos < 0 || pos > len(s.rows) {
		return fmt.Errorf("insert row %d: %w", pos, ErrInvalidIndex)
	}
	s.rows = append(s.rows, nil)
	copy(s.rows[pos+1:], s.rows[pos:])
	s.rows[pos] = newRow(b, s.tabStop)
	return nil
}

// RemoveRow deletes the row at pos. The last remaining row can't be
// removed; row 0 can, as long as another row exists.
func (s *Store) RemoveRow(pos int) error {
	if len(s.rows) == 1 || pos < 0 || pos >= len(s.rows) {
		return fmt.Errorf("remove row %d: %w", pos, ErrInvalidIndex)
	}
	copy(s.rows[pos:], s.rows[pos+1:])
	s.rows[len(s.rows)-1] = nil
	s.rows = s.rows[:len(s.rows)-1]
	return nil
}

func (s *Store) checkPos(p Position) error {
	if p.Row < 0 || p.Row >= len(s.rows) {
		return fmt.Errorf("row %d: %w", p.Row, ErrInvalidIndex)
	}
	if p.Col < 0 || p.Col > len(s.rows[p.Row].raw) {
		return fmt.Errorf("column %d of row %d: %w", p.Col, p.Row, ErrInvalidIndex)
	}
	return nil
}

// InsertChar inserts c before column p.Col and returns the position just
// after it.
func (s *Store) InsertChar(p Position, c byte) (Position, error) {
	if err := s.checkPos(p); err != nil {
		return p, err
	}
	row := s.rows[p.Row]
	row.insert(p.Col, []byte{c})
	row.update(s.tabStop)
	s.dirty++
	return Position{Row: p.Row, Col: p.Col + 1}, nil
}

// RemoveChar deletes the byte left of p. At column 0 the row is joined
// onto the previous one and the join point is returned; at (0,0) nothing
// happens.
func (s *Store) RemoveChar(p Position) (Position, error) {
	if err := s.checkPos(p); err != nil {
		return p, err
	}
	if p.Col == 0 {
		if p.Row == 0 {
			return p, nil
		}
		col, err := s.AppendString(p.Row-1, s.rows[p.Row].raw)
		if err != nil {
			return p, err
		}
		if err := s.RemoveRow(p.Row); err != nil {
			return p, err
		}
		s.dirty++
		return Position{Row: p.Row - 1, Col: col}, nil
	}
	row := s.rows[p.Row]
	row.delete(p.Col - 1)
	row.update(s.tabStop)
	s.dirty++
	return Position{Row: p.Row, Col: p.Col - 1}, nil
}

// AppendString appends b to the end of row and returns the column where
// the appended bytes start.
func (s *Store) AppendString(row int, b []byte) (int, error) {
	if row < 0 || row >= len(s.rows) {
		return 0, fmt.Errorf("append to row %d: %w", row, ErrInvalidIndex)
	}
	r := s.rows[row]
	col := len(r.raw)
	r.raw = append(r.raw, b...)
	r.update(s.tabStop)
	return col, nil
}

// SplitForNewline breaks the row at p. At column 0 an indent-only row is
// inserted above; otherwise the tail moves to a new row below, prefixed
// with indent. The cursor position after the split is returned.
func (s *Store) SplitForNewline(p Position, indent []byte) (Position, error) {
	if err := s.checkPos(p); err != nil {
		return p, err
	}
	if p.Col == 0 {
		if err := s.InsertRow(p.Row, indent); err != nil {
			return p, err
		}
	} else {
		row := s.rows[p.Row]
		tail := make([]byte, 0, len(indent)+len(row.raw)-p.Col)
		tail = append(tail, indent...)
		tail = append(tail, row.raw[p.Col:]...)
		if err := s.InsertRow(p.Row+1, tail); err != nil {
			return p, err
		}
		row.raw = row.raw[:p.Col]
		row.update(s.tabStop)
	}
	s.dirty++
	return Position{Row: p.Row + 1, Col: len(indent)}, nil
}

// CalculateIndent returns the leading tabs of row as the seed for a new
// row split from it. Row 0 never seeds an indent.
func (s *Store) CalculateIndent(row int) []byte {
	if row <= 0 || row >= len(s.rows) {
		return nil
	}
	raw := s.rows[row].raw
	n := 0
	for n < len(raw) && raw[n] == '\t' {
		n++
	}
	return bytes.Repeat([]byte{'\t'}, n)
}

// RenderX maps a raw column of row to its render column. Out of range
// rows map to 0.
func (s *Store) RenderX(row, col int) int {
	r := s.Row(row)
	if r == nil || col <= 0 {
		return 0
	}
	return r.renderX(col, s.tabStop)
}

// Serialize joins every row with a trailing newline.
func (s *Store) Serialize() []byte {
	n := 0
	for _, r := range s.rows {
		n += len(r.raw) + 1
	}
	buf := make([]byte, 0, n)
	for _, r := range s.rows {
		buf = append(buf, r.raw...)
		buf = append(buf, '\n')
	}
	return buf
}

// Lines returns a copy of the raw content.
func (s *Store) Lines() []string {
	lines := make([]string, len(s.rows))
	for i, r := range s.rows {
		lines[i] = string(r.raw)
	}
	return lines
}
