package assist

import (
	"strings"

	"github.com/aretw0/tusk/pkg/core"
)

// Buffer is a line-oriented view of the text being edited.
// Handlers mutate it in place; the router turns it back into an EditState.
type Buffer struct {
	lines []string
	row   int
	col   int // in runes
}

// NewBuffer splits text into lines and clamps the cursor into range.
func NewBuffer(st core.EditState) *Buffer {
	b := &Buffer{lines: strings.Split(st.Text, "\n")}
	b.row = min(max(st.Cursor.Row, 0), len(b.lines)-1)
	b.col = min(max(st.Cursor.Col, 0), len([]rune(b.lines[b.row])))
	return b
}

// State returns the text and cursor.
func (b *Buffer) State() core.EditState {
	return core.EditState{
		Text:   strings.Join(b.lines, "\n"),
		Cursor: core.Cursor{Row: b.row, Col: b.col},
	}
}

// Text returns the full text.
func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// Row returns the cursor row.
func (b *Buffer) Row() int {
	return b.row
}

// Line returns the line under the cursor.
func (b *Buffer) Line() string {
	return b.lines[b.row]
}

// Before returns the part of the current line left of the cursor.
func (b *Buffer) Before() string {
	return string([]rune(b.lines[b.row])[:b.col])
}

// After returns the part of the current line right of the cursor.
func (b *Buffer) After() string {
	return string([]rune(b.lines[b.row])[b.col:])
}

// PrevRune returns the rune left of the cursor, if any.
func (b *Buffer) PrevRune() (rune, bool) {
	if b.col == 0 {
		return 0, false
	}
	return []rune(b.lines[b.row])[b.col-1], true
}

// NextRune returns the rune right of the cursor, if any.
func (b *Buffer) NextRune() (rune, bool) {
	line := []rune(b.lines[b.row])
	if b.col >= len(line) {
		return 0, false
	}
	return line[b.col], true
}

// Insert places s at the cursor and moves the cursor to the end of it.
// s may span several lines.
func (b *Buffer) Insert(s string) {
	if s == "" {
		return
	}
	before, after := b.Before(), b.After()
	parts := strings.Split(s, "\n")
	if len(parts) == 1 {
		b.lines[b.row] = before + s + after
		b.col += len([]rune(s))
		return
	}

	last := len(parts) - 1
	added := make([]string, 0, len(parts))
	added = append(added, before+parts[0])
	added = append(added, parts[1:last]...)
	added = append(added, parts[last]+after)

	lines := make([]string, 0, len(b.lines)+last)
	lines = append(lines, b.lines[:b.row]...)
	lines = append(lines, added...)
	lines = append(lines, b.lines[b.row+1:]...)
	b.lines = lines
	b.row += last
	b.col = len([]rune(parts[last]))
}

// InsertAround inserts left before the cursor and right after it,
// leaving the cursor between the two.
func (b *Buffer) InsertAround(left, right string) {
	b.Insert(left)
	row, col := b.row, b.col
	b.Insert(right)
	b.row, b.col = row, col
}

// DeleteBefore removes up to n runes left of the cursor on the current line.
func (b *Buffer) DeleteBefore(n int) {
	n = min(n, b.col)
	line := []rune(b.lines[b.row])
	b.lines[b.row] = string(line[:b.col-n]) + string(line[b.col:])
	b.col -= n
}

// DeleteAfter removes up to n runes right of the cursor on the current line.
func (b *Buffer) DeleteAfter(n int) {
	line := []rune(b.lines[b.row])
	n = min(n, len(line)-b.col)
	b.lines[b.row] = string(line[:b.col]) + string(line[b.col+n:])
}

// JoinPrevious merges the current line into the previous one.
// It reports false on the first line.
func (b *Buffer) JoinPrevious() bool {
	if b.row == 0 {
		return false
	}
	prev := b.lines[b.row-1]
	b.lines[b.row-1] = prev + b.lines[b.row]
	b.lines = append(b.lines[:b.row], b.lines[b.row+1:]...)
	b.row--
	b.col = len([]rune(prev))
	return true
}

// MoveRight advances the cursor by n runes within the current line.
func (b *Buffer) MoveRight(n int) {
	b.col = min(b.col+n, len([]rune(b.lines[b.row])))
}
