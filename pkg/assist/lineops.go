package assist

import (
	"strings"

	"github.com/aretw0/tusk/pkg/core"
)

// LineCount returns the number of lines in the text.
// An empty string is considered to have 1 line.
func LineCount(text string) int {
	if text == "" {
		return 1
	}
	return strings.Count(text, "\n") + 1
}

// DuplicateLine copies the cursor line immediately below itself.
// The cursor follows onto the copy, keeping its column.
func DuplicateLine(st core.EditState) core.EditState {
	lines := strings.Split(st.Text, "\n")
	row := st.Cursor.Row
	if row < 0 || row >= len(lines) {
		return st
	}

	result := make([]string, 0, len(lines)+1)
	result = append(result, lines[:row+1]...)
	result = append(result, lines[row])
	result = append(result, lines[row+1:]...)
	return core.EditState{
		Text:   strings.Join(result, "\n"),
		Cursor: core.Cursor{Row: row + 1, Col: st.Cursor.Col},
	}
}

// MoveLine swaps the cursor line with its neighbour (delta -1 = up,
// +1 = down). At the buffer boundaries the state is returned unchanged.
func MoveLine(st core.EditState, delta int) core.EditState {
	lines := strings.Split(st.Text, "\n")
	row := st.Cursor.Row
	target := row + delta
	if row < 0 || row >= len(lines) || target < 0 || target >= len(lines) {
		return st
	}

	lines[row], lines[target] = lines[target], lines[row]
	return core.EditState{
		Text:   strings.Join(lines, "\n"),
		Cursor: core.Cursor{Row: target, Col: st.Cursor.Col},
	}
}

// DeleteLine removes the cursor line. The cursor stays on the same row,
// or moves to the new last line, with the column clamped.
func DeleteLine(st core.EditState) core.EditState {
	lines := strings.Split(st.Text, "\n")
	row := st.Cursor.Row
	if row < 0 || row >= len(lines) {
		return st
	}
	if len(lines) == 1 {
		return core.EditState{}
	}

	lines = append(lines[:row], lines[row+1:]...)
	row = min(row, len(lines)-1)
	col := min(st.Cursor.Col, len([]rune(lines[row])))
	return core.EditState{
		Text:   strings.Join(lines, "\n"),
		Cursor: core.Cursor{Row: row, Col: col},
	}
}
