package core

// GlobalKey is the reserved settings key for cross-document state.
const GlobalKey = "global"

// DefaultRecentLimit caps the recent files list.
const DefaultRecentLimit = 10

// Settings are the per-document preferences persisted across sessions.
type Settings struct {
	Theme          string `json:"theme"`
	InputWidth     int    `json:"input_width"`
	ShowPreview    bool   `json:"show_preview"`
	CursorLocation Cursor `json:"cursor_location"`
}

// DefaultSettings returns the record used for any field a store lacks.
func DefaultSettings() Settings {
	return Settings{
		Theme:       "default",
		InputWidth:  50,
		ShowPreview: true,
	}
}

// Normalize clamps InputWidth to 0..100 and negative cursor values to 0.
func (s Settings) Normalize() Settings {
	s.InputWidth = min(max(s.InputWidth, 0), 100)
	s.CursorLocation.Row = max(s.CursorLocation.Row, 0)
	s.CursorLocation.Col = max(s.CursorLocation.Col, 0)
	return s
}

// Widen grows the input pane by one percent.
func (s *Settings) Widen() {
	if s.InputWidth < 100 {
		s.InputWidth++
	}
}

// Shrink narrows the input pane by one percent.
func (s *Settings) Shrink() {
	if s.InputWidth > 0 {
		s.InputWidth--
	}
}

// TogglePreview flips preview visibility.
func (s *Settings) TogglePreview() {
	s.ShowPreview = !s.ShowPreview
}

// PaneWidths returns the input and preview widths in percent.
// A hidden preview gives the whole width to the input pane.
func (s Settings) PaneWidths() (input, preview int) {
	if !s.ShowPreview {
		return 100, 0
	}
	return s.InputWidth, 100 - s.InputWidth
}
