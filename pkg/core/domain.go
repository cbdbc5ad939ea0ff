// Package core holds the domain types of the editor and the ports that
// storage adapters implement.
package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// Document is the central entity of the domain.
// It is the buffer being edited plus the file it is bound to. Path is never
// empty: documents opened without a target are bound to a draft file.
type Document struct {
	Text     string
	Path     string
	Dirty    bool
	LastSave SaveResult
}

// SaveResult is produced by every persistence attempt.
// Failures are reported through Success/Error, never as a Go error.
type SaveResult struct {
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}

// Saved returns a successful result stamped with t.
func Saved(t time.Time) SaveResult {
	return SaveResult{Success: true, Timestamp: t}
}

// SaveFailed returns a failed result carrying err's message.
func SaveFailed(err error) SaveResult {
	msg := "save failed"
	if err != nil {
		msg = err.Error()
	}
	return SaveResult{Success: false, Error: msg}
}

// State reports "never" for a zero result, otherwise "ok" or "error".
func (r SaveResult) State() string {
	switch {
	case r.Success:
		return "ok"
	case r.Error != "":
		return "error"
	default:
		return "never"
	}
}

// Cursor is a 0-based (row, column) position. Columns count runes.
type Cursor struct {
	Row int
	Col int
}

// MarshalJSON encodes the cursor as [row, col].
func (c Cursor) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.Row, c.Col})
}

// UnmarshalJSON decodes a [row, col] pair.
func (c *Cursor) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("invalid cursor location: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("invalid cursor location: want 2 values, got %d", len(pair))
	}
	c.Row, c.Col = pair[0], pair[1]
	return nil
}

// Origin tells which table a snippet comes from.
type Origin int

const (
	OriginBuiltin Origin = iota
	OriginCustom
)

func (o Origin) String() string {
	if o == OriginCustom {
		return "custom"
	}
	return "builtin"
}

// MarshalText renders the origin by name in JSON output.
func (o Origin) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Snippet maps a short trigger to an expansion template.
type Snippet struct {
	Trigger     string `json:"trigger"`
	Expansion   string `json:"expansion"`
	Description string `json:"description,omitempty"`
	Origin      Origin `json:"origin"`
}

// EventType represents the type of change observed on a watched file.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a watched file.
type Event struct {
	Type      EventType
	Path      string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.Path)
}

// UnmarshalText accepts the names produced by MarshalText.
func (o *Origin) UnmarshalText(text []byte) error {
	switch string(text) {
	case "builtin":
		*o = OriginBuiltin
	case "custom":
		*o = OriginCustom
	default:
		return fmt.Errorf("unknown snippet origin %q", text)
	}
	return nil
}
