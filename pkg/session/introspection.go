package session

import (
	"github.com/aretw0/introspection"

	"github.com/aretw0/tusk/pkg/assist"
	"github.com/aretw0/tusk/pkg/core"
)

// State exposes the session for observability.
type State struct {
	Path       string        `json:"path"`
	Dirty      bool          `json:"dirty"`
	SaveState  string        `json:"save_state"`
	LastError  string        `json:"last_error,omitempty"`
	Words      int           `json:"words"`
	Chars      int           `json:"chars"`
	Lines      int           `json:"lines"`
	Cursor     core.Cursor   `json:"cursor"`
	AutoIndent bool          `json:"auto_indent"`
	Pending    string        `json:"pending_trigger,omitempty"`
	UndoDepth  int           `json:"undo_depth"`
	Settings   core.Settings `json:"settings"`
	Store      any           `json:"store,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Session) State() any {
	words, chars := s.Stats()
	state := State{
		Path:       s.docs.Path(),
		Dirty:      s.doc.Dirty,
		SaveState:  s.doc.LastSave.State(),
		LastError:  s.doc.LastSave.Error,
		Words:      words,
		Chars:      chars,
		Lines:      assist.LineCount(s.Text()),
		Cursor:     s.cursor,
		AutoIndent: s.router.AutoIndent(),
		Pending:    s.router.Pending(),
		UndoDepth:  len(s.undo),
		Settings:   s.settings,
	}
	if in, ok := s.docs.(introspection.Introspectable); ok {
		state.Store = in.State()
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Session) ComponentType() string {
	return "session"
}

var _ introspection.Introspectable = (*Session)(nil)
var _ introspection.Component = (*Session)(nil)
