package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// ManagerState exposes internal state for observability.
type ManagerState struct {
	Path      string     `json:"path"`
	DraftsDir string     `json:"drafts_dir,omitempty"`
	Draft     bool       `json:"draft"`
	FromDraft bool       `json:"from_draft"`
	SaveState string     `json:"save_state"`
	LastError string     `json:"last_error,omitempty"`
	LastSave  *time.Time `json:"last_save,omitempty"`
}

// State implements introspection.Introspectable.
func (m *Manager) State() any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state := ManagerState{
		Path:      m.path,
		DraftsDir: m.draftsDir,
		Draft:     IsDraftPath(m.draftsDir, m.path),
		FromDraft: m.fromDraft,
		SaveState: m.last.State(),
		LastError: m.last.Error,
	}
	if !m.lastSave.IsZero() {
		t := m.lastSave
		state.LastSave = &t
	}
	return state
}

// ComponentType implements introspection.Component.
func (m *Manager) ComponentType() string {
	return "document-manager"
}

var _ introspection.Introspectable = (*Manager)(nil)
var _ introspection.Component = (*Manager)(nil)
