package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/tusk/pkg/core"
)

// Config holds the configuration for the document manager.
type Config struct {
	Path      string // target file; empty means "start a draft"
	DraftsDir string
	Logger    *slog.Logger
	Clock     func() time.Time
}

// Manager implements core.DocumentStore on the local filesystem.
// Writes go through a temp file and a rename, so a crash mid-save leaves
// the previous content intact.
type Manager struct {
	mu        sync.RWMutex
	path      string
	savedPath string // path of the last successful write
	draftsDir string
	lastSave  time.Time
	last      core.SaveResult
	fromDraft bool
	logger    *slog.Logger
	now       func() time.Time
}

// NewManager binds a manager to cfg.Path, or to a freshly created draft
// under cfg.DraftsDir when no path is given.
func NewManager(cfg Config) (*Manager, error) {
	m := &Manager{
		draftsDir: cfg.DraftsDir,
		logger:    cfg.Logger,
		now:       cfg.Clock,
	}
	if m.logger == nil {
		m.logger = slog.New(slog.DiscardHandler)
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.draftsDir != "" {
		abs, err := filepath.Abs(m.draftsDir)
		if err != nil {
			return nil, err
		}
		m.draftsDir = abs
	}

	if cfg.Path == "" {
		if m.draftsDir == "" {
			return nil, errors.New("no document path and no drafts directory")
		}
		draft, err := CreateDraft(m.draftsDir, m.now())
		if err != nil {
			return nil, err
		}
		m.path = draft
		m.fromDraft = true
		m.logger.Info("working in draft", "path", draft)
		return m, nil
	}

	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(abs), defaultDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create document directory: %w", err)
	}
	m.path = abs
	return m, nil
}

// Path returns the current target path.
func (m *Manager) Path() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.path
}

// IsDraft reports whether the current target is a draft file.
func (m *Manager) IsDraft() bool {
	return IsDraftPath(m.draftsDir, m.Path())
}

// DraftsDir returns the absolute drafts directory.
func (m *Manager) DraftsDir() string {
	return m.draftsDir
}

// LastSave returns the time of the last successful write.
func (m *Manager) LastSave() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastSave
}

// LastResult returns the result of the last write attempt.
func (m *Manager) LastResult() core.SaveResult {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last
}

// SetFilePath retargets subsequent writes. The last-save time is kept.
func (m *Manager) SetFilePath(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.path = path
}

// AutoSave writes text to the current path.
func (m *Manager) AutoSave(ctx context.Context, text string) core.SaveResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.write(ctx, m.path, text)
}

// write must be called with m.mu held.
func (m *Manager) write(ctx context.Context, path, text string) core.SaveResult {
	if err := ctx.Err(); err != nil {
		m.last = core.SaveFailed(err)
		return m.last
	}

	if err := writeFileAtomic(path, []byte(text), fileMode(path, defaultFilePerm)); err != nil {
		m.logger.Error("failed to autosave", "path", path, "error", err)
		m.last = core.SaveFailed(err)
		return m.last
	}

	m.lastSave = m.now()
	m.savedPath = path
	m.last = core.Saved(m.lastSave)
	m.logger.Debug("autosaved", "path", path, "bytes", len(text))
	return m.last
}

// LoadLastSave reads the content of the current path. A missing file is
// the normal state of a new document and yields "". When the current path
// was never written but an earlier path was, that content is returned.
func (m *Manager) LoadLastSave(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.RLock()
	path, saved := m.path, m.savedPath
	m.mu.RUnlock()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && saved != "" && saved != path {
		data, err = os.ReadFile(saved)
	}
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// SaveAs writes text to path and makes it the current target. On failure
// the previous target is kept. Saving a draft to a non-draft path removes
// the draft; files outside the drafts directory are never deleted.
func (m *Manager) SaveAs(ctx context.Context, path, text string) core.SaveResult {
	abs, err := filepath.Abs(path)
	if err != nil {
		return core.SaveFailed(err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	previous := m.path
	res := m.write(ctx, abs, text)
	if !res.Success {
		return res
	}
	m.path = abs

	if previous != abs && IsDraftPath(m.draftsDir, previous) && !IsDraftPath(m.draftsDir, abs) {
		if err := os.Remove(previous); err != nil && !errors.Is(err, fs.ErrNotExist) {
			m.logger.Warn("failed to remove draft", "path", previous, "error", err)
		} else {
			m.logger.Info("draft superseded", "draft", previous, "path", abs)
		}
	}
	return res
}

var _ core.DocumentStore = (*Manager)(nil)
