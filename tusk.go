package tusk

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/tusk/internal/platform"
	"github.com/aretw0/tusk/pkg/adapters/fs"
	"github.com/aretw0/tusk/pkg/core"
	"github.com/aretw0/tusk/pkg/session"
	"github.com/aretw0/tusk/pkg/snippets"
)

// --- Types ---

// Session is an open document bound to the editing engine.
type Session = session.Session

// Table is the merged builtin and custom snippet table.
type Table = snippets.Table

// SettingsStore is the JSON-backed settings cache.
type SettingsStore = fs.SettingsStore

// Environment is the resolved configuration.
type Environment = platform.Environment

// Paths are the resolved on-disk locations.
type Paths = platform.Paths

// --- Configuration ---

// Option defines a functional option for configuring tusk.
type Option = platform.Option

// WithHome sets the state directory. Defaults to $TUSK_HOME or ~/.tusk.
func WithHome(dir string) Option {
	return platform.WithHome(dir)
}

// WithDraftsDir sets where unnamed documents are created.
func WithDraftsDir(dir string) Option {
	return platform.WithDraftsDir(dir)
}

// WithSettingsPath sets the per-document settings file.
func WithSettingsPath(path string) Option {
	return platform.WithSettingsPath(path)
}

// WithSnippetsPath sets the custom snippet file.
func WithSnippetsPath(path string) Option {
	return platform.WithSnippetsPath(path)
}

// WithConfigFile sets the YAML config file.
func WithConfigFile(path string) Option {
	return platform.WithConfigFile(path)
}

// WithAutoIndent sets the initial auto-indent state.
func WithAutoIndent(enabled bool) Option {
	return platform.WithAutoIndent(enabled)
}

// WithRecentLimit caps the recent files list.
func WithRecentLimit(n int) Option {
	return platform.WithRecentLimit(n)
}

// WithHistoryLimit caps the undo stack.
func WithHistoryLimit(n int) Option {
	return platform.WithHistoryLimit(n)
}

// WithoutRecent opens documents without recording them as recent.
func WithoutRecent() Option {
	return platform.WithoutRecent()
}

// WithLogger sets the logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// --- Factory ---

// Open starts a session on path, or on a new draft when path is empty.
func Open(ctx context.Context, path string, opts ...Option) (*Session, error) {
	return platform.Open(ctx, path, opts...)
}

// OpenSnippets loads the snippet table.
func OpenSnippets(ctx context.Context, opts ...Option) (*Table, error) {
	return platform.OpenSnippets(ctx, opts...)
}

// OpenSettings returns the settings store.
func OpenSettings(opts ...Option) (*SettingsStore, error) {
	return platform.OpenSettings(opts...)
}

// Resolve returns the configuration Open would use.
func Resolve(opts ...Option) (Environment, error) {
	return platform.Resolve(opts...)
}

// --- Operations ---

// ListDrafts returns the draft files, newest first.
func ListDrafts(opts ...Option) ([]string, error) {
	return platform.ListDrafts(opts...)
}

// IsDraft reports whether path lives in the configured drafts directory.
func IsDraft(path string, opts ...Option) bool {
	env, err := platform.Resolve(opts...)
	if err != nil {
		return false
	}
	return fs.IsDraftPath(env.Paths.Drafts, path)
}

// Watch reports external changes to path and the snippet file.
func Watch(ctx context.Context, path string, opts ...Option) (<-chan core.Event, error) {
	return platform.Watch(ctx, path, opts...)
}
