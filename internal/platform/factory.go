package platform

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/tusk/pkg/adapters/fs"
	"github.com/aretw0/tusk/pkg/assist"
	"github.com/aretw0/tusk/pkg/core"
	"github.com/aretw0/tusk/pkg/session"
	"github.com/aretw0/tusk/pkg/snippets"
)

// Environment is the fully resolved configuration.
type Environment struct {
	Paths        Paths
	AutoIndent   bool
	RecentLimit  int
	HistoryLimit int
	SkipRecent   bool
	Logger       *slog.Logger
	Clock        func() time.Time
}

// Resolve applies opts, the config file and the defaults, in that order
// of precedence.
func Resolve(opts ...Option) (Environment, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	paths, err := resolve(o)
	if err != nil {
		return Environment{}, err
	}

	env := Environment{
		Paths:        paths,
		AutoIndent:   true,
		RecentLimit:  o.recentLimit,
		HistoryLimit: o.historyLimit,
		SkipRecent:   o.skipRecent,
		Logger:       o.logger,
		Clock:        o.clock,
	}
	if o.autoIndent != nil {
		env.AutoIndent = *o.autoIndent
	}
	if env.RecentLimit < 1 {
		env.RecentLimit = core.DefaultRecentLimit
	}
	if env.HistoryLimit < 1 {
		env.HistoryLimit = session.DefaultHistoryLimit
	}
	if env.Logger == nil {
		env.Logger = slog.New(slog.DiscardHandler)
	}
	if env.Clock == nil {
		env.Clock = time.Now
	}
	return env, nil
}

// Open starts an editing session on path, or on a new draft when path is
// empty.
//
//	s, err := tusk.Open(ctx, "notes.md", tusk.WithLogger(logger))
func Open(ctx context.Context, path string, opts ...Option) (*session.Session, error) {
	env, err := Resolve(opts...)
	if err != nil {
		return nil, err
	}

	manager, err := fs.NewManager(fs.Config{
		Path:      path,
		DraftsDir: env.Paths.Drafts,
		Logger:    env.Logger,
		Clock:     env.Clock,
	})
	if err != nil {
		return nil, err
	}

	table := snippets.New(ctx, fs.NewSnippetStore(env.Paths.Snippets), env.Logger)
	router := assist.NewRouter(table,
		assist.WithLogger(env.Logger),
		assist.WithAutoIndent(env.AutoIndent),
	)

	return session.Open(ctx, session.Config{
		Documents:    manager,
		Settings:     fs.NewSettingsStore(env.Paths.Settings, env.Logger),
		Router:       router,
		Logger:       env.Logger,
		RecentLimit:  env.RecentLimit,
		HistoryLimit: env.HistoryLimit,
		SkipRecent:   env.SkipRecent,
	})
}

// OpenSnippets loads the snippet table backed by the configured file.
func OpenSnippets(ctx context.Context, opts ...Option) (*snippets.Table, error) {
	env, err := Resolve(opts...)
	if err != nil {
		return nil, err
	}
	return snippets.New(ctx, fs.NewSnippetStore(env.Paths.Snippets), env.Logger), nil
}

// OpenSettings returns the settings store at the configured path.
func OpenSettings(opts ...Option) (*fs.SettingsStore, error) {
	env, err := Resolve(opts...)
	if err != nil {
		return nil, err
	}
	return fs.NewSettingsStore(env.Paths.Settings, env.Logger), nil
}

// ListDrafts returns the drafts in the configured directory, newest first.
func ListDrafts(opts ...Option) ([]string, error) {
	env, err := Resolve(opts...)
	if err != nil {
		return nil, err
	}
	return fs.ListDrafts(env.Paths.Drafts)
}

// Watch reports external changes to path and, when its directory exists,
// to the snippet file.
func Watch(ctx context.Context, path string, opts ...Option) (<-chan core.Event, error) {
	env, err := Resolve(opts...)
	if err != nil {
		return nil, err
	}
	paths := []string{path}
	if info, err := os.Stat(filepath.Dir(env.Paths.Snippets)); err == nil && info.IsDir() {
		paths = append(paths, env.Paths.Snippets)
	}
	return fs.Watch(ctx, env.Logger, paths...)
}
