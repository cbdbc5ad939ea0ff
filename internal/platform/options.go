package platform

import (
	"log/slog"
	"time"
)

// options holds the internal configuration for a tusk session.
type options struct {
	home         string
	draftsDir    string
	settingsPath string
	snippetsPath string
	configPath   string
	autoIndent   *bool
	recentLimit  int
	historyLimit int
	skipRecent   bool
	logger       *slog.Logger
	clock        func() time.Time
}

// Option defines a functional option for configuring tusk.
type Option func(*options)

// defaultOptions returns the default configuration.
// Paths left empty are resolved against the home directory later.
func defaultOptions() *options {
	return &options{}
}

// WithHome sets the state directory. Defaults to $TUSK_HOME or ~/.tusk.
func WithHome(dir string) Option {
	return func(o *options) {
		o.home = dir
	}
}

// WithDraftsDir sets where unnamed documents are created.
func WithDraftsDir(dir string) Option {
	return func(o *options) {
		o.draftsDir = dir
	}
}

// WithSettingsPath sets the per-document settings file.
func WithSettingsPath(path string) Option {
	return func(o *options) {
		o.settingsPath = path
	}
}

// WithSnippetsPath sets the custom snippet file.
func WithSnippetsPath(path string) Option {
	return func(o *options) {
		o.snippetsPath = path
	}
}

// WithConfigFile sets the YAML config file. Defaults to <home>/config.yaml.
func WithConfigFile(path string) Option {
	return func(o *options) {
		o.configPath = path
	}
}

// WithAutoIndent sets the initial auto-indent state.
func WithAutoIndent(enabled bool) Option {
	return func(o *options) {
		o.autoIndent = &enabled
	}
}

// WithRecentLimit caps the recent files list.
func WithRecentLimit(n int) Option {
	return func(o *options) {
		o.recentLimit = n
	}
}

// WithHistoryLimit caps the undo stack.
func WithHistoryLimit(n int) Option {
	return func(o *options) {
		o.historyLimit = n
	}
}

// WithoutRecent opens documents without adding them to the recent files
// list, for inspection.
func WithoutRecent() Option {
	return func(o *options) {
		o.skipRecent = true
	}
}

// WithLogger sets the logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock overrides the time source used for draft names and save stamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}
