package core

import "context"

// DocumentStore persists the full text of one document.
// Adhering to this interface keeps the session independent of the
// underlying storage mechanism.
type DocumentStore interface {
	// Path returns the current target path. It is never empty.
	Path() string

	// AutoSave writes text to the current path. Failures are returned as
	// a failed SaveResult.
	AutoSave(ctx context.Context, text string) SaveResult

	// LoadLastSave returns the saved content. A missing file yields "".
	LoadLastSave(ctx context.Context) (string, error)

	// SetFilePath retargets subsequent writes.
	SetFilePath(path string)

	// SaveAs writes text to path and makes it the current target.
	SaveAs(ctx context.Context, path, text string) SaveResult
}

// SettingsStore persists per-document settings and the recent files list.
type SettingsStore interface {
	// Load returns the settings for key merged over the defaults.
	Load(ctx context.Context, key string) Settings

	// Save replaces the entry for key.
	Save(ctx context.Context, key string, s Settings) error

	// AddRecent moves path to the front of the recent files list.
	AddRecent(ctx context.Context, path string, max int) ([]string, error)

	// Recent returns the recent files list, most recent first.
	Recent(ctx context.Context) []string
}

// SnippetStore persists the custom snippet table.
type SnippetStore interface {
	// Load reads the custom snippets. A missing file yields an empty map.
	Load(ctx context.Context) (map[string]Snippet, error)

	// Save rewrites the whole custom snippet table.
	Save(ctx context.Context, snippets map[string]Snippet) error
}
