package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/aretw0/tusk/pkg/core"
)

// snippetEntry is the on-disk shape of one custom snippet.
type snippetEntry struct {
	Content     string `json:"content"`
	Description string `json:"description"`
}

// SnippetStore keeps custom snippets in a JSON object keyed by trigger.
// Builtin snippets are never written.
type SnippetStore struct {
	Path string // e.g. ~/.config/tusk/snippets.json
}

// NewSnippetStore creates a store backed by the file at path.
func NewSnippetStore(path string) *SnippetStore {
	return &SnippetStore{Path: path}
}

// Load reads the custom snippets. A missing file yields an empty table;
// a malformed one returns an error the caller treats as "no snippets".
func (s *SnippetStore) Load(ctx context.Context) (map[string]core.Snippet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(map[string]core.Snippet)

	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return out, nil
	}
	if err != nil {
		return out, fmt.Errorf("failed to read snippets: %w", err)
	}

	var entries map[string]snippetEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return out, fmt.Errorf("invalid snippets file %s: %w", s.Path, err)
	}
	for trigger, e := range entries {
		out[trigger] = core.Snippet{
			Trigger:     trigger,
			Expansion:   e.Content,
			Description: e.Description,
			Origin:      core.OriginCustom,
		}
	}
	return out, nil
}

// Save rewrites the whole file with snippets.
func (s *SnippetStore) Save(ctx context.Context, snippets map[string]core.Snippet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entries := make(map[string]snippetEntry, len(snippets))
	for trigger, sn := range snippets {
		entries[trigger] = snippetEntry{Content: sn.Expansion, Description: sn.Description}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := writeJSONFile(s.Path, data); err != nil {
		return fmt.Errorf("failed to write snippets: %w", err)
	}
	return nil
}

var _ core.SnippetStore = (*SnippetStore)(nil)
