// Package snippets holds the trigger table used for snippet expansion:
// a fixed builtin table plus user-defined entries persisted through a
// core.SnippetStore.
package snippets

import (
	"context"
	"log/slog"
	"sort"
	"unicode"

	"github.com/aretw0/tusk/pkg/core"
)

// builtins is the fixed table shipped with the editor.
var builtins = []core.Snippet{
	{Trigger: "h1", Expansion: "# ", Description: "Level 1 heading"},
	{Trigger: "h2", Expansion: "## ", Description: "Level 2 heading"},
	{Trigger: "h3", Expansion: "### ", Description: "Level 3 heading"},
	{Trigger: "bold", Expansion: "****", Description: "Bold text"},
	{Trigger: "italic", Expansion: "**", Description: "Italic text"},
	{Trigger: "strike", Expansion: "~~~~", Description: "Strikethrough text"},
	{Trigger: "code", Expansion: "``", Description: "Inline code"},
	{Trigger: "codeblock", Expansion: "```\n\n```", Description: "Code block"},
	{Trigger: "ul", Expansion: "- ", Description: "Unordered list item"},
	{Trigger: "ol", Expansion: "1. ", Description: "Ordered list item"},
	{Trigger: "link", Expansion: "[]()", Description: "Markdown link"},
	{Trigger: "img", Expansion: "![]()", Description: "Image"},
	{Trigger: "quote", Expansion: "> ", Description: "Blockquote"},
	{Trigger: "hr", Expansion: "---", Description: "Horizontal rule"},
	{Trigger: "todo", Expansion: "- [ ] ", Description: "Todo item"},
	{Trigger: "done", Expansion: "- [x] ", Description: "Completed todo item"},
}

// Builtins returns a copy of the builtin table keyed by trigger.
func Builtins() map[string]core.Snippet {
	m := make(map[string]core.Snippet, len(builtins))
	for _, s := range builtins {
		s.Origin = core.OriginBuiltin
		m[s.Trigger] = s
	}
	return m
}

// Table merges the builtin and custom snippet tables.
type Table struct {
	builtin map[string]core.Snippet
	custom  map[string]core.Snippet
	store   core.SnippetStore
	logger  *slog.Logger
}

// New creates a table and loads the custom entries from store.
// A store that fails to load leaves the custom table empty.
// store may be nil for a builtin-only, in-memory table.
func New(ctx context.Context, store core.SnippetStore, logger *slog.Logger) *Table {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	t := &Table{
		builtin: Builtins(),
		custom:  make(map[string]core.Snippet),
		store:   store,
		logger:  logger,
	}
	t.Reload(ctx)
	return t
}

// Reload re-reads the custom table from the store.
func (t *Table) Reload(ctx context.Context) {
	custom, err := t.load(ctx)
	if err != nil {
		t.logger.Warn("custom snippets unavailable, using builtins only", "error", err)
	}
	t.custom = custom
}

// load reads the store, dropping entries that shadow a builtin.
func (t *Table) load(ctx context.Context) (map[string]core.Snippet, error) {
	custom := make(map[string]core.Snippet)
	if t.store == nil {
		return custom, nil
	}
	loaded, err := t.store.Load(ctx)
	if err != nil {
		return custom, err
	}
	for trigger, s := range loaded {
		if _, ok := t.builtin[trigger]; ok {
			t.logger.Warn("ignoring custom snippet that reuses a builtin trigger", "trigger", trigger)
			continue
		}
		s.Trigger = trigger
		s.Origin = core.OriginCustom
		custom[trigger] = s
	}
	return custom, nil
}

// Get returns the snippet for trigger. Builtins take precedence.
func (t *Table) Get(trigger string) (core.Snippet, bool) {
	if s, ok := t.builtin[trigger]; ok {
		return s, true
	}
	s, ok := t.custom[trigger]
	return s, ok
}

// Expand returns the expansion template for trigger.
func (t *Table) Expand(trigger string) (string, bool) {
	s, ok := t.Get(trigger)
	return s.Expansion, ok
}

// IsBuiltin reports whether trigger belongs to the builtin table.
func (t *Table) IsBuiltin(trigger string) bool {
	_, ok := t.builtin[trigger]
	return ok
}

// Validate checks whether trigger may be registered as a custom snippet.
func (t *Table) Validate(trigger string) error {
	if !validTrigger(trigger) {
		return core.ErrInvalidTrigger
	}
	if t.IsBuiltin(trigger) {
		return core.ErrBuiltinTrigger
	}
	return nil
}

// Insert registers a custom snippet and persists the custom table.
// It returns false without touching the table when trigger is a builtin
// trigger or not a valid trigger. A failed write keeps the entry in
// memory and is only logged.
func (t *Table) Insert(ctx context.Context, trigger, content, description string) bool {
	if err := t.Validate(trigger); err != nil {
		t.logger.Debug("snippet rejected", "trigger", trigger, "error", err)
		return false
	}

	s := core.Snippet{
		Trigger:     trigger,
		Expansion:   content,
		Description: description,
		Origin:      core.OriginCustom,
	}
	t.mutate(ctx, func(custom map[string]core.Snippet) {
		custom[trigger] = s
	})
	return true
}

// Remove deletes a custom snippet. Builtins cannot be removed.
func (t *Table) Remove(ctx context.Context, trigger string) bool {
	if _, ok := t.custom[trigger]; !ok {
		return false
	}
	t.mutate(ctx, func(custom map[string]core.Snippet) {
		delete(custom, trigger)
	})
	return true
}

// mutate performs a read-modify-write of the custom table.
func (t *Table) mutate(ctx context.Context, fn func(map[string]core.Snippet)) {
	custom, err := t.load(ctx)
	if err != nil {
		// Unreadable config: start from what we hold in memory.
		custom = make(map[string]core.Snippet, len(t.custom))
		for k, v := range t.custom {
			custom[k] = v
		}
	}
	fn(custom)
	t.custom = custom

	if t.store == nil {
		return
	}
	if err := t.store.Save(ctx, custom); err != nil {
		t.logger.Warn("failed to persist custom snippets", "error", err)
	}
}

// List returns the builtin snippets followed by the custom ones,
// each group sorted by trigger.
func (t *Table) List() []core.Snippet {
	out := make([]core.Snippet, 0, len(t.builtin)+len(t.custom))
	out = append(out, sorted(t.builtin)...)
	out = append(out, sorted(t.custom)...)
	return out
}

// Custom returns the custom snippets sorted by trigger.
func (t *Table) Custom() []core.Snippet {
	return sorted(t.custom)
}

func sorted(m map[string]core.Snippet) []core.Snippet {
	out := make([]core.Snippet, 0, len(m))
	for _, s := range m {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Trigger < out[j].Trigger })
	return out
}

func validTrigger(trigger string) bool {
	if trigger == "" {
		return false
	}
	for _, r := range trigger {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
