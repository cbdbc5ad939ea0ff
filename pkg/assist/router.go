// Package assist implements the editing-assistance engine: the keystroke
// router with its markdown-aware rules, the context analyzer and the line
// operations.
package assist

import (
	"log/slog"
	"unicode"

	"github.com/aretw0/tusk/pkg/core"
)

// SnippetLookup resolves a trigger to its expansion template.
type SnippetLookup interface {
	Expand(trigger string) (string, bool)
}

// Rule is one predicate/handler pair of the routing chain. Apply reports
// whether it consumed the keystroke; the first rule to do so wins.
type Rule struct {
	Action core.Action
	Apply  func(r *Router, b *Buffer, k core.Key) bool
}

// DefaultRules returns the routing chain in precedence order.
func DefaultRules() []Rule {
	return []Rule{
		{Action: core.ActionAutoIndent, Apply: autoIndent},
		{Action: core.ActionSnippet, Apply: expandSnippet},
		{Action: core.ActionAutoPair, Apply: autoPair},
		{Action: core.ActionHeading, Apply: heading},
		{Action: core.ActionDelete, Apply: backspace},
		{Action: core.ActionInsert, Apply: passThrough},
	}
}

// Router decides and performs one editing action per keystroke.
// It is not safe for concurrent use; the UI delivers one key at a time.
type Router struct {
	snippets   SnippetLookup
	rules      []Rule
	pending    []rune
	autoIndent bool
	logger     *slog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger used for per-key debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithAutoIndent sets the initial auto-indent state. Defaults to true.
func WithAutoIndent(enabled bool) Option {
	return func(r *Router) {
		r.autoIndent = enabled
	}
}

// WithRules replaces the routing chain.
func WithRules(rules ...Rule) Option {
	return func(r *Router) {
		r.rules = rules
	}
}

// NewRouter creates a router that expands triggers found in snippets.
// snippets may be nil, which disables expansion.
func NewRouter(snippets SnippetLookup, opts ...Option) *Router {
	r := &Router{
		snippets:   snippets,
		rules:      DefaultRules(),
		autoIndent: true,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Handle applies the first matching rule for k to st.
func (r *Router) Handle(st core.EditState, k core.Key) core.Outcome {
	b := NewBuffer(st)
	for _, rule := range r.rules {
		if rule.Apply(r, b, k) {
			r.logger.Debug("key handled", "key", k.String(), "action", rule.Action)
			return core.Outcome{EditState: b.State(), Action: rule.Action, Handled: true}
		}
	}
	return core.Outcome{EditState: b.State(), Action: core.ActionNone}
}

// Pending returns the accumulated trigger characters.
func (r *Router) Pending() string {
	return string(r.pending)
}

// SetPending restores the accumulator, e.g. when undoing an edit.
func (r *Router) SetPending(s string) {
	r.pending = []rune(s)
}

func (r *Router) resetPending() {
	r.pending = r.pending[:0]
}

// AutoIndent reports whether Enter continues lists and indentation.
func (r *Router) AutoIndent() bool {
	return r.autoIndent
}

// ToggleAutoIndent flips auto-indent and returns the new state.
func (r *Router) ToggleAutoIndent() bool {
	r.autoIndent = !r.autoIndent
	r.logger.Debug("auto-indent toggled", "enabled", r.autoIndent)
	return r.autoIndent
}

func isAlnum(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch)
}
