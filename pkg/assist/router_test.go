package assist_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/tusk/pkg/assist"
	"github.com/aretw0/tusk/pkg/core"
	"github.com/aretw0/tusk/pkg/snippets"
)

func at(text string, row, col int) core.EditState {
	return core.EditState{Text: text, Cursor: core.Cursor{Row: row, Col: col}}
}

func newRouter(opts ...assist.Option) *assist.Router {
	return assist.NewRouter(snippets.New(context.Background(), nil, nil), opts...)
}

// feed types s one rune at a time; '\n' is Enter and '\t' is Tab.
func feed(r *assist.Router, st core.EditState, s string) (core.EditState, core.Outcome) {
	var out core.Outcome
	for _, ch := range s {
		k := core.CharKey(ch)
		switch ch {
		case '\n':
			k = core.EnterKey
		case '\t':
			k = core.TabKey
		}
		out = r.Handle(st, k)
		st = out.EditState
	}
	return st, out
}

func TestAutoPair(t *testing.T) {
	tests := []struct {
		name   string
		start  core.EditState
		typed  string
		want   core.EditState
		action core.Action
	}{
		{"paren on empty line", at("", 0, 0), "(", at("()", 0, 1), core.ActionAutoPair},
		{"all brackets", at("", 0, 0), "{[<", at("{[<>]}", 0, 3), core.ActionAutoPair},
		{"steps over closer", at("", 0, 0), "(x)", at("(x)", 0, 3), core.ActionAutoPair},
		{"double quote pair", at("", 0, 0), `"`, at(`""`, 0, 1), core.ActionAutoPair},
		{"steps over quote", at("", 0, 0), `"a"`, at(`"a"`, 0, 3), core.ActionAutoPair},
		{"apostrophe in a word", at("don", 0, 3), "'", at("don'", 0, 4), core.ActionInsert},
		{"underscore in a word", at("snake", 0, 5), "_", at("snake_", 0, 6), core.ActionInsert},
		{"emphasis pair", at("", 0, 0), "*", at("**", 0, 1), core.ActionAutoPair},
		{"doubled emphasis becomes strong", at("", 0, 0), "**", at("****", 0, 2), core.ActionAutoPair},
		{"doubled tilde", at("", 0, 0), "~~", at("~~~~", 0, 2), core.ActionAutoPair},
		{"steps over emphasis closer", at("", 0, 0), "*b*", at("*b*", 0, 3), core.ActionAutoPair},
		{"emphasis in code block is plain", at("```\ncode ", 1, 5), "*", at("```\ncode *", 1, 6), core.ActionInsert},
		{"emphasis on an opening fence line is plain", at("```", 0, 3), "~", at("```~", 0, 4), core.ActionInsert},
		{"emphasis after a closing fence pairs", at("```\nx\n```", 2, 3), "*", at("```\nx\n```**", 2, 4), core.ActionAutoPair},
		{"brackets still pair in code", at("```\n", 1, 0), "(", at("```\n()", 1, 1), core.ActionAutoPair},
		{"three backticks open a fence", at("", 0, 0), "```", at("```\n\n```", 1, 0), core.ActionAutoPair},
		{"indented fence", at("  ", 0, 2), "```", at("  ```\n  \n  ```", 1, 2), core.ActionAutoPair},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, out := feed(newRouter(), tt.start, tt.typed)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.action, out.Action)
			assert.True(t, out.Handled)
		})
	}
}

func TestAutoIndent(t *testing.T) {
	tests := []struct {
		name  string
		start core.EditState
		want  core.EditState
	}{
		{"checkbox continues", at("- [ ] buy milk", 0, 14), at("- [ ] buy milk\n- [ ] ", 1, 6)},
		{"checked box continues unchecked", at("- [x] done", 0, 10), at("- [x] done\n- [ ] ", 1, 6)},
		{"empty checkbox ends list", at("- [ ] ", 0, 6), at("\n", 1, 0)},
		{"bullet", at("- item", 0, 6), at("- item\n- ", 1, 2)},
		{"star bullet", at("* item", 0, 6), at("* item\n* ", 1, 2)},
		{"nested bullet keeps indent", at("  - sub", 0, 7), at("  - sub\n  - ", 1, 4)},
		{"empty bullet ends list", at("- ", 0, 2), at("\n", 1, 0)},
		{"empty nested bullet drops marker", at("a\n  - ", 1, 4), at("a\n\n", 2, 0)},
		{"empty ordered item ends list", at("1. one\n2. ", 1, 3), at("1. one\n\n", 2, 0)},
		{"ordered increments", at("1. one", 0, 6), at("1. one\n2. ", 1, 3)},
		{"ordered paren style", at("9) nine", 0, 7), at("9) nine\n10) ", 1, 4)},
		{"blockquote", at("> quote", 0, 7), at("> quote\n> ", 1, 2)},
		{"plain indentation", at("    code", 0, 8), at("    code\n    ", 1, 4)},
		{"plain line", at("text", 0, 4), at("text\n", 1, 0)},
		{"fence opens block", at("```go", 0, 5), at("```go\n\n```", 1, 0)},
		{"closing fence", at("```\nx\n```", 2, 3), at("```\nx\n```\n", 3, 0)},
		{"lists inside code are literal", at("```\n- x", 1, 3), at("```\n- x\n", 2, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := newRouter().Handle(tt.start, core.EnterKey)
			assert.Equal(t, tt.want, out.EditState)
			assert.Equal(t, core.ActionAutoIndent, out.Action)
		})
	}

	t.Run("Disabled", func(t *testing.T) {
		r := newRouter(assist.WithAutoIndent(false))
		out := r.Handle(at("- item", 0, 6), core.EnterKey)
		assert.Equal(t, at("- item\n", 1, 0), out.EditState)
		assert.Equal(t, core.ActionInsert, out.Action)

		assert.True(t, r.ToggleAutoIndent())
		out = r.Handle(at("- item", 0, 6), core.EnterKey)
		assert.Equal(t, at("- item\n- ", 1, 2), out.EditState)
	})
}

func TestSnippetExpansion(t *testing.T) {
	tests := []struct {
		name  string
		start core.EditState
		typed string
		want  core.EditState
	}{
		{"bold places cursor inside", at("", 0, 0), "bold\t", at("****", 0, 2)},
		{"italic", at("", 0, 0), "italic\t", at("**", 0, 1)},
		{"link cursor in text part", at("", 0, 0), "link\t", at("[]()", 0, 1)},
		{"image", at("", 0, 0), "img\t", at("![]()", 0, 2)},
		{"heading at end", at("", 0, 0), "h2\t", at("## ", 0, 3)},
		{"todo", at("", 0, 0), "todo\t", at("- [ ] ", 0, 6)},
		{"codeblock interior line", at("", 0, 0), "codeblock\t", at("```\n\n```", 1, 0)},
		{"after other text", at("see ", 0, 4), "code\t", at("see ``", 0, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter()
			got, out := feed(r, tt.start, tt.typed)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, core.ActionSnippet, out.Action)
			assert.Empty(t, r.Pending())
		})
	}

	t.Run("Unknown Trigger Inserts Indent", func(t *testing.T) {
		r := newRouter()
		got, out := feed(r, at("", 0, 0), "xyz\t")
		assert.Equal(t, at("xyz\t", 0, 4), got)
		assert.Equal(t, core.ActionInsert, out.Action)
		assert.Empty(t, r.Pending())
	})

	t.Run("Non Alphanumeric Resets Accumulator", func(t *testing.T) {
		r := newRouter()
		_, _ = feed(r, at("", 0, 0), "bo-ld")
		assert.Equal(t, "ld", r.Pending())
	})

	t.Run("Idempotent From Same State", func(t *testing.T) {
		r := newRouter()
		st := at("bold", 0, 4)

		r.SetPending("bold")
		first := r.Handle(st, core.TabKey)
		r.SetPending("bold")
		second := r.Handle(st, core.TabKey)

		assert.Equal(t, first, second)
	})

	t.Run("Custom Snippet", func(t *testing.T) {
		table := snippets.New(context.Background(), nil, nil)
		require.True(t, table.Insert(context.Background(), "sig", "-- me", ""))
		r := assist.NewRouter(table)

		got, _ := feed(r, at("", 0, 0), "sig\t")
		assert.Equal(t, at("-- me", 0, 5), got)
	})

	t.Run("No Table", func(t *testing.T) {
		r := assist.NewRouter(nil)
		got, _ := feed(r, at("", 0, 0), "bold\t")
		assert.Equal(t, at("bold\t", 0, 5), got)
	})
}

func TestHeading(t *testing.T) {
	tests := []struct {
		name   string
		start  core.EditState
		typed  string
		want   core.EditState
		action core.Action
	}{
		{"line start", at("", 0, 0), "#", at("# ", 0, 2), core.ActionHeading},
		{"deepens", at("", 0, 0), "##", at("## ", 0, 3), core.ActionHeading},
		{"after indentation", at("  ", 0, 2), "#", at("  # ", 0, 4), core.ActionHeading},
		{"mid line", at("issue ", 0, 6), "#", at("issue # ", 0, 8), core.ActionHeading},
		{"inside code block", at("```\n", 1, 0), "#", at("```\n# ", 1, 2), core.ActionHeading},
		{"deepens indented heading", at("  ## ", 0, 5), "#", at("  ### ", 0, 6), core.ActionHeading},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, out := feed(newRouter(), tt.start, tt.typed)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.action, out.Action)
		})
	}
}

func TestBackspace(t *testing.T) {
	tests := []struct {
		name  string
		start core.EditState
		want  core.EditState
	}{
		{"deletes rune", at("ab", 0, 2), at("a", 0, 1)},
		{"deletes empty pair", at("()", 0, 1), at("", 0, 0)},
		{"joins lines", at("a\nb", 1, 0), at("ab", 0, 1)},
		{"start of buffer", at("x", 0, 0), at("x", 0, 0)},
		{"multibyte", at("né", 0, 2), at("n", 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := newRouter().Handle(tt.start, core.BackspaceKey)
			assert.Equal(t, tt.want, out.EditState)
			assert.Equal(t, core.ActionDelete, out.Action)
		})
	}

	t.Run("Shrinks Accumulator", func(t *testing.T) {
		r := newRouter()
		st, _ := feed(r, at("", 0, 0), "boldx")
		st = r.Handle(st, core.BackspaceKey).EditState
		assert.Equal(t, "bold", r.Pending())

		st = r.Handle(st, core.TabKey).EditState
		assert.Equal(t, at("****", 0, 2), st)
	})
}

func TestPassThrough(t *testing.T) {
	r := newRouter()
	got, out := feed(r, at("", 0, 0), "a1 b")
	assert.Equal(t, at("a1 b", 0, 4), got)
	assert.Equal(t, core.ActionInsert, out.Action)
	assert.Equal(t, "b", r.Pending())

	got = r.Handle(at("  x", 0, 3), core.TabKey).EditState
	assert.Equal(t, at("  x  ", 0, 5), got)
}

func TestWithRules(t *testing.T) {
	upper := assist.Rule{
		Action: core.ActionInsert,
		Apply: func(r *assist.Router, b *assist.Buffer, k core.Key) bool {
			if k.Kind != core.KeyChar {
				return false
			}
			b.Insert("X")
			return true
		},
	}
	r := assist.NewRouter(nil, assist.WithRules(upper))

	out := r.Handle(at("", 0, 0), core.CharKey('('))
	assert.Equal(t, at("X", 0, 1), out.EditState)

	out = r.Handle(at("", 0, 0), core.EnterKey)
	assert.False(t, out.Handled)
	assert.Equal(t, core.ActionNone, out.Action)
}
