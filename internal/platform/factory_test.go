package platform

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/tusk/pkg/core"
)

func testOptions(t *testing.T) (string, []Option) {
	t.Helper()
	home := t.TempDir()
	return home, []Option{
		WithHome(home),
		WithSnippetsPath(filepath.Join(home, "config", "snippets.json")),
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("Named Document", func(t *testing.T) {
		home, opts := testOptions(t)
		doc := filepath.Join(home, "notes", "today.md")

		s, err := Open(ctx, doc, opts...)
		require.NoError(t, err)

		// '#' expands into the heading marker, space included.
		s.Type(ctx, "#Today")
		data, err := os.ReadFile(doc)
		require.NoError(t, err)
		assert.Equal(t, "# Today", string(data))
		require.NoError(t, s.Close(ctx))

		_, err = os.Stat(filepath.Join(home, "cache", "settings.json"))
		assert.NoError(t, err)
	})

	t.Run("Draft When Unnamed", func(t *testing.T) {
		home, opts := testOptions(t)
		stamp := time.Date(2026, 3, 4, 5, 6, 7, 0, time.Local)
		opts = append(opts, WithClock(func() time.Time { return stamp }))

		s, err := Open(ctx, "", opts...)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "drafts", "draft-20260304-050607.md"), s.Document().Path)

		drafts, err := ListDrafts(opts...)
		require.NoError(t, err)
		assert.Equal(t, []string{s.Document().Path}, drafts)
	})

	t.Run("Custom Snippets Reach The Router", func(t *testing.T) {
		home, opts := testOptions(t)
		table, err := OpenSnippets(ctx, opts...)
		require.NoError(t, err)
		require.True(t, table.Insert(ctx, "sig", "-- me", ""))

		s, err := Open(ctx, filepath.Join(home, "a.md"), opts...)
		require.NoError(t, err)
		s.Type(ctx, "sig")
		out := s.HandleKey(ctx, core.TabKey)
		assert.Equal(t, core.ActionSnippet, out.Action)
		assert.Equal(t, "-- me", s.Text())
	})

	t.Run("Auto Indent Option", func(t *testing.T) {
		home, opts := testOptions(t)
		s, err := Open(ctx, filepath.Join(home, "a.md"), append(opts, WithAutoIndent(false))...)
		require.NoError(t, err)
		s.Type(ctx, "- x\n")
		assert.Equal(t, "- x\n", s.Text())
	})

	t.Run("Without Recent", func(t *testing.T) {
		home, opts := testOptions(t)
		first, err := Open(ctx, filepath.Join(home, "a.md"), opts...)
		require.NoError(t, err)

		_, err = Open(ctx, filepath.Join(home, "b.md"), append(opts, WithoutRecent())...)
		require.NoError(t, err)

		store, err := OpenSettings(opts...)
		require.NoError(t, err)
		assert.Equal(t, []string{first.Document().Path}, store.Recent(ctx))
	})
}

func TestOpenSettings(t *testing.T) {
	home, opts := testOptions(t)
	store, err := OpenSettings(opts...)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "cache", "settings.json"), store.Path)
}
