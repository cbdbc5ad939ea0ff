package snippets_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/tusk/pkg/adapters/fs"
	"github.com/aretw0/tusk/pkg/core"
	"github.com/aretw0/tusk/pkg/snippets"
)

func newTable(t *testing.T) (*snippets.Table, *fs.SnippetStore) {
	t.Helper()
	store := fs.NewSnippetStore(filepath.Join(t.TempDir(), "snippets.json"))
	return snippets.New(context.Background(), store, nil), store
}

func TestTable_Builtins(t *testing.T) {
	table := snippets.New(context.Background(), nil, nil)

	got, ok := table.Expand("bold")
	require.True(t, ok)
	assert.Equal(t, "****", got)

	got, ok = table.Expand("codeblock")
	require.True(t, ok)
	assert.Equal(t, "```\n\n```", got)

	_, ok = table.Expand("nope")
	assert.False(t, ok)
	assert.Len(t, table.List(), len(snippets.Builtins()))
}

func TestTable_InsertRejectsBuiltin(t *testing.T) {
	ctx := context.Background()
	table, store := newTable(t)

	assert.False(t, table.Insert(ctx, "bold", "<b></b>", ""))
	assert.Empty(t, table.Custom())

	got, _ := table.Expand("bold")
	assert.Equal(t, "****", got)

	_, err := os.Stat(store.Path)
	assert.True(t, os.IsNotExist(err), "nothing should be written")
}

func TestTable_InsertPersists(t *testing.T) {
	ctx := context.Background()
	table, store := newTable(t)

	require.True(t, table.Insert(ctx, "sig", "-- me", "signature"))

	reloaded := snippets.New(ctx, store, nil)
	s, ok := reloaded.Get("sig")
	require.True(t, ok)
	assert.Equal(t, "-- me", s.Expansion)
	assert.Equal(t, "signature", s.Description)
	assert.Equal(t, core.OriginCustom, s.Origin)
}

func TestTable_Remove(t *testing.T) {
	ctx := context.Background()
	table, store := newTable(t)
	require.True(t, table.Insert(ctx, "sig", "-- me", ""))

	assert.False(t, table.Remove(ctx, "bold"))
	assert.False(t, table.Remove(ctx, "missing"))
	assert.True(t, table.Remove(ctx, "sig"))

	_, ok := snippets.New(ctx, store, nil).Get("sig")
	assert.False(t, ok)
	assert.True(t, table.IsBuiltin("bold"))
}

func TestTable_LoadDropsShadowedBuiltins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snippets.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"bold": {"content": "<b></b>"},
		"sig": {"content": "-- me"}
	}`), 0644))

	table := snippets.New(context.Background(), fs.NewSnippetStore(path), nil)

	got, _ := table.Expand("bold")
	assert.Equal(t, "****", got)
	require.Len(t, table.Custom(), 1)
	assert.Equal(t, "sig", table.Custom()[0].Trigger)
}

func TestTable_MalformedFileUsesBuiltinsOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snippets.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))

	table := snippets.New(context.Background(), fs.NewSnippetStore(path), nil)
	assert.Empty(t, table.Custom())

	_, ok := table.Expand("h1")
	assert.True(t, ok)
}

func TestTable_List(t *testing.T) {
	ctx := context.Background()
	table, _ := newTable(t)
	require.True(t, table.Insert(ctx, "zz", "Z", ""))
	require.True(t, table.Insert(ctx, "aa", "A", ""))

	list := table.List()
	n := len(snippets.Builtins())
	require.Len(t, list, n+2)

	for i := 1; i < n; i++ {
		assert.Less(t, list[i-1].Trigger, list[i].Trigger)
		assert.Equal(t, core.OriginBuiltin, list[i].Origin)
	}
	assert.Equal(t, "aa", list[n].Trigger)
	assert.Equal(t, "zz", list[n+1].Trigger)
}

func TestTable_Validate(t *testing.T) {
	table := snippets.New(context.Background(), nil, nil)

	tests := []struct {
		trigger string
		want    error
	}{
		{"sig", nil},
		{"note2", nil},
		{"", core.ErrInvalidTrigger},
		{"my-snip", core.ErrInvalidTrigger},
		{"with space", core.ErrInvalidTrigger},
		{"link", core.ErrBuiltinTrigger},
	}
	for _, tt := range tests {
		t.Run(tt.trigger, func(t *testing.T) {
			err := table.Validate(tt.trigger)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTable_Reload(t *testing.T) {
	ctx := context.Background()
	table, store := newTable(t)
	assert.Empty(t, table.Custom())

	require.NoError(t, store.Save(ctx, map[string]core.Snippet{
		"sig": {Trigger: "sig", Expansion: "-- me"},
	}))
	_, ok := table.Get("sig")
	assert.False(t, ok)

	table.Reload(ctx)
	got, ok := table.Expand("sig")
	require.True(t, ok)
	assert.Equal(t, "-- me", got)
}
