package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/tusk/pkg/adapters/fs"
)

func TestCreateDraft(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "drafts")
	now := time.Date(2026, 10, 17, 9, 30, 0, 0, time.Local)

	t.Run("Names From Timestamp", func(t *testing.T) {
		path, err := fs.CreateDraft(dir, now)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "draft-20261017-093000.md"), path)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Zero(t, info.Size())
	})

	t.Run("Same Second Never Collides", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 5; i++ {
			path, err := fs.CreateDraft(dir, now)
			require.NoError(t, err)
			assert.False(t, seen[path], "duplicate draft %s", path)
			seen[path] = true
		}
		assert.True(t, seen[filepath.Join(dir, "draft-20261017-093000-1.md")])
	})
}

func TestIsDraftPath(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"draft", filepath.Join(dir, "draft-20260101-000000.md"), true},
		{"suffixed draft", filepath.Join(dir, "draft-20260101-000000-3.md"), true},
		{"other file in drafts", filepath.Join(dir, "notes.md"), false},
		{"outside drafts", filepath.Join(filepath.Dir(dir), "draft-20260101-000000.md"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fs.IsDraftPath(dir, tt.path))
		})
	}
}

func TestListDrafts(t *testing.T) {
	dir := t.TempDir()

	t.Run("Missing Directory", func(t *testing.T) {
		drafts, err := fs.ListDrafts(filepath.Join(dir, "none"))
		require.NoError(t, err)
		assert.Empty(t, drafts)
	})

	t.Run("Newest First", func(t *testing.T) {
		older, err := fs.CreateDraft(dir, time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local))
		require.NoError(t, err)
		newer, err := fs.CreateDraft(dir, time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), nil, 0644))

		drafts, err := fs.ListDrafts(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{newer, older}, drafts)
	})
}
