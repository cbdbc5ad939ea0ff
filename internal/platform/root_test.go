package platform

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultHome(t *testing.T) {
	t.Run("Honors Environment", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(HomeEnv, dir)

		home, err := DefaultHome()
		require.NoError(t, err)
		assert.Equal(t, dir, home)
	})

	t.Run("Falls Back To Dot Directory", func(t *testing.T) {
		t.Setenv(HomeEnv, "")
		userHome := t.TempDir()
		t.Setenv("HOME", userHome)

		home, err := DefaultHome()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(userHome, ".tusk"), home)
	})
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		config string
		opts   []Option
		check  func(t *testing.T, home string, env Environment)
	}{
		{
			name: "Defaults Under Home",
			check: func(t *testing.T, home string, env Environment) {
				assert.Equal(t, filepath.Join(home, "drafts"), env.Paths.Drafts)
				assert.Equal(t, filepath.Join(home, "cache", "settings.json"), env.Paths.Settings)
				assert.Equal(t, filepath.Join(home, ConfigFileName), env.Paths.Config)
				assert.True(t, env.AutoIndent)
				assert.Equal(t, 10, env.RecentLimit)
				assert.NotNil(t, env.Logger)
				assert.NotNil(t, env.Clock)
			},
		},
		{
			name:   "Config File Fills Gaps",
			config: "drafts_dir: /srv/drafts\nauto_indent: false\nrecent_limit: 3\n",
			check: func(t *testing.T, home string, env Environment) {
				assert.Equal(t, "/srv/drafts", env.Paths.Drafts)
				assert.False(t, env.AutoIndent)
				assert.Equal(t, 3, env.RecentLimit)
			},
		},
		{
			name:   "Options Win Over Config",
			config: "drafts_dir: /srv/drafts\nauto_indent: false\n",
			opts:   []Option{WithDraftsDir("/opt/drafts"), WithAutoIndent(true)},
			check: func(t *testing.T, home string, env Environment) {
				assert.Equal(t, "/opt/drafts", env.Paths.Drafts)
				assert.True(t, env.AutoIndent)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := t.TempDir()
			if tt.config != "" {
				require.NoError(t, os.WriteFile(filepath.Join(home, ConfigFileName), []byte(tt.config), 0644))
			}
			opts := append([]Option{WithHome(home)}, tt.opts...)
			env, err := Resolve(opts...)
			require.NoError(t, err)
			tt.check(t, home, env)
		})
	}
}

func TestResolve_MalformedConfig(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, ConfigFileName), []byte("drafts_dir: [unclosed"), 0644))

	var logs bytes.Buffer
	env, err := Resolve(WithHome(home), WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "drafts"), env.Paths.Drafts)
	assert.Contains(t, logs.String(), "ignoring unreadable config")

	_, err = LoadConfig(filepath.Join(home, ConfigFileName))
	assert.Error(t, err)
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}
