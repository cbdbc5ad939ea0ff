package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// HomeEnv overrides the state directory.
const HomeEnv = "TUSK_HOME"

// Paths are the resolved locations of everything tusk keeps on disk.
type Paths struct {
	Home     string `json:"home"`
	Config   string `json:"config"`
	Drafts   string `json:"drafts"`
	Settings string `json:"settings"`
	Snippets string `json:"snippets"`
}

// DefaultHome returns $TUSK_HOME, or ~/.tusk when it is unset.
func DefaultHome() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return expandHome(dir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".tusk"), nil
}

// defaultSnippetsPath is <user config dir>/tusk/snippets.json, or a file
// under home when the platform has no config dir.
func defaultSnippetsPath(home string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(home, "snippets.json")
	}
	return filepath.Join(dir, "tusk", "snippets.json")
}

// expandHome resolves a leading ~ and makes the path absolute.
func expandHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}

// resolve merges the config file into o and fills in the default paths.
func resolve(o *options) (Paths, error) {
	var p Paths
	var err error

	p.Home = o.home
	if p.Home == "" {
		if p.Home, err = DefaultHome(); err != nil {
			return p, err
		}
	}
	if p.Home, err = expandHome(p.Home); err != nil {
		return p, err
	}

	p.Config = o.configPath
	if p.Config == "" {
		p.Config = filepath.Join(p.Home, ConfigFileName)
	}
	cfg, err := LoadConfig(p.Config)
	if err != nil {
		if o.logger != nil {
			o.logger.Warn("ignoring unreadable config, using defaults", "path", p.Config, "error", err)
		}
		cfg = Config{}
	}
	cfg.apply(o)

	p.Drafts = o.draftsDir
	if p.Drafts == "" {
		p.Drafts = filepath.Join(p.Home, "drafts")
	}
	p.Settings = o.settingsPath
	if p.Settings == "" {
		p.Settings = filepath.Join(p.Home, "cache", "settings.json")
	}
	p.Snippets = o.snippetsPath
	if p.Snippets == "" {
		p.Snippets = defaultSnippetsPath(p.Home)
	}

	for _, field := range []*string{&p.Drafts, &p.Settings, &p.Snippets} {
		if *field, err = expandHome(*field); err != nil {
			return p, err
		}
	}
	return p, nil
}
