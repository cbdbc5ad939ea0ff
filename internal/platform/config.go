package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is looked up in the home directory.
const ConfigFileName = "config.yaml"

// Config is the on-disk configuration. Every field is optional and
// explicit options take precedence over it.
type Config struct {
	DraftsDir    string `yaml:"drafts_dir,omitempty"`
	SettingsPath string `yaml:"settings_path,omitempty"`
	SnippetsPath string `yaml:"snippets_path,omitempty"`
	AutoIndent   *bool  `yaml:"auto_indent,omitempty"`
	RecentLimit  int    `yaml:"recent_limit,omitempty"`
	HistoryLimit int    `yaml:"history_limit,omitempty"`
}

// LoadConfig reads a YAML config file. A missing file yields a zero Config.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// apply fills the options the caller left unset.
func (c Config) apply(o *options) {
	if o.draftsDir == "" {
		o.draftsDir = c.DraftsDir
	}
	if o.settingsPath == "" {
		o.settingsPath = c.SettingsPath
	}
	if o.snippetsPath == "" {
		o.snippetsPath = c.SnippetsPath
	}
	if o.autoIndent == nil && c.AutoIndent != nil {
		enabled := *c.AutoIndent
		o.autoIndent = &enabled
	}
	if o.recentLimit == 0 {
		o.recentLimit = c.RecentLimit
	}
	if o.historyLimit == 0 {
		o.historyLimit = c.HistoryLimit
	}
}
