package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"

	"github.com/aretw0/tusk/pkg/core"
)

const recentFilesKey = "recent_files"

// SettingsStore keeps per-document settings in a single JSON file keyed by
// absolute document path. The reserved "global" entry holds the recent
// files list. Every mutation is a full read-modify-write of the file; two
// editors writing at once race and the last writer wins.
type SettingsStore struct {
	Path   string // e.g. ~/.tusk/cache/settings.json
	logger *slog.Logger
}

// NewSettingsStore creates a store backed by the file at path.
func NewSettingsStore(path string, logger *slog.Logger) *SettingsStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SettingsStore{Path: path, logger: logger}
}

// readAll loads the whole store. A missing or corrupted file reads as an
// empty store.
func (s *SettingsStore) readAll() map[string]json.RawMessage {
	all := make(map[string]json.RawMessage)

	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return all
	}
	if err != nil {
		s.logger.Warn("failed to read settings, using defaults", "path", s.Path, "error", err)
		return all
	}

	if err := json.Unmarshal(data, &all); err != nil || all == nil {
		s.logger.Warn("settings file corrupted, using defaults", "path", s.Path, "error", err)
		return make(map[string]json.RawMessage)
	}
	return all
}

func (s *SettingsStore) writeAll(all map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return err
	}
	if err := writeJSONFile(s.Path, data); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// Load returns the settings for key. Fields the store lacks keep their
// default values, so older stores stay readable as fields are added.
func (s *SettingsStore) Load(ctx context.Context, key string) core.Settings {
	settings := core.DefaultSettings()
	if ctx.Err() != nil {
		return settings
	}

	raw, ok := s.readAll()[key]
	if !ok || key == core.GlobalKey {
		return settings
	}
	if err := json.Unmarshal(raw, &settings); err != nil {
		s.logger.Warn("invalid settings entry, using defaults", "key", key, "error", err)
		return core.DefaultSettings()
	}
	return settings.Normalize()
}

// Save replaces the entry for key and rewrites the whole store.
func (s *SettingsStore) Save(ctx context.Context, key string, settings core.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == core.GlobalKey {
		return fmt.Errorf("%w: %s", core.ErrReservedKey, key)
	}

	raw, err := json.Marshal(settings.Normalize())
	if err != nil {
		return err
	}
	all := s.readAll()
	all[key] = raw
	return s.writeAll(all)
}

// globalEntry decodes the global entry keeping fields this version does
// not know about.
func (s *SettingsStore) globalEntry(all map[string]json.RawMessage) map[string]json.RawMessage {
	global := make(map[string]json.RawMessage)
	if raw, ok := all[core.GlobalKey]; ok {
		if err := json.Unmarshal(raw, &global); err != nil || global == nil {
			s.logger.Warn("invalid global settings entry, resetting", "error", err)
			global = make(map[string]json.RawMessage)
		}
	}
	return global
}

func (s *SettingsStore) recentFrom(global map[string]json.RawMessage) []string {
	var recent []string
	if raw, ok := global[recentFilesKey]; ok {
		if err := json.Unmarshal(raw, &recent); err != nil {
			s.logger.Warn("invalid recent files list, resetting", "error", err)
			return nil
		}
	}
	return recent
}

// Recent returns the recent files list, most recent first.
func (s *SettingsStore) Recent(ctx context.Context) []string {
	if ctx.Err() != nil {
		return nil
	}
	return s.recentFrom(s.globalEntry(s.readAll()))
}

// AddRecent moves path to the front of the recent files list, truncates
// the list to max entries and persists the store. A max below 1 uses
// core.DefaultRecentLimit.
func (s *SettingsStore) AddRecent(ctx context.Context, path string, max int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if max < 1 {
		max = core.DefaultRecentLimit
	}

	all := s.readAll()
	global := s.globalEntry(all)
	recent := slices.DeleteFunc(s.recentFrom(global), func(p string) bool { return p == path })
	recent = append([]string{path}, recent...)
	if len(recent) > max {
		recent = recent[:max]
	}

	raw, err := json.Marshal(recent)
	if err != nil {
		return nil, err
	}
	global[recentFilesKey] = raw
	if all[core.GlobalKey], err = json.Marshal(global); err != nil {
		return nil, err
	}
	if err := s.writeAll(all); err != nil {
		return recent, err
	}
	return recent, nil
}

// Keys returns the document keys present in the store.
func (s *SettingsStore) Keys(ctx context.Context) []string {
	if ctx.Err() != nil {
		return nil
	}
	keys := make([]string, 0)
	for k := range s.readAll() {
		if k != core.GlobalKey {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

var _ core.SettingsStore = (*SettingsStore)(nil)
