// Package session binds one document to the editing-assistance engine and
// the persistence layer. It is the surface a terminal UI drives: keystrokes
// and line commands go in, updated text, cursor and save results come out.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aretw0/tusk/pkg/assist"
	"github.com/aretw0/tusk/pkg/core"
)

// DefaultHistoryLimit bounds the undo stack.
const DefaultHistoryLimit = 200

// Config wires a session to its collaborators.
type Config struct {
	Documents    core.DocumentStore // required
	Settings     core.SettingsStore // optional; nil keeps settings in memory
	Router       *assist.Router     // required
	Logger       *slog.Logger
	RecentLimit  int
	HistoryLimit int
	// SkipRecent opens without touching the recent files list.
	SkipRecent bool
}

type snapshot struct {
	state   core.EditState
	pending string
}

// Session is one open document. Like the router it serves a single UI
// event loop and is not safe for concurrent use.
type Session struct {
	doc       core.Document
	cursor    core.Cursor
	settings  core.Settings
	lastSaved time.Time

	docs   core.DocumentStore
	store  core.SettingsStore
	router *assist.Router
	logger *slog.Logger

	undo         []snapshot
	redo         []snapshot
	recentLimit  int
	historyLimit int
	warnings     []string
}

// Open loads the document content and its settings. A document that
// cannot be read opens empty with a warning rather than failing.
func Open(ctx context.Context, cfg Config) (*Session, error) {
	if cfg.Documents == nil {
		return nil, errors.New("session needs a document store")
	}
	if cfg.Router == nil {
		return nil, errors.New("session needs a key router")
	}

	s := &Session{
		docs:         cfg.Documents,
		store:        cfg.Settings,
		router:       cfg.Router,
		logger:       cfg.Logger,
		recentLimit:  cfg.RecentLimit,
		historyLimit: cfg.HistoryLimit,
		settings:     core.DefaultSettings(),
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.recentLimit < 1 {
		s.recentLimit = core.DefaultRecentLimit
	}
	if s.historyLimit < 1 {
		s.historyLimit = DefaultHistoryLimit
	}

	text, err := s.docs.LoadLastSave(ctx)
	if err != nil {
		s.warn("failed to load document, starting empty", err)
		text = ""
	}
	s.doc = core.Document{Text: text, Path: s.docs.Path()}

	if s.store != nil {
		s.settings = s.store.Load(ctx, s.doc.Path)
		if !cfg.SkipRecent {
			if _, err := s.store.AddRecent(ctx, s.doc.Path, s.recentLimit); err != nil {
				s.warn("failed to record recent file", err)
			}
		}
	}
	s.cursor = assist.NewBuffer(core.EditState{Text: text, Cursor: s.settings.CursorLocation}).State().Cursor

	s.logger.Info("session opened", "path", s.doc.Path, "bytes", len(text))
	return s, nil
}

func (s *Session) warn(msg string, err error) {
	s.logger.Warn(msg, "path", s.docs.Path(), "error", err)
	s.warnings = append(s.warnings, fmt.Sprintf("%s: %v", msg, err))
}

// Warnings returns the non-fatal problems met so far.
func (s *Session) Warnings() []string {
	return append([]string(nil), s.warnings...)
}

// Document returns a copy of the document.
func (s *Session) Document() core.Document {
	doc := s.doc
	doc.Path = s.docs.Path()
	return doc
}

// Text returns the buffer content.
func (s *Session) Text() string {
	return s.doc.Text
}

// Cursor returns the cursor position.
func (s *Session) Cursor() core.Cursor {
	return s.cursor
}

// EditState returns the text and cursor.
func (s *Session) EditState() core.EditState {
	return core.EditState{Text: s.doc.Text, Cursor: s.cursor}
}

// SetCursor moves the cursor, clamped to the buffer.
func (s *Session) SetCursor(c core.Cursor) {
	s.cursor = assist.NewBuffer(core.EditState{Text: s.doc.Text, Cursor: c}).State().Cursor
}

// HandleKey routes one keystroke and autosaves when the text changed.
func (s *Session) HandleKey(ctx context.Context, k core.Key) core.Outcome {
	before := s.snapshot()
	out := s.router.Handle(s.EditState(), k)
	if out.Text != s.doc.Text {
		s.pushUndo(before)
	}
	s.apply(ctx, out.EditState)
	return out
}

// Type feeds each rune of text as a keystroke; '\n' and '\t' become Enter
// and Tab.
func (s *Session) Type(ctx context.Context, text string) core.Outcome {
	var out core.Outcome
	for _, r := range text {
		switch r {
		case '\n':
			out = s.HandleKey(ctx, core.EnterKey)
		case '\t':
			out = s.HandleKey(ctx, core.TabKey)
		default:
			out = s.HandleKey(ctx, core.CharKey(r))
		}
	}
	return out
}

// DuplicateLine copies the cursor line below itself.
func (s *Session) DuplicateLine(ctx context.Context) core.EditState {
	return s.edit(ctx, assist.DuplicateLine)
}

// MoveLineUp swaps the cursor line with the one above.
func (s *Session) MoveLineUp(ctx context.Context) core.EditState {
	return s.edit(ctx, func(st core.EditState) core.EditState { return assist.MoveLine(st, -1) })
}

// MoveLineDown swaps the cursor line with the one below.
func (s *Session) MoveLineDown(ctx context.Context) core.EditState {
	return s.edit(ctx, func(st core.EditState) core.EditState { return assist.MoveLine(st, 1) })
}

// DeleteLine removes the cursor line.
func (s *Session) DeleteLine(ctx context.Context) core.EditState {
	return s.edit(ctx, assist.DeleteLine)
}

// ToggleAutoIndent flips auto-indent and returns the new state.
func (s *Session) ToggleAutoIndent() bool {
	return s.router.ToggleAutoIndent()
}

func (s *Session) edit(ctx context.Context, fn func(core.EditState) core.EditState) core.EditState {
	before := s.snapshot()
	st := fn(s.EditState())
	if st.Text != s.doc.Text {
		s.pushUndo(before)
	}
	s.apply(ctx, st)
	return s.EditState()
}

func (s *Session) snapshot() snapshot {
	return snapshot{state: s.EditState(), pending: s.router.Pending()}
}

func (s *Session) pushUndo(snap snapshot) {
	s.undo = append(s.undo, snap)
	if len(s.undo) > s.historyLimit {
		s.undo = s.undo[len(s.undo)-s.historyLimit:]
	}
	s.redo = nil
}

// Undo restores the state before the last text change, including the
// pending snippet trigger. It reports false when there is nothing to undo.
func (s *Session) Undo(ctx context.Context) bool {
	if len(s.undo) == 0 {
		return false
	}
	snap := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, s.snapshot())
	s.restore(ctx, snap)
	return true
}

// Redo reapplies the last undone change.
func (s *Session) Redo(ctx context.Context) bool {
	if len(s.redo) == 0 {
		return false
	}
	snap := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, s.snapshot())
	s.restore(ctx, snap)
	return true
}

func (s *Session) restore(ctx context.Context, snap snapshot) {
	s.router.SetPending(snap.pending)
	s.apply(ctx, snap.state)
}

// apply installs st and autosaves when the text changed.
func (s *Session) apply(ctx context.Context, st core.EditState) {
	changed := st.Text != s.doc.Text
	s.doc.Text = st.Text
	s.cursor = st.Cursor
	if changed {
		s.doc.Dirty = true
		s.autosave(ctx)
	}
}

func (s *Session) autosave(ctx context.Context) core.SaveResult {
	prev := s.doc.LastSave.State()
	res := s.docs.AutoSave(ctx, s.doc.Text)
	s.record(res)
	switch {
	case !res.Success && prev != "error":
		s.logger.Warn("autosave failed, editing continues in memory", "path", s.docs.Path(), "error", res.Error)
	case res.Success && prev == "error":
		s.logger.Info("autosave restored", "path", s.docs.Path())
	}
	return res
}

func (s *Session) record(res core.SaveResult) {
	s.doc.LastSave = res
	if res.Success {
		s.doc.Dirty = false
		s.lastSaved = res.Timestamp
	}
}

// Save writes the buffer to the current path.
func (s *Session) Save(ctx context.Context) core.SaveResult {
	return s.autosave(ctx)
}

// SaveAs writes the buffer to path and makes it the document's target.
// On failure the document stays bound to its previous path.
func (s *Session) SaveAs(ctx context.Context, path string) core.SaveResult {
	res := s.docs.SaveAs(ctx, path, s.doc.Text)
	s.record(res)
	if !res.Success {
		s.logger.Warn("save as failed", "path", path, "error", res.Error)
		return res
	}

	s.doc.Path = s.docs.Path()
	s.logger.Info("saved as", "path", s.doc.Path)
	if s.store != nil {
		if _, err := s.store.AddRecent(ctx, s.doc.Path, s.recentLimit); err != nil {
			s.warn("failed to record recent file", err)
		}
	}
	return res
}

// Settings returns the document's settings.
func (s *Session) Settings() core.Settings {
	return s.settings
}

// UpdateSettings applies fn to the settings and clamps the result.
func (s *Session) UpdateSettings(fn func(*core.Settings)) core.Settings {
	fn(&s.settings)
	s.settings = s.settings.Normalize()
	return s.settings
}

// Stats returns the word and character counts of the buffer.
func (s *Session) Stats() (words, chars int) {
	return len(strings.Fields(s.doc.Text)), utf8.RuneCountInString(s.doc.Text)
}

// Status renders the one-line summary shown under the editor.
func (s *Session) Status() string {
	words, chars := s.Stats()
	last := "never"
	if !s.lastSaved.IsZero() {
		last = s.lastSaved.Format("15:04:05")
	}
	indent := "on"
	if !s.router.AutoIndent() {
		indent = "off"
	}
	return fmt.Sprintf("--last-saved %s-- --save %s-- --words %d-- --chars %d-- --theme %s-- --auto-indent %s-- %s",
		last, s.doc.LastSave.State(), words, chars, s.settings.Theme, indent, s.docs.Path())
}

// Close persists the settings, including the cursor, for the document.
// The error is informational; the document itself is already on disk.
func (s *Session) Close(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	s.settings.CursorLocation = s.cursor
	if err := s.store.Save(ctx, s.docs.Path(), s.settings); err != nil {
		s.warn("failed to save settings", err)
		return fmt.Errorf("failed to save settings: %w", err)
	}
	s.logger.Debug("session closed", "path", s.docs.Path())
	return nil
}
