// Package tusk is the composition root of the tusk editor core.
//
// It wires the editing-assistance engine (context-aware auto-pairing,
// list continuation, snippet expansion and line operations) to the
// filesystem persistence layer (atomic autosave, drafts and the
// per-document settings cache) using the hexagonal layout of pkg/core
// and pkg/adapters.
//
// A terminal UI drives a Session: it forwards keystrokes and line
// commands and renders the text, cursor and status line it gets back.
//
// Usage:
//
//	s, err := tusk.Open(ctx, "notes.md",
//		tusk.WithLogger(logger),
//	)
//	if err != nil {
//		return err
//	}
//	defer s.Close(ctx)
//
//	s.Type(ctx, "- first item\n") // "- first item\n- "
package tusk
