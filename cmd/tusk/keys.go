package main

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/tusk"
	"github.com/aretw0/tusk/pkg/core"
)

// step is one entry of a key script: a keystroke or a named editor command.
type step struct {
	key     core.Key
	command string
}

var namedKeys = map[string]core.Key{
	"enter": core.EnterKey,
	"tab":   core.TabKey,
	"bs":    core.BackspaceKey,
	"lt":    core.CharKey('<'),
}

var commands = map[string]func(context.Context, *tusk.Session){
	"dup":    func(ctx context.Context, s *tusk.Session) { s.DuplicateLine(ctx) },
	"up":     func(ctx context.Context, s *tusk.Session) { s.MoveLineUp(ctx) },
	"down":   func(ctx context.Context, s *tusk.Session) { s.MoveLineDown(ctx) },
	"del":    func(ctx context.Context, s *tusk.Session) { s.DeleteLine(ctx) },
	"undo":   func(ctx context.Context, s *tusk.Session) { s.Undo(ctx) },
	"redo":   func(ctx context.Context, s *tusk.Session) { s.Redo(ctx) },
	"indent": func(ctx context.Context, s *tusk.Session) { s.ToggleAutoIndent() },
	"save":   func(ctx context.Context, s *tusk.Session) { s.Save(ctx) },
}

// parseScript turns a key script into steps. Plain characters are typed,
// a newline is Enter, a tab is Tab, and <name> is a named key or command.
func parseScript(script string) ([]step, error) {
	var steps []step
	rs := []rune(script)
	for i := 0; i < len(rs); i++ {
		switch r := rs[i]; r {
		case '\n':
			steps = append(steps, step{key: core.EnterKey})
		case '\t':
			steps = append(steps, step{key: core.TabKey})
		case '\r': // ignored
		case '<':
			rest := string(rs[i+1:])
			end := strings.IndexRune(rest, '>')
			if end < 0 {
				return nil, fmt.Errorf("unterminated key name at offset %d", i)
			}
			name := rest[:end]
			if k, ok := namedKeys[name]; ok {
				steps = append(steps, step{key: k})
			} else if _, ok := commands[name]; ok {
				steps = append(steps, step{command: name})
			} else {
				return nil, fmt.Errorf("unknown key name <%s>", name)
			}
			i += utf8.RuneCountInString(name) + 1
		default:
			steps = append(steps, step{key: core.CharKey(r)})
		}
	}
	return steps, nil
}

// play feeds steps to the session in order.
func play(ctx context.Context, s *tusk.Session, steps []step) {
	for _, st := range steps {
		if st.command != "" {
			commands[st.command](ctx, s)
			continue
		}
		s.HandleKey(ctx, st.key)
	}
}
