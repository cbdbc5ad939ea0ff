package assist

import (
	"strings"

	"github.com/aretw0/tusk/pkg/core"
)

// FenceMarker opens and closes a fenced code block.
const FenceMarker = "```"

// Context is the editing context derived from the text around the cursor.
type Context struct {
	InCodeBlock bool // cursor lies inside an unterminated fence
	AtLineStart bool // only whitespace left of the cursor
}

// Analyze derives the context for the cursor position in text.
func Analyze(text string, c core.Cursor) Context {
	b := NewBuffer(core.EditState{Text: text, Cursor: c})
	return Context{
		InCodeBlock: InCodeBlock(text, b.row),
		AtLineStart: strings.TrimSpace(b.Before()) == "",
	}
}

// InCodeBlock reports whether row lies inside an open fenced code block.
// It counts fence lines from the top of the buffer through row; an odd
// count means the last fence seen has not been closed.
func InCodeBlock(text string, row int) bool {
	return fenceCount(strings.Split(text, "\n"), row)%2 == 1
}

func fenceCount(lines []string, through int) int {
	n := 0
	for i, line := range lines {
		if i > through {
			break
		}
		if isFence(line) {
			n++
		}
	}
	return n
}

func isFence(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), FenceMarker)
}
