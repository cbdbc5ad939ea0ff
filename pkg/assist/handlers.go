package assist

import (
	"regexp"
	"strings"

	"github.com/aretw0/tusk/pkg/core"
)

// pairs maps each auto-paired opening character to its closer.
var pairs = map[rune]rune{
	'(':  ')',
	'{':  '}',
	'[':  ']',
	'<':  '>',
	'`':  '`',
	'*':  '*',
	'_':  '_',
	'~':  '~',
	'"':  '"',
	'\'': '\'',
}

var closers = map[rune]bool{
	')': true,
	'}': true,
	']': true,
	'>': true,
}

func isEmphasis(ch rune) bool {
	return ch == '*' || ch == '_' || ch == '~'
}

func isQuote(ch rune) bool {
	return ch == '"' || ch == '\''
}

var headingPrefix = regexp.MustCompile(`^[ \t]*#+ $`)

// autoIndent continues list, checkbox and blockquote markers on Enter and
// keeps the indentation of plain lines.
func autoIndent(r *Router, b *Buffer, k core.Key) bool {
	if k.Kind != core.KeyEnter || !r.autoIndent {
		return false
	}
	r.resetPending()

	line := b.Line()
	if isFence(line) {
		fenceNewline(b, line)
		return true
	}

	if !InCodeBlock(b.Text(), b.Row()) {
		if c, ok := matchList(line); ok && b.col >= c.markerEnd {
			if c.empty {
				// An empty item ends the list and drops its marker.
				b.DeleteBefore(b.col)
				b.Insert("\n")
				return true
			}
			b.Insert("\n" + c.indent + c.marker)
			return true
		}
	}

	b.Insert("\n" + leadingWhitespace(b.Before()))
	return true
}

// fenceNewline opens an unterminated fence into a block with the cursor on
// its interior line.
func fenceNewline(b *Buffer, line string) {
	indent := leadingWhitespace(line)
	opening := fenceCount(b.lines, b.row)%2 == 1
	unclosed := fenceCount(b.lines, len(b.lines))%2 == 1
	if opening && unclosed && strings.TrimSpace(b.After()) == "" {
		b.InsertAround("\n"+indent, "\n"+indent+FenceMarker)
		return
	}
	b.Insert("\n" + indent)
}

// expandSnippet replaces the accumulated trigger with its expansion on Tab.
func expandSnippet(r *Router, b *Buffer, k core.Key) bool {
	if k.Kind != core.KeyTab || len(r.pending) == 0 {
		return false
	}
	trigger := r.Pending()
	r.resetPending()

	if r.snippets == nil {
		return false
	}
	exp, ok := r.snippets.Expand(trigger)
	if !ok || !strings.HasSuffix(b.Before(), trigger) {
		return false
	}

	b.DeleteBefore(len([]rune(trigger)))
	left, right := splitExpansion(exp)
	b.InsertAround(left, right)
	return true
}

// splitExpansion returns the parts of a template left and right of where
// the cursor belongs.
func splitExpansion(exp string) (string, string) {
	if i := strings.Index(exp, "\n\n"); i >= 0 {
		return exp[:i+1], exp[i+1:]
	}
	if i := strings.Index(exp, "[]"); i >= 0 {
		return exp[:i+1], exp[i+1:]
	}

	rs := []rune(exp)
	if n := len(rs); n >= 2 && n%2 == 0 && strings.Count(exp, string(rs[0])) == n {
		if _, ok := pairs[rs[0]]; ok {
			return string(rs[:n/2]), string(rs[n/2:])
		}
	}
	return exp, ""
}

// autoPair inserts delimiters in pairs and steps over existing closers.
func autoPair(r *Router, b *Buffer, k core.Key) bool {
	if k.Kind != core.KeyChar {
		return false
	}
	ch := k.Char
	next, hasNext := b.NextRune()

	if closers[ch] && hasNext && next == ch {
		r.resetPending()
		b.MoveRight(1)
		return true
	}

	closer, ok := pairs[ch]
	if !ok {
		return false
	}

	before, after := b.Before(), b.After()

	if ch == '`' && strings.HasSuffix(before, "``") && strings.HasPrefix(after, "``") &&
		strings.TrimSpace(strings.TrimSuffix(before, "``")) == "" {
		r.resetPending()
		b.DeleteAfter(2)
		// The fence being typed closes a block opened above it.
		if fenceCount(b.lines, b.row-1)%2 == 1 {
			b.Insert("`")
			return true
		}
		b.DeleteBefore(2)
		indent := leadingWhitespace(before)
		b.InsertAround(FenceMarker+"\n"+indent, "\n"+indent+FenceMarker)
		return true
	}

	if isEmphasis(ch) && Analyze(b.Text(), b.State().Cursor).InCodeBlock {
		return false
	}

	if (isEmphasis(ch) || ch == '`') && emptyPair(before, after, ch) {
		r.resetPending()
		b.InsertAround(string(ch), string(ch))
		return true
	}

	if (isEmphasis(ch) || ch == '`' || isQuote(ch)) && hasNext && next == ch {
		r.resetPending()
		b.MoveRight(1)
		return true
	}

	if prev, ok := b.PrevRune(); ok && isAlnum(prev) && (ch == '\'' || ch == '_') {
		return false
	}

	r.resetPending()
	b.InsertAround(string(ch), string(closer))
	return true
}

// emptyPair reports whether the cursor sits inside a freshly paired ch|ch
// rather than at the end of delimited text.
func emptyPair(before, after string, ch rune) bool {
	b, a := []rune(before), []rune(after)
	if len(b) == 0 || len(a) == 0 || b[len(b)-1] != ch || a[0] != ch {
		return false
	}
	if len(b) >= 2 {
		if p := b[len(b)-2]; p == ch || isAlnum(p) {
			return false
		}
	}
	if len(a) >= 2 {
		if n := a[1]; n == ch || isAlnum(n) {
			return false
		}
	}
	return true
}

// heading expands '#' into a heading marker, deepening the marker when the
// line so far is one.
func heading(r *Router, b *Buffer, k core.Key) bool {
	if k.Kind != core.KeyChar || k.Char != '#' {
		return false
	}
	if headingPrefix.MatchString(b.Before()) {
		b.DeleteBefore(1)
	}
	b.Insert("# ")
	r.resetPending()
	return true
}

// backspace deletes the rune left of the cursor, both halves of an empty
// pair, or the line break when the cursor is at the start of a line.
func backspace(r *Router, b *Buffer, k core.Key) bool {
	if k.Kind != core.KeyBackspace {
		return false
	}
	if n := len(r.pending); n > 0 {
		r.pending = r.pending[:n-1]
	}

	prev, ok := b.PrevRune()
	if !ok {
		b.JoinPrevious()
		return true
	}
	if next, ok := b.NextRune(); ok && pairs[prev] == next {
		b.DeleteAfter(1)
	}
	b.DeleteBefore(1)
	return true
}

// passThrough inserts the keystroke as typed and feeds the accumulator.
func passThrough(r *Router, b *Buffer, k core.Key) bool {
	switch k.Kind {
	case core.KeyChar:
		if isAlnum(k.Char) {
			r.pending = append(r.pending, k.Char)
		} else {
			r.resetPending()
		}
		b.Insert(string(k.Char))
	case core.KeyEnter:
		r.resetPending()
		b.Insert("\n")
	case core.KeyTab:
		r.resetPending()
		b.Insert(DetectIndentStyle(b.Text()))
	default:
		return false
	}
	return true
}
