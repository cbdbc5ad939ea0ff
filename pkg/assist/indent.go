package assist

import (
	"regexp"
	"strconv"
	"strings"
)

// DetectIndentStyle looks at the text to determine whether tabs or spaces are
// used for indentation. Returns the indent unit string (e.g., "\t" or "    ").
// Defaults to "\t" if no indentation found.
func DetectIndentStyle(text string) string {
	tabCount := 0
	spaceCount := 0
	minSpaceWidth := 0

	for _, line := range strings.Split(text, "\n") {
		if len(line) == 0 {
			continue
		}
		if line[0] == '\t' {
			tabCount++
		} else if line[0] == ' ' {
			spaceCount++
			w := len(line) - len(strings.TrimLeft(line, " "))
			if w > 0 && (minSpaceWidth == 0 || w < minSpaceWidth) {
				minSpaceWidth = w
			}
		}
	}

	if spaceCount > tabCount && minSpaceWidth > 0 {
		return strings.Repeat(" ", minSpaceWidth)
	}
	return "\t"
}

// leadingWhitespace returns the run of spaces and tabs starting the line.
func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// listPattern recognises one kind of markdown block marker that should be
// repeated on the next line.
type listPattern struct {
	name string
	re   *regexp.Regexp
	// next builds the marker for the following line from the submatches.
	next func(m []string) string
}

// listPatterns are tried in order. Checkboxes come before plain bullets
// since "- [ ] " also starts with a bullet.
var listPatterns = []listPattern{
	{
		name: "checkbox",
		re:   regexp.MustCompile(`^([ \t]*)([-*+]) \[[ xX]\](?:[ \t]+(.*))?$`),
		next: func(m []string) string { return m[2] + " [ ] " },
	},
	{
		name: "unordered",
		re:   regexp.MustCompile(`^([ \t]*)([-*+])(?:[ \t]+(.*))?$`),
		next: func(m []string) string { return m[2] + " " },
	},
	{
		name: "ordered",
		re:   regexp.MustCompile(`^([ \t]*)(\d+)([.)])(?:[ \t]+(.*))?$`),
		next: func(m []string) string {
			n, err := strconv.Atoi(m[2])
			if err != nil {
				return m[2] + m[3] + " "
			}
			return strconv.Itoa(n+1) + m[3] + " "
		},
	},
	{
		name: "blockquote",
		re:   regexp.MustCompile(`^([ \t]*)(>+)[ \t]?(.*)$`),
		next: func(m []string) string { return m[2] + " " },
	},
}

// continuation describes how a line's marker carries over to a new line.
type continuation struct {
	kind      string
	indent    string
	marker    string // marker for the new line, without indent
	markerEnd int    // rune offset where the item content starts
	empty     bool   // the item has no content
}

// matchList finds the first list pattern matching line.
func matchList(line string) (continuation, bool) {
	for _, p := range listPatterns {
		idx := p.re.FindStringSubmatchIndex(line)
		if idx == nil {
			continue
		}
		m := p.re.FindStringSubmatch(line)
		last := len(m) - 1
		contentStart := idx[2*last]
		if contentStart < 0 {
			contentStart = len(line)
		}
		return continuation{
			kind:      p.name,
			indent:    m[1],
			marker:    p.next(m),
			markerEnd: len([]rune(line[:contentStart])),
			empty:     strings.TrimSpace(m[last]) == "",
		}, true
	}
	return continuation{}, false
}
