package core

// KeyKind distinguishes printable characters from editing keys.
type KeyKind int

const (
	KeyChar KeyKind = iota
	KeyEnter
	KeyTab
	KeyBackspace
)

// Key is a single keystroke delivered by the UI.
type Key struct {
	Kind KeyKind
	Char rune // set when Kind == KeyChar
}

// CharKey returns the keystroke for a printable character.
func CharKey(r rune) Key {
	return Key{Kind: KeyChar, Char: r}
}

var (
	EnterKey     = Key{Kind: KeyEnter}
	TabKey       = Key{Kind: KeyTab}
	BackspaceKey = Key{Kind: KeyBackspace}
)

func (k Key) String() string {
	switch k.Kind {
	case KeyEnter:
		return "<enter>"
	case KeyTab:
		return "<tab>"
	case KeyBackspace:
		return "<bs>"
	default:
		return string(k.Char)
	}
}

// EditState is the buffer text plus the cursor position.
type EditState struct {
	Text   string
	Cursor Cursor
}

// Action names the editing rule that consumed a keystroke.
type Action string

const (
	ActionNone       Action = "none"
	ActionAutoIndent Action = "auto-indent"
	ActionSnippet    Action = "snippet"
	ActionAutoPair   Action = "auto-pair"
	ActionHeading    Action = "heading"
	ActionInsert     Action = "insert"
	ActionDelete     Action = "delete"
)

// Outcome is what the router reports back for one keystroke.
type Outcome struct {
	EditState
	Action  Action
	Handled bool
}
