package artist

// MatchMode selects how a resolver anchors a roster name in text.
type MatchMode string

// Match modes.
const (
	// MatchLoose accepts a roster name anywhere in the text.
	MatchLoose MatchMode = "loose"
	// MatchStrict requires the text to begin with the roster name, optionally
	// after a leading bracketed segment such as "[2024-05-01]".
	MatchStrict MatchMode = "strict"
)

// strictWindow is how far into a bracket-prefixed text an ordinary name may
// appear in strict mode.
const strictWindow = 60

// Characters that may directly precede a short name.
const shortOpeners = "-–—,;:!([\"“"

// Characters that may follow a short name.
const shortClosers = "-–—,;:!?'’\"”)].…"

const apostrophes = "'’‘"
