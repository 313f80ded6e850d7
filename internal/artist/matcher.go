package artist

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// Resolver matches free text against a roster snapshot. Patterns are derived
// once from the snapshot; a grown roster needs a new Resolver.
type Resolver struct {
	patterns []pattern
}

type pattern struct {
	entry  Entry
	folded string
}

// NewResolver compiles match patterns for every entry in the roster.
func NewResolver(roster *Roster) *Resolver {
	r := &Resolver{
		patterns: make([]pattern, 0, roster.Len()),
	}
	for _, e := range roster.entries {
		r.patterns = append(r.patterns, pattern{entry: e, folded: Fold(e.Name)})
	}
	return r
}

// Resolve returns the roster name referenced by text. The boolean is false
// when nothing matches; that is not an error.
func (r *Resolver) Resolve(text string, mode MatchMode) (string, bool) {
	if text == "" {
		return "", false
	}
	if mode == MatchStrict {
		return r.resolveStrict(text)
	}
	return r.resolveLoose(text)
}

// resolveStrict is case-sensitive: strict sources write the roster name first,
// in roster casing.
func (r *Resolver) resolveStrict(text string) (string, bool) {
	bracketed := strings.HasPrefix(text, "[")
	rest, hasRest := "", false
	if bracketed {
		rest, hasRest = afterBracket(text)
	}

	for _, p := range r.patterns {
		name := p.entry.Name
		if strings.HasPrefix(text, name) {
			return name, true
		}
		if !bracketed {
			continue
		}
		if hasRest && strings.HasPrefix(rest, name) {
			return name, true
		}
		if !p.entry.Short && strings.Contains(leadingRunes(text, strictWindow), name) {
			return name, true
		}
	}
	return "", false
}

func (r *Resolver) resolveLoose(text string) (string, bool) {
	folded := Fold(text)
	for _, p := range r.patterns {
		if p.entry.Short {
			if containsBounded(folded, p.folded) {
				return p.entry.Name, true
			}
			continue
		}
		if strings.Contains(folded, p.folded) {
			return p.entry.Name, true
		}
	}
	return "", false
}

// containsBounded reports whether name occurs in text as a standalone token.
func containsBounded(text, name string) bool {
	if name == "" {
		return false
	}
	for from := 0; from < len(text); {
		i := strings.Index(text[from:], name)
		if i < 0 {
			return false
		}
		i += from
		if boundedBefore(text, i) && boundedAfter(text, i+len(name)) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		from = i + size
	}
	return false
}

// boundedBefore rejects a short name whose nearest non-space predecessor is an
// apostrophe, directly ("Cheatin'Heart") or across whitespace ("Cheatin' Heart").
func boundedBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	if strings.ContainsRune(shortOpeners, r) {
		return true
	}
	if !unicode.IsSpace(r) {
		return false
	}
	prev := strings.TrimRightFunc(text[:i], unicode.IsSpace)
	if prev == "" {
		return true
	}
	p, _ := utf8.DecodeLastRuneInString(prev)
	return !strings.ContainsRune(apostrophes, p)
}

func boundedAfter(text string, j int) bool {
	if j >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[j:])
	return unicode.IsSpace(r) || strings.ContainsRune(shortClosers, r)
}

// afterBracket returns the text following a leading "[...]" segment and any
// whitespace after it.
func afterBracket(text string) (string, bool) {
	end := strings.Index(text, "]")
	if end < 0 {
		return "", false
	}
	return strings.TrimLeftFunc(text[end+1:], unicode.IsSpace), true
}

func leadingRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// Fold case-folds s for caseless comparison of names and titles.
func Fold(s string) string {
	return cases.Fold().String(s)
}
