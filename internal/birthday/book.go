package birthday

import "github.com/toddlburns/yt-tracker/internal/record"

// Book is the insertion-ordered birthday registry, keyed by artist name or
// by MemberKey for group members.
type Book struct {
	keys    []string
	entries map[string]Birthday
}

// NewBook creates an empty registry.
func NewBook() *Book {
	return &Book{entries: make(map[string]Birthday)}
}

// Add stores b under key. Existing keys are never replaced; Add reports
// whether b was stored.
func (bk *Book) Add(key string, b Birthday) bool {
	if _, ok := bk.entries[key]; ok {
		return false
	}
	bk.keys = append(bk.keys, key)
	bk.entries[key] = b
	return true
}

// Enrich applies p to the entry under key. It reports whether the entry
// changed.
func (bk *Book) Enrich(key string, p Patch) bool {
	b, ok := bk.entries[key]
	if !ok {
		return false
	}
	patched := b.Apply(p)
	if patched == b {
		return false
	}
	bk.entries[key] = patched
	return true
}

// Get returns the entry under key.
func (bk *Book) Get(key string) (Birthday, bool) {
	b, ok := bk.entries[key]
	return b, ok
}

// Has reports whether key is registered.
func (bk *Book) Has(key string) bool {
	_, ok := bk.entries[key]
	return ok
}

// Covers reports whether name has a solo birthday or at least one member
// birthday.
func (bk *Book) Covers(name string) bool {
	if bk.Has(name) {
		return true
	}
	for _, b := range bk.entries {
		if b.bandName == name {
			return true
		}
	}
	return false
}

// Keys returns the registry keys in insertion order.
func (bk *Book) Keys() []string {
	out := make([]string, len(bk.keys))
	copy(out, bk.keys)
	return out
}

// Len returns the number of entries.
func (bk *Book) Len() int { return len(bk.keys) }

// MarshalJSON encodes the registry as an object of key to birthday in
// insertion order.
func (bk *Book) MarshalJSON() ([]byte, error) {
	return record.MarshalOrdered(bk.keys, func(key string) any { return bk.entries[key] })
}
