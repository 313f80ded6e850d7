package artist

import "strings"

// Entry is a single roster artist or group.
type Entry struct {
	Name string `json:"name"`
	// Short marks names that are also common words ("Heart", "Kiss") and need
	// boundary-sensitive matching.
	Short bool `json:"short,omitempty"`
}

// Roster is an immutable, ordered snapshot of the artists the hub recognizes.
// Order matters: loose matching returns the first entry that matches.
type Roster struct {
	entries []Entry
	index   map[string]int
}

// NewRoster builds a roster from entries. Later duplicates of a name are ignored.
func NewRoster(entries []Entry) *Roster {
	r := &Roster{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		if _, ok := r.index[e.Name]; ok {
			continue
		}
		r.index[e.Name] = len(r.entries)
		r.entries = append(r.entries, e)
	}
	return r
}

// Extend returns a new roster with the unknown names appended in order.
// Appended single-word names of five characters or fewer are marked short.
func (r *Roster) Extend(names []string) *Roster {
	entries := make([]Entry, len(r.entries), len(r.entries)+len(names))
	copy(entries, r.entries)
	for _, name := range names {
		if r.Contains(name) {
			continue
		}
		entries = append(entries, Entry{Name: name, Short: IsShortName(name)})
	}
	return NewRoster(entries)
}

// Contains reports whether name is an exact roster name.
func (r *Roster) Contains(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Get returns the entry for an exact roster name.
func (r *Roster) Get(name string) (Entry, bool) {
	i, ok := r.index[name]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// Names returns the roster names in order.
func (r *Roster) Names() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Name
	}
	return out
}

// Len returns the number of roster entries.
func (r *Roster) Len() int { return len(r.entries) }

// IsShortName reports whether a discovered name should get boundary-sensitive
// matching: a single word of at most five characters.
func IsShortName(name string) bool {
	return len(strings.Fields(name)) == 1 && len([]rune(name)) <= 5
}
