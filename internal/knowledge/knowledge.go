// Package knowledge resolves artist names to birth dates through an external
// knowledge base. A name is classified as a person or a group; groups are
// resolved through their members. Lookup failures never escape the resolver;
// they only change the outcome and the provenance note.
package knowledge

import (
	"context"
	"fmt"
	"time"
)

// Client is the knowledge-base capability the resolver consumes.
type Client interface {
	// Search returns candidate page titles for query, best first.
	Search(ctx context.Context, query string, limit int) ([]string, error)
	// EntityIDForPage returns the structured entity id behind a page.
	EntityIDForPage(ctx context.Context, title string) (string, error)
	// Entity returns the structured entity for id.
	Entity(ctx context.Context, id string) (*Entity, error)
	// PageHTML returns the rendered HTML of a page.
	PageHTML(ctx context.Context, title string) (string, error)
}

// Property and item ids used during classification and date lookup.
const (
	PropInstanceOf = "P31"
	PropBirthDate  = "P569"
	PropHasPart    = "P527"
	PropEndTime    = "P582"

	ItemHuman = "Q5"
)

// groupTypes are the instance-of values that mark a musical group.
var groupTypes = map[string]bool{
	"Q215380":  true, // musical group
	"Q2088357": true, // boy band
	"Q5741069": true, // girl group
	"Q4438121": true, // musical duo
}

// Claim is one statement value: an entity id or a time string, with the ids
// of the qualifier properties attached to it.
type Claim struct {
	Value      string
	Qualifiers []string
}

// HasQualifier reports whether the claim carries a qualifier for prop.
func (c Claim) HasQualifier(prop string) bool {
	for _, q := range c.Qualifiers {
		if q == prop {
			return true
		}
	}
	return false
}

// Entity is a structured knowledge-base entity.
type Entity struct {
	ID        string
	Label     string
	PageTitle string
	Claims    map[string][]Claim
}

// Values returns the claim values for prop in order.
func (e *Entity) Values(prop string) []string {
	claims := e.Claims[prop]
	out := make([]string, 0, len(claims))
	for _, c := range claims {
		out = append(out, c.Value)
	}
	return out
}

func (e *Entity) isA(pred func(string) bool) bool {
	for _, v := range e.Values(PropInstanceOf) {
		if pred(v) {
			return true
		}
	}
	return false
}

// IsHuman reports whether the entity is an instance of human.
func (e *Entity) IsHuman() bool {
	return e.isA(func(v string) bool { return v == ItemHuman })
}

// IsGroup reports whether the entity is an instance of a musical group type.
func (e *Entity) IsGroup() bool {
	return e.isA(func(v string) bool { return groupTypes[v] })
}

// Date is a calendar birth date.
type Date struct {
	Year  int
	Month int
	Day   int
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Outcome classifies a resolution.
type Outcome int

const (
	// OutcomeAbsent means every lookup answered and none produced a date.
	OutcomeAbsent Outcome = iota
	// OutcomeFound means at least one birth date was resolved.
	OutcomeFound
	// OutcomeDegraded means nothing was found and at least one lookup failed.
	OutcomeDegraded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeDegraded:
		return "degraded"
	default:
		return "absent"
	}
}

// MemberBirthday is one resolved person and birth date.
type MemberBirthday struct {
	Member   string
	Birthday Date
}

// Resolution is the result of resolving one name, with a provenance note
// naming the tier that produced it.
type Resolution struct {
	Outcome Outcome
	Members []MemberBirthday
	Note    string
}

// Solo reports whether the resolution is a single birthday for the name
// itself.
func (r Resolution) Solo(name string) bool {
	return len(r.Members) == 1 && r.Members[0].Member == name
}

// Config tunes search breadth and pacing.
type Config struct {
	SearchLimit    int
	CandidateLimit int
	MemberCap      int
	CallDelay      time.Duration
	ArtistDelay    time.Duration
}

// DefaultConfig returns the standard search breadth and pacing.
func DefaultConfig() Config {
	return Config{
		SearchLimit:    5,
		CandidateLimit: 3,
		MemberCap:      3,
		CallDelay:      150 * time.Millisecond,
		ArtistDelay:    400 * time.Millisecond,
	}
}

// Pacer waits between external calls.
type Pacer interface {
	Pause(ctx context.Context, d time.Duration)
}

// TimerPacer sleeps for the requested duration or until ctx is done.
type TimerPacer struct{}

// Pause blocks for d.
func (TimerPacer) Pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
