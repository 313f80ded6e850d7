// Package birthday holds the unified birthday registry and the fusion steps
// that build it from editorial, best-of, artist-page, and scraped sources.
package birthday

import (
	"fmt"

	"github.com/toddlburns/yt-tracker/internal/record"
)

// Birthday is an immutable birth-date record. The date is fixed at
// construction; only empty link fields can be filled later through Apply.
type Birthday struct {
	birthYear     int
	month         int
	day           int
	articleURL    string
	artistPageURL string
	bandName      string
	memberName    string
}

// New creates a solo birthday. A year of zero means the year is unknown.
func New(year, month, day int) Birthday {
	return Birthday{birthYear: year, month: month, day: day}
}

// NewMember creates a birthday for one member of a group.
func NewMember(group, member string, year, month, day int) Birthday {
	return Birthday{birthYear: year, month: month, day: day, bandName: group, memberName: member}
}

// BirthYear returns the birth year, if known.
func (b Birthday) BirthYear() (int, bool) { return b.birthYear, b.birthYear > 0 }

// Month returns the birth month.
func (b Birthday) Month() int { return b.month }

// Day returns the birth day.
func (b Birthday) Day() int { return b.day }

// ArticleURL returns the attached overview article, if any.
func (b Birthday) ArticleURL() string { return b.articleURL }

// ArtistPageURL returns the attached artist page, if any.
func (b Birthday) ArtistPageURL() string { return b.artistPageURL }

// BandName returns the group for a member birthday.
func (b Birthday) BandName() string { return b.bandName }

// MemberName returns the member for a member birthday.
func (b Birthday) MemberName() string { return b.memberName }

// IsMember reports whether the birthday belongs to a group member.
func (b Birthday) IsMember() bool { return b.bandName != "" }

// Date formats the birth date as YYYY-MM-DD.
func (b Birthday) Date() string {
	return fmt.Sprintf("%04d-%02d-%02d", b.birthYear, b.month, b.day)
}

// Patch is a pending enrichment of a birthday's link fields.
type Patch struct {
	ArticleURL    string
	ArtistPageURL string
}

// Apply returns a copy of b with every empty link field that p supplies
// filled in. Fields that already hold a value are left alone.
func (b Birthday) Apply(p Patch) Birthday {
	if b.articleURL == "" {
		b.articleURL = p.ArticleURL
	}
	if b.artistPageURL == "" {
		b.artistPageURL = p.ArtistPageURL
	}
	return b
}

type birthdayJSON struct {
	BirthYear     int    `json:"birthYear"`
	Month         int    `json:"month"`
	Day           int    `json:"day"`
	BandName      string `json:"bandName,omitempty"`
	MemberName    string `json:"memberName,omitempty"`
	ArticleURL    string `json:"articleUrl,omitempty"`
	ArtistPageURL string `json:"artistPageUrl,omitempty"`
}

// MarshalJSON encodes the birthday in the dataset's object shape.
func (b Birthday) MarshalJSON() ([]byte, error) {
	return record.MarshalPlain(birthdayJSON{
		BirthYear:     b.birthYear,
		Month:         b.month,
		Day:           b.day,
		BandName:      b.bandName,
		MemberName:    b.memberName,
		ArticleURL:    b.articleURL,
		ArtistPageURL: b.artistPageURL,
	})
}

// MemberKey builds the registry key for a group member.
func MemberKey(group, member string) string {
	return group + " — " + member
}
