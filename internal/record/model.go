// Package record turns tokenized spreadsheet and CSV rows into typed editorial
// records. Rows that cannot be parsed or resolved are dropped and counted.
package record

import (
	"strings"
	"time"
)

// Row is one source row: positional cells holding nil, string, int, int64,
// float64, or time.Time values.
type Row []any

// Cell returns the value at position i, or nil when the row is shorter.
func (r Row) Cell(i int) any {
	if i < 0 || i >= len(r) {
		return nil
	}
	return r[i]
}

// Text returns the trimmed string form of the cell at position i.
func (r Row) Text(i int) string {
	return strings.TrimSpace(CellString(r.Cell(i)))
}

// Event is a single editorial occurrence for one roster artist on one day.
type Event struct {
	RawName        string `json:"name"`
	Artist         string `json:"artist"`
	Occasion       string `json:"occasion"`
	OrigYear       *int   `json:"origYear"`
	Month          int    `json:"month"`
	Day            int    `json:"day"`
	ArticleURL     string `json:"articleUrl,omitempty"`
	SocialAssetURL string `json:"socialAssetUrl,omitempty"`
	ArtistPageURL  string `json:"artistPageUrl,omitempty"`
}

// Year returns the original year, if known.
func (e Event) Year() (int, bool) {
	if e.OrigYear == nil {
		return 0, false
	}
	return *e.OrigYear, true
}

// Video is one anniversary-tagged music video.
type Video struct {
	Artist     string `json:"artist"`
	Title      string `json:"title"`
	ExternalID string `json:"youtubeId"`
	Views      int64  `json:"views"`
	DateType   string `json:"dateType"`
	OrigYear   int    `json:"origYear"`
	Month      int    `json:"month"`
	Day        int    `json:"day"`
}

// BirthdayRow is a birthday taken from the editorial schedule.
type BirthdayRow struct {
	Artist     string
	BirthYear  int
	Month      int
	Day        int
	ArticleURL string
}

// ScrapedBirthday is one row of the previously-scraped birthday table.
type ScrapedBirthday struct {
	ArtistName    string
	MemberName    string
	ArtistPageURL string
	Birthday      string
}

// MissingArtist is an artist the scrape could not find a birthday for.
type MissingArtist struct {
	ArtistName    string
	ArtistPageURL string
}

// Scraped-table column names, shared by the CSV file and the SQLite store.
const (
	ColArtistName    = "ARTIST NAME"
	ColMemberName    = "MEMBER NAME"
	ColArtistPageURL = "ARTIST PAGE URL"
	ColBirthday      = "BIRTHDAY (YYYY-MM-DD)"
	ColArtistPage    = "ARTIST PAGE"
)

// Dropped counts rows discarded per reason.
type Dropped map[string]int

// Add increments the counter for reason.
func (d Dropped) Add(reason string) { d[reason]++ }

// Total returns the number of dropped rows across all reasons.
func (d Dropped) Total() int {
	n := 0
	for _, v := range d {
		n += v
	}
	return n
}

// Drop reasons.
const (
	DropHeader     = "header"
	DropEmpty      = "empty"
	DropBadDate    = "bad_date"
	DropNoArtist   = "no_artist"
	DropExcluded   = "excluded_occasion"
	DropBirthday   = "birthday_duplicate_or_no_year"
	DropNoLink     = "no_link"
	DropStore      = "excluded_store"
	DropShortTitle = "short_title"
)

func dateOf(t time.Time) (int, int) { return int(t.Month()), t.Day() }
