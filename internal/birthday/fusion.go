package birthday

import (
	"strings"

	"github.com/toddlburns/yt-tracker/internal/artist"
	"github.com/toddlburns/yt-tracker/internal/bestof"
	"github.com/toddlburns/yt-tracker/internal/record"
)

// Fusion runs the ordered enrichment steps over a Book. Each step returns
// the number of entries it created or enriched.
type Fusion struct {
	Book *Book
}

// NewFusion creates a fusion over an empty registry.
func NewFusion() *Fusion {
	return &Fusion{Book: NewBook()}
}

// Seed registers the editorial birthdays. The first row for an artist wins.
func (f *Fusion) Seed(rows []record.BirthdayRow) int {
	n := 0
	for _, r := range rows {
		b := New(r.BirthYear, r.Month, r.Day).Apply(Patch{ArticleURL: r.ArticleURL})
		if f.Book.Add(r.Artist, b) {
			n++
		}
	}
	return n
}

// AttachBestOf gives registered artists without an article their best-of
// article.
func (f *Fusion) AttachBestOf(assoc *bestof.Associations) int {
	n := 0
	for _, name := range assoc.Names() {
		a, _ := assoc.Get(name)
		if f.Book.Enrich(name, Patch{ArticleURL: a.URL}) {
			n++
		}
	}
	return n
}

type overview struct {
	url   string
	score int
}

// BackfillOverviews scans article titles on the marked host for overview
// pieces mentioning a registered artist, and attaches the best-scoring one
// to entries that still lack an article.
func (f *Fusion) BackfillOverviews(titles []bestof.Title, hostMarker string) int {
	keys := f.Book.Keys()
	best := make(map[string]overview)
	for _, t := range titles {
		if t.Link == "" || !strings.Contains(t.Link, hostMarker) {
			continue
		}
		lower := strings.ToLower(t.Name)
		for _, key := range keys {
			if !strings.Contains(lower, strings.ToLower(key)) {
				continue
			}
			score := bestof.ScoreOverview(lower)
			if score == 0 {
				continue
			}
			if cur, ok := best[key]; !ok || score > cur.score {
				best[key] = overview{url: t.Link, score: score}
			}
		}
	}

	n := 0
	for _, key := range keys {
		o, ok := best[key]
		if !ok {
			continue
		}
		if f.Book.Enrich(key, Patch{ArticleURL: o.url}) {
			n++
		}
	}
	return n
}

// AttachArtistPages links registered entries to their artist page, trying
// the exact name first and then the page alias table.
func (f *Fusion) AttachArtistPages(pages *record.ArtistPages) int {
	n := 0
	for _, key := range f.Book.Keys() {
		url, ok := pages.Lookup(key)
		if !ok {
			for _, alias := range artist.PageAliasesFor(key) {
				if url, ok = pages.Lookup(alias); ok {
					break
				}
			}
		}
		if !ok {
			continue
		}
		if f.Book.Enrich(key, Patch{ArtistPageURL: url}) {
			n++
		}
	}
	return n
}

type personDate struct {
	person string
	date   string
}

// MergeScraped folds previously-scraped birthdays into the registry. A
// person and date already present is skipped. Group members get their own
// MemberKey entry; solo artists are only added when not yet registered.
func (f *Fusion) MergeScraped(scraped []record.ScrapedBirthday, assoc *bestof.Associations) int {
	seen := make(map[personDate]struct{})
	for _, key := range f.Book.Keys() {
		b, _ := f.Book.Get(key)
		seen[personDate{strings.ToLower(key), b.Date()}] = struct{}{}
	}

	n := 0
	for _, s := range scraped {
		year, month, day, ok := record.ParseISODate(s.Birthday)
		if !ok {
			continue
		}
		person := s.MemberName
		if person == "" {
			person = s.ArtistName
		}
		pd := personDate{strings.ToLower(person), New(year, month, day).Date()}
		if _, dup := seen[pd]; dup {
			continue
		}
		seen[pd] = struct{}{}

		var key string
		created := false
		if s.MemberName != "" && s.MemberName != s.ArtistName {
			key = MemberKey(s.ArtistName, s.MemberName)
			created = f.Book.Add(key, NewMember(s.ArtistName, s.MemberName, year, month, day))
		} else {
			key = s.ArtistName
			if !f.Book.Add(key, New(year, month, day)) {
				continue
			}
			created = true
		}

		p := Patch{}
		if strings.HasPrefix(s.ArtistPageURL, "http") {
			p.ArtistPageURL = s.ArtistPageURL
		}
		if a, ok := assoc.Get(s.ArtistName); ok {
			p.ArticleURL = a.URL
		}
		enriched := f.Book.Enrich(key, p)
		if created || enriched {
			n++
		}
	}
	return n
}
