package record

import "strings"

// ArtistPages is the artist-page directory: name to page URL, in source order,
// with case-insensitive lookup.
type ArtistPages struct {
	names []string
	urls  map[string]string
	lower map[string]string
}

// NewArtistPages creates an empty directory.
func NewArtistPages() *ArtistPages {
	return &ArtistPages{
		urls:  make(map[string]string),
		lower: make(map[string]string),
	}
}

// Set records url for name. Later entries for the same name replace earlier
// ones, as a later directory row does.
func (p *ArtistPages) Set(name, url string) {
	if _, ok := p.urls[name]; !ok {
		p.names = append(p.names, name)
	}
	p.urls[name] = url
	p.lower[strings.ToLower(name)] = url
}

// Lookup finds a page URL by case-insensitive name.
func (p *ArtistPages) Lookup(name string) (string, bool) {
	url, ok := p.lower[strings.ToLower(name)]
	return url, ok
}

// Names returns the directory names in source order.
func (p *ArtistPages) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// Len returns the number of directory entries.
func (p *ArtistPages) Len() int { return len(p.names) }

// MarshalJSON encodes the directory as a name to URL object in source order.
func (p *ArtistPages) MarshalJSON() ([]byte, error) {
	return MarshalOrdered(p.names, func(key string) any { return p.urls[key] })
}

// NormalizeArtistPages builds the directory from keyed rows, keeping entries
// whose URL is an http(s) link.
func NormalizeArtistPages(rows []map[string]string) *ArtistPages {
	pages := NewArtistPages()
	for _, row := range rows {
		name := strings.TrimSpace(row[ColArtistName])
		url := strings.TrimSpace(row[ColArtistPage])
		if name == "" || !strings.HasPrefix(url, "http") {
			continue
		}
		pages.Set(name, url)
	}
	return pages
}

// NormalizeScraped splits the scraped-birthday table into rows with a
// birthday and artists that are still missing one.
func NormalizeScraped(rows []map[string]string) ([]ScrapedBirthday, []MissingArtist) {
	var scraped []ScrapedBirthday
	var missing []MissingArtist
	for _, row := range rows {
		name := strings.TrimSpace(row[ColArtistName])
		if name == "" {
			continue
		}
		pageURL := strings.TrimSpace(row[ColArtistPageURL])
		bday := strings.TrimSpace(row[ColBirthday])
		if bday == "" {
			missing = append(missing, MissingArtist{ArtistName: name, ArtistPageURL: pageURL})
			continue
		}
		scraped = append(scraped, ScrapedBirthday{
			ArtistName:    name,
			MemberName:    strings.TrimSpace(row[ColMemberName]),
			ArtistPageURL: pageURL,
			Birthday:      bday,
		})
	}
	return scraped, missing
}

// ScrapedRow renders a scraped birthday in the keyed table shape.
func ScrapedRow(s ScrapedBirthday) map[string]string {
	return map[string]string{
		ColArtistName:    s.ArtistName,
		ColMemberName:    s.MemberName,
		ColArtistPageURL: s.ArtistPageURL,
		ColBirthday:      s.Birthday,
	}
}
