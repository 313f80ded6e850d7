// Package bestof mines editorial article titles for "best of" style pieces
// and associates each discovered artist with its highest-ranked article.
package bestof

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/toddlburns/yt-tracker/internal/artist"
	"github.com/toddlburns/yt-tracker/internal/record"
)

// DefaultHostMarker is the substring an article link must contain to count.
const DefaultHostMarker = "udiscovermusic.com"

// Title is an editorial article title with its link.
type Title struct {
	Name string
	Link string
}

// Association is the article chosen for an artist and the score it won with.
type Association struct {
	URL   string `json:"url"`
	Score int    `json:"score"`
}

type titlePattern struct {
	re        *regexp.Regexp
	score     int
	lastColon bool
}

// patterns are tried in order; the first match decides the score.
var patterns = []titlePattern{
	{re: regexp.MustCompile(`(?i)^(?:The )?Best (.+?) (?:Songs|Albums|Tracks|Pieces|Performances|Vocal Performances|Hits|Live Albums|Collaborations|Deep Cuts)(?:\s*[:\-]|$)`), score: 80},
	{re: regexp.MustCompile(`(?i)^(.+?) In 20 (?:Songs|Quotes)`), score: 100, lastColon: true},
	{re: regexp.MustCompile(`(?i)^Essential (.+?)(?:\s+(?:Songs|Albums|Tracks|Guide))?\s*[:\-]`), score: 70},
	{re: regexp.MustCompile(`(?i)(?:Things You (?:Never |Didn.t )?Know|Facts) (?:About )?(.+?)(?:\.|$)`), score: 60},
	{re: regexp.MustCompile(`(?i)^(?:The )?Greatest (.+?) (?:Songs|Albums|Hits)`), score: 50},
}

// skipWords mark lists about a genre, theme, or occasion rather than an artist.
var skipWords = []string{
	"jazz", "rock", "pop", "soul", "blues", "country", "metal", "punk",
	"hip-hop", "hip hop", "r&b", "christmas", "halloween", "wedding",
	"workout", "summer", "winter", "spring", "fall", "80s", "90s", "70s", "60s",
	"of all time", "concept", "cover", "movie", "film", "festival",
	"brit", "new wave", "alternative", "indie", "latin", "classical",
	"motown", "electric guitar", "acoustic", "psychedelic", "protest",
	"one-hit", "debut", "romantic", "love", "sad", "happy", "karaoke",
	"breakup", "best of", "soundtrack", "duet", "reggae", "dance",
	"power ballad", "road trip", "driving", "running", "birthday",
	"july", "earth day", "thanksgiving", "hannukah", "biking",
	"homecoming", "graduation", "new jack swing", "glastonbury",
	"grammy", "woodstock", "def jam", "fania", "musart", "ecm",
	"solo piano", "ambient", "biopic", "break-up", "live album",
	"boy band", "girl group", "funk", "grunge", "emo", "opera",
	"k-pop", "disco", "synth", "gospel", "spoken word", "anime",
}

var (
	leadingYear = regexp.MustCompile(`^\d{4}`)
	allDigits   = regexp.MustCompile(`^[\d\s]+$`)
)

const (
	minNameLen = 2
	maxNameLen = 50
)

// Match extracts the artist named by a best-of title and the title's score.
// Titles about genres, themes, years, or with implausible names are rejected.
func Match(title string) (string, int, bool) {
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(title)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if p.lastColon {
			if i := strings.LastIndex(name, ":"); i >= 0 {
				name = strings.TrimSpace(name[i+1:])
			}
		}
		if rejected(name) {
			return "", 0, false
		}
		return name, p.score, true
	}
	return "", 0, false
}

func rejected(name string) bool {
	lower := strings.ToLower(name)
	for _, w := range skipWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	if leadingYear.MatchString(name) || allDigits.MatchString(name) {
		return true
	}
	n := utf8.RuneCountInString(name)
	return n < minNameLen || n > maxNameLen
}

// Discoverer finds best-of associations in editorial titles.
type Discoverer struct {
	HostMarker string
}

// New creates a Discoverer. An empty marker selects DefaultHostMarker.
func New(hostMarker string) *Discoverer {
	if hostMarker == "" {
		hostMarker = DefaultHostMarker
	}
	return &Discoverer{HostMarker: hostMarker}
}

// Articles returns the titles of editorial rows whose feature link points at
// the marked host, in row order.
func (d *Discoverer) Articles(rows []record.Row, cols record.EditorialColumns) []Title {
	var out []Title
	for _, row := range rows {
		link := record.CleanLink(row.Text(cols.FeatureLink))
		if link == "" || !strings.Contains(link, d.HostMarker) {
			continue
		}
		out = append(out, Title{Name: row.Text(cols.Name), Link: link})
	}
	return out
}

// Discover scores every title and keeps, per canonical artist name, the
// article with the highest score. Ties keep the earlier article.
func (d *Discoverer) Discover(titles []Title) *Associations {
	raw := NewAssociations()
	for _, t := range titles {
		if !strings.Contains(t.Link, d.HostMarker) {
			continue
		}
		name, score, ok := Match(t.Name)
		if !ok {
			continue
		}
		raw.Offer(name, Association{URL: t.Link, Score: score})
	}

	out := NewAssociations()
	for _, name := range raw.order {
		out.Offer(artist.CanonicalName(name), raw.byName[name])
	}
	return out
}

var (
	overviewIn20    = regexp.MustCompile(`in 20 (songs|quotes)`)
	overviewBest    = regexp.MustCompile(`best .* songs`)
	overviewCatalog = regexp.MustCompile(`(best|greatest) .*(album|track|hit|classic|vocal|live|performance)`)
)

// ScoreOverview scores a lower-case title as an artist overview article. It
// is looser than Match and returns 0 when the title is not an overview.
func ScoreOverview(lowerTitle string) int {
	switch {
	case overviewIn20.MatchString(lowerTitle):
		return 100
	case overviewBest.MatchString(lowerTitle):
		return 80
	case strings.Contains(lowerTitle, "essential"):
		return 70
	case strings.Contains(lowerTitle, "things you never knew"),
		strings.Contains(lowerTitle, "facts"),
		strings.Contains(lowerTitle, "things you"):
		return 60
	case overviewCatalog.MatchString(lowerTitle):
		return 50
	default:
		return 0
	}
}

// Associations is an insertion-ordered artist to article mapping.
type Associations struct {
	order  []string
	byName map[string]Association
}

// NewAssociations creates an empty mapping.
func NewAssociations() *Associations {
	return &Associations{byName: make(map[string]Association)}
}

// Offer stores assoc for name when name is new or assoc scores strictly higher than
// the current association. It reports whether assoc was stored.
func (a *Associations) Offer(name string, assoc Association) bool {
	cur, ok := a.byName[name]
	if ok && assoc.Score <= cur.Score {
		return false
	}
	if !ok {
		a.order = append(a.order, name)
	}
	a.byName[name] = assoc
	return true
}

// Get returns the association for name.
func (a *Associations) Get(name string) (Association, bool) {
	if a == nil {
		return Association{}, false
	}
	assoc, ok := a.byName[name]
	return assoc, ok
}

// Names returns the artist names in discovery order.
func (a *Associations) Names() []string {
	if a == nil {
		return nil
	}
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// Len returns the number of associated artists.
func (a *Associations) Len() int {
	if a == nil {
		return 0
	}
	return len(a.order)
}

// URLs returns the artist to article URL mapping.
func (a *Associations) URLs() map[string]string {
	out := make(map[string]string, a.Len())
	for _, name := range a.Names() {
		out[name] = a.byName[name].URL
	}
	return out
}

// MarshalJSON encodes the mapping as an object of artist to URL in
// discovery order.
func (a *Associations) MarshalJSON() ([]byte, error) {
	return record.MarshalOrdered(a.Names(), func(key string) any { return a.byName[key].URL })
}
