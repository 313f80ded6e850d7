package record

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/toddlburns/yt-tracker/internal/artist"
)

// EditorialColumns locates the fields of an editorial-schedule row.
type EditorialColumns struct {
	Name        int
	Occasion    int
	FeatureLink int
	SocialAsset int
	Year        int
	Date        int
}

// DefaultEditorialColumns returns the editorial schedule's column layout.
func DefaultEditorialColumns() EditorialColumns {
	return EditorialColumns{
		Name:        0,
		Occasion:    5,
		FeatureLink: 10,
		SocialAsset: 16,
		Year:        21,
		Date:        23,
	}
}

// VideoColumns locates the fields of a music-video row. A negative index
// means the column is absent.
type VideoColumns struct {
	Artist     int
	Title      int
	ExternalID int
	Views      int
	Date       int
	DateType   int
}

// VideoColumnsFromHeader resolves video columns by header name.
func VideoColumnsFromHeader(header []string) (VideoColumns, error) {
	cols := VideoColumns{Artist: -1, Title: -1, ExternalID: -1, Views: -1, Date: -1, DateType: -1}
	for i, raw := range header {
		h := strings.TrimSpace(raw)
		switch {
		case h == "Artist":
			cols.Artist = i
		case h == "Title":
			cols.Title = i
		case h == "YouTube ID":
			cols.ExternalID = i
		case strings.HasPrefix(h, "Views"):
			cols.Views = i
		case h == "Anniversary Date":
			cols.Date = i
		case h == "Date Type":
			cols.DateType = i
		}
	}
	if cols.Artist < 0 || cols.Date < 0 {
		return cols, fmt.Errorf("video header missing Artist or Anniversary Date column")
	}
	return cols, nil
}

// SocialColumns locates the fields of a social-calendar row.
type SocialColumns struct {
	Name     int
	Store    int
	Channel  int
	LiveLink int
}

// DefaultSocialColumns returns the social calendar's column layout.
func DefaultSocialColumns() SocialColumns {
	return SocialColumns{Name: 0, Store: 1, Channel: 8, LiveLink: 17}
}

// excludedOccasions are non-editorial occasion values (lower case).
var excludedOccasions = map[string]bool{
	"":         true,
	"n/a":      true,
	"news":     true,
	"theme":    true,
	"holiday":  true,
	"other":    true,
	"campaign": true,
}

const (
	occasionBirthday = "birthday"
	headerName       = "Name"
)

var videoTitleSuffix = regexp.MustCompile(`(?i)\s*\((?:Official|Remastered|Audio|Lyric|Music|Video|Visualizer|Live|HD|4K|HQ|Dir:)[^)]*\)`)

// Normalizer classifies source rows into typed records, resolving artists
// against a roster snapshot.
type Normalizer struct {
	resolver *artist.Resolver
}

// NewNormalizer creates a normalizer bound to resolver.
func NewNormalizer(resolver *artist.Resolver) *Normalizer {
	return &Normalizer{resolver: resolver}
}

// EditorialResult holds the records classified from the editorial schedule.
type EditorialResult struct {
	Events    []Event
	Birthdays []BirthdayRow
	Dropped   Dropped
}

// Editorial classifies editorial-schedule rows. Names are matched strictly
// since the schedule writes the artist first.
func (n *Normalizer) Editorial(rows []Row, cols EditorialColumns) EditorialResult {
	res := EditorialResult{Dropped: Dropped{}}
	haveBirthday := make(map[string]bool)

	for _, row := range rows {
		name := row.Text(cols.Name)
		if name == headerName {
			res.Dropped.Add(DropHeader)
			continue
		}
		if name == "" || isBlank(row.Cell(cols.Date)) {
			res.Dropped.Add(DropEmpty)
			continue
		}

		month, day, ok := ParseMonthDay(row.Cell(cols.Date))
		if !ok {
			res.Dropped.Add(DropBadDate)
			continue
		}
		year, hasYear := ParseYear(row.Cell(cols.Year))

		resolved, ok := n.resolver.Resolve(name, artist.MatchStrict)
		if !ok {
			res.Dropped.Add(DropNoArtist)
			continue
		}

		occasion := row.Text(cols.Occasion)
		articleURL := CleanLink(row.Text(cols.FeatureLink))
		socialURL := CleanLink(row.Text(cols.SocialAsset))

		if strings.EqualFold(occasion, occasionBirthday) {
			if haveBirthday[resolved] || !hasYear {
				res.Dropped.Add(DropBirthday)
				continue
			}
			haveBirthday[resolved] = true
			res.Birthdays = append(res.Birthdays, BirthdayRow{
				Artist:     resolved,
				BirthYear:  year,
				Month:      month,
				Day:        day,
				ArticleURL: articleURL,
			})
			continue
		}

		if excludedOccasions[strings.ToLower(occasion)] {
			res.Dropped.Add(DropExcluded)
			continue
		}

		ev := Event{
			RawName:        name,
			Artist:         resolved,
			Occasion:       occasion,
			Month:          month,
			Day:            day,
			ArticleURL:     articleURL,
			SocialAssetURL: socialURL,
		}
		if hasYear {
			ev.OrigYear = &year
		}
		res.Events = append(res.Events, ev)
	}
	return res
}

// Videos classifies music-video rows. The artist column is matched loosely.
func (n *Normalizer) Videos(rows []Row, cols VideoColumns) ([]Video, Dropped) {
	dropped := Dropped{}
	var videos []Video

	for _, row := range rows {
		rawArtist := row.Text(cols.Artist)
		dateStr := row.Text(cols.Date)
		if rawArtist == "" || dateStr == "" {
			dropped.Add(DropEmpty)
			continue
		}

		name, ok := n.resolver.Resolve(rawArtist, artist.MatchLoose)
		if !ok {
			dropped.Add(DropNoArtist)
			continue
		}

		year, month, day, ok := ParseISODate(dateStr)
		if !ok {
			dropped.Add(DropBadDate)
			continue
		}

		videos = append(videos, Video{
			Artist:     name,
			Title:      cleanVideoTitle(row.Text(cols.Title)),
			ExternalID: row.Text(cols.ExternalID),
			Views:      parseViews(row.Text(cols.Views)),
			DateType:   row.Text(cols.DateType),
			OrigYear:   year,
			Month:      month,
			Day:        day,
		})
	}
	return videos, dropped
}

// Social groups social-calendar posts by artist and cleaned title.
func (n *Normalizer) Social(rows []Row, cols SocialColumns) (*SocialGroups, Dropped) {
	dropped := Dropped{}
	groups := NewSocialGroups()

	for _, row := range rows {
		name := row.Text(cols.Name)
		if name == "" || name == headerName {
			dropped.Add(DropHeader)
			continue
		}

		store := row.Text(cols.Store)
		channel := row.Text(cols.Channel)
		liveLink := row.Text(cols.LiveLink)
		if liveLink == "" || liveLink == "None" || liveLink == "Live Social Link" {
			dropped.Add(DropNoLink)
			continue
		}
		if strings.Contains(store, "SOV") || strings.Contains(channel, "SOV") {
			dropped.Add(DropStore)
			continue
		}

		resolved, ok := n.resolver.Resolve(name, artist.MatchLoose)
		if !ok {
			dropped.Add(DropNoArtist)
			continue
		}

		title := CleanSocialTitle(name, resolved)
		if len([]rune(title)) < 2 {
			dropped.Add(DropShortTitle)
			continue
		}

		groups.Add(resolved, title, SocialPost{Channel: channel, LiveLink: liveLink})
	}
	return groups, dropped
}

func cleanVideoTitle(title string) string {
	if _, after, ok := strings.Cut(title, " - "); ok {
		title = after
	}
	return strings.TrimSpace(videoTitleSuffix.ReplaceAllString(title, ""))
}

func parseViews(s string) int64 {
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return 0
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
