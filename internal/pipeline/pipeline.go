// Package pipeline wires the editorial sources through resolution,
// normalization, deduplication, chart suppression, best-of discovery and
// birthday fusion into one Dataset.
package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/toddlburns/yt-tracker/internal/artist"
	"github.com/toddlburns/yt-tracker/internal/bestof"
	"github.com/toddlburns/yt-tracker/internal/birthday"
	"github.com/toddlburns/yt-tracker/internal/chart"
	"github.com/toddlburns/yt-tracker/internal/dedupe"
	"github.com/toddlburns/yt-tracker/internal/metrics"
	"github.com/toddlburns/yt-tracker/internal/record"
)

// Source names used in logs and metrics.
const (
	SourceEditorial = "editorial"
	SourceVideos    = "videos"
	SourceSocial    = "social"
)

// Sources holds the tokenized inputs of one run.
type Sources struct {
	Editorial   []record.Row
	VideoHeader []string
	Videos      []record.Row
	Social      []record.Row
	ArtistPages []map[string]string
	Scraped     []map[string]string
}

// FusionStats counts the birthday entries each fusion step created or
// enriched.
type FusionStats struct {
	Seeded    int
	BestOf    int
	Overviews int
	Pages     int
	Scraped   int
}

// Stats summarizes a run.
type Stats struct {
	RosterAdded  int
	Dropped      map[string]record.Dropped
	EventsBefore int
	VideosBefore int
	Chart        chart.Stats
	Fusion       FusionStats
	EventPages   int
}

// Dataset is the unified output of a run.
type Dataset struct {
	Events       []record.Event
	Birthdays    *birthday.Book
	Videos       []record.Video
	SocialPosts  *record.SocialGroups
	BestOf       *bestof.Associations
	ArtistPages  *record.ArtistPages
	StillMissing []record.MissingArtist
	Roster       *artist.Roster
	Stats        Stats
}

// Pipeline runs the extraction over a roster snapshot.
type Pipeline struct {
	Roster     *artist.Roster
	HostMarker string
	Editorial  record.EditorialColumns
	Social     record.SocialColumns
	Logger     *slog.Logger
	Metrics    *metrics.Manager
}

// New creates a pipeline with the default column layouts.
func New(roster *artist.Roster, hostMarker string, logger *slog.Logger, m *metrics.Manager) *Pipeline {
	return &Pipeline{
		Roster:     roster,
		HostMarker: hostMarker,
		Editorial:  record.DefaultEditorialColumns(),
		Social:     record.DefaultSocialColumns(),
		Logger:     logger.With(slog.String("component", "pipeline")),
		Metrics:    m,
	}
}

// Run builds a Dataset from src. It fails only when the video header cannot
// be resolved.
func (p *Pipeline) Run(src Sources) (*Dataset, error) {
	ds := &Dataset{Stats: Stats{Dropped: make(map[string]record.Dropped)}}

	disc := bestof.New(p.HostMarker)
	titles := disc.Articles(src.Editorial, p.Editorial)
	ds.BestOf = disc.Discover(titles)
	ds.Roster = p.Roster.Extend(ds.BestOf.Names())
	ds.Stats.RosterAdded = ds.Roster.Len() - p.Roster.Len()
	p.Logger.Info("discovered best-of articles",
		slog.Int("articles", ds.BestOf.Len()),
		slog.Int("roster_added", ds.Stats.RosterAdded),
		slog.Int("roster_size", ds.Roster.Len()))

	norm := record.NewNormalizer(artist.NewResolver(ds.Roster))

	ed := norm.Editorial(src.Editorial, p.Editorial)
	p.dropped(ds, SourceEditorial, ed.Dropped)
	p.Logger.Info("extracted editorial rows",
		slog.Int("events", len(ed.Events)),
		slog.Int("birthdays", len(ed.Birthdays)),
		slog.Int("dropped", ed.Dropped.Total()))

	var videos []record.Video
	if len(src.Videos) > 0 {
		cols, err := record.VideoColumnsFromHeader(src.VideoHeader)
		if err != nil {
			return nil, fmt.Errorf("resolving video columns: %w", err)
		}
		var dropped record.Dropped
		videos, dropped = norm.Videos(src.Videos, cols)
		p.dropped(ds, SourceVideos, dropped)
	}
	p.Logger.Info("extracted videos", slog.Int("videos", len(videos)))

	ds.Stats.EventsBefore = len(ed.Events)
	ds.Stats.VideosBefore = len(videos)
	events := dedupe.Events(ed.Events)
	ds.Videos = dedupe.Videos(videos)
	p.Logger.Info("deduplicated",
		slog.Int("events", len(events)),
		slog.Int("videos", len(ds.Videos)))

	events, ds.Stats.Chart = chart.Suppress(events, ds.Videos)
	p.Metrics.RecordChart(ds.Stats.Chart.Kept, ds.Stats.Chart.Removed)
	p.Logger.Info("filtered chart events",
		slog.Int("kept", ds.Stats.Chart.Kept),
		slog.Int("removed", ds.Stats.Chart.Removed),
		slog.Int("events", len(events)))

	social, socialDropped := norm.Social(src.Social, p.Social)
	p.dropped(ds, SourceSocial, socialDropped)
	ds.SocialPosts = social
	p.Logger.Info("extracted social posts", slog.Int("groups", social.Len()))

	ds.ArtistPages = record.NormalizeArtistPages(src.ArtistPages)
	scraped, missing := record.NormalizeScraped(src.Scraped)
	ds.StillMissing = missing

	fusion := birthday.NewFusion()
	fs := &ds.Stats.Fusion
	fs.Seeded = fusion.Seed(ed.Birthdays)
	fs.BestOf = fusion.AttachBestOf(ds.BestOf)
	fs.Overviews = fusion.BackfillOverviews(titles, disc.HostMarker)
	fs.Pages = fusion.AttachArtistPages(ds.ArtistPages)
	fs.Scraped = fusion.MergeScraped(scraped, ds.BestOf)
	ds.Birthdays = fusion.Book
	p.Logger.Info("fused birthdays",
		slog.Int("seeded", fs.Seeded),
		slog.Int("bestof", fs.BestOf),
		slog.Int("overviews", fs.Overviews),
		slog.Int("pages", fs.Pages),
		slog.Int("scraped", fs.Scraped),
		slog.Int("still_missing", len(missing)),
		slog.Int("total", ds.Birthdays.Len()))

	for i := range events {
		if url, ok := ds.ArtistPages.Lookup(events[i].Artist); ok {
			events[i].ArtistPageURL = url
			ds.Stats.EventPages++
		}
	}
	ds.Events = events

	p.Metrics.SetRecords("events", len(ds.Events))
	p.Metrics.SetRecords("birthdays", ds.Birthdays.Len())
	p.Metrics.SetRecords("videos", len(ds.Videos))
	p.Metrics.SetRecords("social_groups", ds.SocialPosts.Len())
	p.Metrics.SetRecords("bestof", ds.BestOf.Len())
	p.Metrics.SetRecords("artist_pages", ds.ArtistPages.Len())
	return ds, nil
}

func (p *Pipeline) dropped(ds *Dataset, source string, d record.Dropped) {
	ds.Stats.Dropped[source] = d
	for reason, n := range d {
		p.Metrics.RecordDropped(source, reason, n)
	}
}

// MissingBirthdays lists roster artists with neither a solo nor a member
// birthday, in roster order, with their artist page when known.
func (ds *Dataset) MissingBirthdays() []record.MissingArtist {
	var out []record.MissingArtist
	for _, name := range ds.Roster.Names() {
		if ds.Birthdays.Covers(name) {
			continue
		}
		m := record.MissingArtist{ArtistName: name}
		if url, ok := ds.ArtistPages.Lookup(name); ok {
			m.ArtistPageURL = url
		}
		out = append(out, m)
	}
	return out
}
