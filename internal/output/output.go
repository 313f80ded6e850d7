// Package output serializes a pipeline Dataset for the editorial site and
// writes the CSV side files.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/toddlburns/yt-tracker/internal/filesystem"
	"github.com/toddlburns/yt-tracker/internal/pipeline"
	"github.com/toddlburns/yt-tracker/internal/record"
)

const header = "// Auto-generated by editorialhub extract. Do not edit manually.\n"

// JavaScript constant names, in file order.
const (
	ConstEvents      = "EDITORIAL_EVENTS"
	ConstBirthdays   = "ARTIST_BIRTHDAYS"
	ConstVideos      = "MUSIC_VIDEO_ANNIVERSARIES"
	ConstSocialPosts = "SOCIAL_POSTS"
	ConstBestOf      = "BESTOF_ARTICLES"
	ConstArtistPages = "ARTIST_PAGES"
)

// RenderDataset renders ds as a JavaScript file of constants holding
// 2-space indented JSON.
func RenderDataset(ds *pipeline.Dataset) ([]byte, error) {
	events := ds.Events
	if events == nil {
		events = []record.Event{}
	}
	videos := ds.Videos
	if videos == nil {
		videos = []record.Video{}
	}

	blocks := []struct {
		name  string
		value any
	}{
		{ConstEvents, events},
		{ConstBirthdays, ds.Birthdays},
		{ConstVideos, videos},
		{ConstSocialPosts, ds.SocialPosts},
		{ConstBestOf, ds.BestOf},
		{ConstArtistPages, ds.ArtistPages},
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	for i, b := range blocks {
		if i > 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(&buf, "const %s = ", b.name)
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(b.value); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", b.name, err)
		}
		// Encode ends with a newline; the statement terminator goes before it.
		buf.Truncate(buf.Len() - 1)
		buf.WriteString(";\n")
	}
	return buf.Bytes(), nil
}

// WriteDataset renders ds and writes it to path.
func WriteDataset(path string, ds *pipeline.Dataset) error {
	data, err := RenderDataset(ds)
	if err != nil {
		return err
	}
	if err := filesystem.WriteFileAtomic(path, data, 0o644); err != nil { //nolint:gosec // G306: served to the site
		return fmt.Errorf("writing dataset: %w", err)
	}
	return nil
}

// WriteMissing writes artists without a birthday as a two-column CSV.
func WriteMissing(path string, missing []record.MissingArtist) error {
	rows := make([][]string, 0, len(missing))
	for _, m := range missing {
		rows = append(rows, []string{m.ArtistName, m.ArtistPageURL})
	}
	return writeCSV(path, []string{record.ColArtistName, record.ColArtistPageURL}, rows)
}

// WriteScrapedCSV writes scraped birthdays in the scraped-table layout.
func WriteScrapedCSV(path string, scraped []record.ScrapedBirthday) error {
	rows := make([][]string, 0, len(scraped))
	for _, s := range scraped {
		rows = append(rows, []string{s.ArtistName, s.MemberName, s.ArtistPageURL, s.Birthday})
	}
	return writeCSV(path,
		[]string{record.ColArtistName, record.ColMemberName, record.ColArtistPageURL, record.ColBirthday},
		rows)
}

func writeCSV(path string, head []string, rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(head); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("writing csv rows: %w", err)
	}
	if err := filesystem.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil { //nolint:gosec // G306: shared with editors
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
