package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/toddlburns/yt-tracker/internal/bestof"
	"github.com/toddlburns/yt-tracker/internal/birthday"
	"github.com/toddlburns/yt-tracker/internal/pipeline"
	"github.com/toddlburns/yt-tracker/internal/record"
)

func testDataset() *pipeline.Dataset {
	year := 1971
	book := birthday.NewBook()
	book.Add("Elton John", birthday.New(1947, 3, 25).Apply(birthday.Patch{ArticleURL: "https://www.udiscovermusic.com/a?b=1&c=2"}))

	social := record.NewSocialGroups()
	social.Add("Nirvana", "nevermind", record.SocialPost{Channel: "IG", LiveLink: "https://instagram.com/p/1"})

	assoc := bestof.NewAssociations()
	assoc.Offer("Elton John", bestof.Association{URL: "https://www.udiscovermusic.com/best-elton", Score: 80})

	pages := record.NewArtistPages()
	pages.Set("Elton John", "https://www.udiscovermusic.com/artist/elton-john/")

	return &pipeline.Dataset{
		Events: []record.Event{{
			RawName: "Elton John 'Tiny Dancer' Anniversary", Artist: "Elton John",
			Occasion: "Anniversary", OrigYear: &year, Month: 2, Day: 7,
		}},
		Birthdays:   book,
		SocialPosts: social,
		BestOf:      assoc,
		ArtistPages: pages,
	}
}

// constBlocks splits a rendered file into its JSON blocks by constant name.
func constBlocks(t *testing.T, js string) map[string]string {
	t.Helper()
	blocks := make(map[string]string)
	for _, part := range strings.Split(js, "const ")[1:] {
		name, body, ok := strings.Cut(part, " = ")
		if !ok {
			t.Fatalf("malformed block %q", part)
		}
		body = strings.TrimSpace(body)
		if !strings.HasSuffix(body, ";") {
			t.Fatalf("block %s not terminated", name)
		}
		blocks[name] = strings.TrimSuffix(body, ";")
	}
	return blocks
}

func TestRenderDataset(t *testing.T) {
	data, err := RenderDataset(testDataset())
	if err != nil {
		t.Fatalf("RenderDataset: %v", err)
	}
	js := string(data)
	if !strings.HasPrefix(js, "// Auto-generated") {
		t.Errorf("missing header comment")
	}

	blocks := constBlocks(t, js)
	order := []string{ConstEvents, ConstBirthdays, ConstVideos, ConstSocialPosts, ConstBestOf, ConstArtistPages}
	last := -1
	for _, name := range order {
		body, ok := blocks[name]
		if !ok {
			t.Fatalf("missing %s", name)
		}
		if !json.Valid([]byte(body)) {
			t.Errorf("%s is not valid JSON: %s", name, body)
		}
		idx := strings.Index(js, "const "+name+" = ")
		if idx < last {
			t.Errorf("%s out of order", name)
		}
		last = idx
	}

	if blocks[ConstVideos] != "[]" {
		t.Errorf("videos = %s, want []", blocks[ConstVideos])
	}
	if !strings.Contains(js, "\n  {\n    \"name\": \"Elton John 'Tiny Dancer' Anniversary\",") {
		t.Errorf("events should use 2-space indent:\n%s", blocks[ConstEvents])
	}
	if !strings.Contains(blocks[ConstBirthdays], "a?b=1&c=2") {
		t.Errorf("URLs should not be HTML-escaped: %s", blocks[ConstBirthdays])
	}

	var bestOf map[string]string
	if err := json.Unmarshal([]byte(blocks[ConstBestOf]), &bestOf); err != nil {
		t.Fatalf("best-of: %v", err)
	}
	if bestOf["Elton John"] != "https://www.udiscovermusic.com/best-elton" {
		t.Errorf("best-of = %v", bestOf)
	}
}

func TestWriteDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site", "editorial_data.js")
	if err := WriteDataset(path, testDataset()); err != nil {
		t.Fatalf("WriteDataset: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "const ARTIST_PAGES = {") {
		t.Errorf("artist pages block missing")
	}
}

func TestWriteMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")
	missing := []record.MissingArtist{
		{ArtistName: "Sting", ArtistPageURL: "https://www.udiscovermusic.com/artist/sting/"},
		{ArtistName: "Guns N' Roses, Inc"},
	}
	if err := WriteMissing(path, missing); err != nil {
		t.Fatalf("WriteMissing: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "ARTIST NAME,ARTIST PAGE URL\n" +
		"Sting,https://www.udiscovermusic.com/artist/sting/\n" +
		"\"Guns N' Roses, Inc\",\n"
	if string(data) != want {
		t.Errorf("csv = %q, want %q", data, want)
	}
}

func TestWriteScrapedCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scraped.csv")
	rows := []record.ScrapedBirthday{
		{ArtistName: "Nirvana", MemberName: "Kurt Cobain", ArtistPageURL: "https://x/nirvana", Birthday: "1967-02-20"},
		{ArtistName: "Heart"},
	}
	if err := WriteScrapedCSV(path, rows); err != nil {
		t.Fatalf("WriteScrapedCSV: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "ARTIST NAME,MEMBER NAME,ARTIST PAGE URL,BIRTHDAY (YYYY-MM-DD)\n" +
		"Nirvana,Kurt Cobain,https://x/nirvana,1967-02-20\n" +
		"Heart,,,\n"
	if string(data) != want {
		t.Errorf("csv = %q, want %q", data, want)
	}
}
