package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/toddlburns/yt-tracker/internal/knowledge"
	"github.com/toddlburns/yt-tracker/internal/record"
	"github.com/toddlburns/yt-tracker/internal/scraped"
)

func TestMissingTargets(t *testing.T) {
	entries := []scraped.Entry{
		{ScrapedBirthday: record.ScrapedBirthday{ArtistName: "Heart", ArtistPageURL: "https://example.com/heart"}},
		{ScrapedBirthday: record.ScrapedBirthday{ArtistName: "Nirvana", MemberName: "Kurt Cobain", Birthday: "1967-02-20"}},
		{ScrapedBirthday: record.ScrapedBirthday{ArtistName: "Heart"}},
		{ScrapedBirthday: record.ScrapedBirthday{ArtistName: "Rush"}},
	}

	got := missingTargets(entries)
	if len(got) != 2 {
		t.Fatalf("targets = %+v, want 2", got)
	}
	if got[0].ArtistName != "Heart" || got[0].ArtistPageURL != "https://example.com/heart" {
		t.Errorf("first target = %+v", got[0])
	}
	if got[1].ArtistName != "Rush" {
		t.Errorf("second target = %+v", got[1])
	}
}

func TestScrapeEntries(t *testing.T) {
	results := []knowledge.Result{
		{
			Target: record.MissingArtist{ArtistName: "Nirvana", ArtistPageURL: "https://example.com/nirvana"},
			Resolution: knowledge.Resolution{
				Outcome: knowledge.OutcomeFound,
				Note:    "band with 2/3 members (Nirvana (band))",
				Members: []knowledge.MemberBirthday{
					{Member: "Kurt Cobain", Birthday: knowledge.Date{Year: 1967, Month: 2, Day: 20}},
					{Member: "Krist Novoselic", Birthday: knowledge.Date{Year: 1965, Month: 5, Day: 16}},
				},
			},
		},
		{
			Target:     record.MissingArtist{ArtistName: "Heart"},
			Resolution: knowledge.Resolution{Outcome: knowledge.OutcomeDegraded, Note: knowledge.NoteNoDate},
		},
	}

	entries, found := scrapeEntries(results)
	if found != 1 {
		t.Errorf("found = %d, want 1", found)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	if entries[1].MemberName != "Krist Novoselic" || entries[1].Birthday != "1965-05-16" || entries[1].Outcome != "found" {
		t.Errorf("member entry = %+v", entries[1])
	}
	if entries[2].Found() || entries[2].Outcome != "degraded" || entries[2].Note != knowledge.NoteNoDate {
		t.Errorf("placeholder entry = %+v", entries[2])
	}
}

func TestScrapeCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("action") == "opensearch" {
			_, _ = w.Write([]byte(`["` + r.URL.Query().Get("search") + `", [], [], []]`))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	fx := newFixture(t)
	cfg, err := os.ReadFile(fx.config)
	if err != nil {
		t.Fatal(err)
	}
	cfg = append(cfg, []byte("knowledge:\n"+
		"  api_endpoint: "+srv.URL+"/w/api.php\n"+
		"  entity_endpoint: "+srv.URL+"/entity\n"+
		"  timeout: 5s\n"+
		"  rate_limit: 0\n"+
		"  search_limit: 5\n"+
		"  candidate_limit: 3\n"+
		"  member_cap: 3\n"+
		"  call_delay: 0s\n"+
		"  artist_delay: 0s\n")...)
	if err := os.WriteFile(fx.config, cfg, 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "-c", fx.config, "scrape")
	if err != nil {
		t.Fatalf("scrape: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Sting") || !strings.Contains(out, knowledge.NoteNoPage) {
		t.Errorf("summary = %s", out)
	}

	data, err := os.ReadFile(filepath.Join(fx.dir, "scraped_out.csv"))
	if err != nil {
		t.Fatalf("reading scraped csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("scraped csv = %q", data)
	}
	if !strings.HasPrefix(lines[1], "Sting,,") {
		t.Errorf("scraped row = %q", lines[1])
	}
}
