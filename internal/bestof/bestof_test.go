package bestof

import (
	"encoding/json"
	"testing"

	"github.com/toddlburns/yt-tracker/internal/record"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		title     string
		wantName  string
		wantScore int
		wantOK    bool
	}{
		{"Elton John In 20 Songs", "Elton John", 100, true},
		{"uDiscover Deep Dive: Elton John In 20 Songs", "Elton John", 100, true},
		{"Bob Marley In 20 Quotes", "Bob Marley", 100, true},
		{"Best Elton John Songs: 20 Essential Tracks", "Elton John", 80, true},
		{"The Best Weezer Albums", "Weezer", 80, true},
		{"Best Soundgarden Deep Cuts - Ranked", "Soundgarden", 80, true},
		{"Essential Nirvana: A Guide", "Nirvana", 70, true},
		{"Essential Weezer Songs - Listen Now", "Weezer", 70, true},
		{"10 Things You Didn't Know About Bon Jovi.", "Bon Jovi", 60, true},
		{"10 Things You Never Knew About Bon Jovi", "", 0, false},
		{"Facts About Shania Twain", "Shania Twain", 60, true},
		{"Greatest Toby Keith Songs", "Toby Keith", 50, true},
		{"The Best Grunge Songs", "", 0, false},
		{"The Best Christmas Songs Of All Time", "", 0, false},
		{"2024 In 20 Songs", "", 0, false},
		{"Best 1990 Songs", "", 0, false},
		{"Best 7 Songs", "", 0, false},
		{"Elton John Birthday", "", 0, false},
	}
	for _, tt := range tests {
		name, score, ok := Match(tt.title)
		if name != tt.wantName || score != tt.wantScore || ok != tt.wantOK {
			t.Errorf("Match(%q) = %q, %d, %v; want %q, %d, %v",
				tt.title, name, score, ok, tt.wantName, tt.wantScore, tt.wantOK)
		}
	}
}

func TestDiscover(t *testing.T) {
	const host = "https://www.udiscovermusic.com/"
	d := New("")
	titles := []Title{
		{Name: "The Best Beach Boys Songs", Link: host + "a"},
		{Name: "Best Nirvana Songs", Link: host + "c"},
		{Name: "The Beach Boys In 20 Songs", Link: host + "b"},
		{Name: "The Best Nirvana Albums", Link: host + "d"},
		{Name: "Elton John In 20 Songs", Link: "https://example.com/elton"},
		{Name: "Essential Nirvana: Guide", Link: host + "e"},
	}

	assoc := d.Discover(titles)

	if got := assoc.Names(); len(got) != 2 || got[0] != "The Beach Boys" || got[1] != "Nirvana" {
		t.Fatalf("Names() = %v", got)
	}
	bb, _ := assoc.Get("The Beach Boys")
	if bb.URL != host+"b" || bb.Score != 100 {
		t.Errorf("The Beach Boys = %+v", bb)
	}
	nv, _ := assoc.Get("Nirvana")
	if nv.URL != host+"c" || nv.Score != 80 {
		t.Errorf("Nirvana = %+v, want first 80-point article", nv)
	}
	if _, ok := assoc.Get("Elton John"); ok {
		t.Error("article on another host should be ignored")
	}
	if assoc.URLs()["Nirvana"] != host+"c" {
		t.Errorf("URLs() = %v", assoc.URLs())
	}

	data, err := json.Marshal(assoc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"The Beach Boys":"https://www.udiscovermusic.com/b","Nirvana":"https://www.udiscovermusic.com/c"}`
	if string(data) != want {
		t.Errorf("json = %s", data)
	}
}

func TestArticles(t *testing.T) {
	cols := record.EditorialColumns{Name: 0, FeatureLink: 1}
	rows := []record.Row{
		{"Elton John In 20 Songs", "https://www.udiscovermusic.com/elton"},
		{"Placeholder", "..."},
		{"Other host", "https://example.com"},
		{"Short row"},
	}
	got := New("udiscovermusic.com").Articles(rows, cols)
	if len(got) != 1 || got[0].Name != "Elton John In 20 Songs" {
		t.Errorf("Articles() = %+v", got)
	}
}

func TestScoreOverview(t *testing.T) {
	tests := map[string]int{
		"uncovering elton john in 20 songs":   100,
		"the best elton john songs":           80,
		"essential elton john":                70,
		"10 things you never knew about kiss": 60,
		"elton john facts":                    60,
		"greatest elton john albums":          50,
		"elton john birthday":                 0,
	}
	for title, want := range tests {
		if got := ScoreOverview(title); got != want {
			t.Errorf("ScoreOverview(%q) = %d, want %d", title, got, want)
		}
	}
}

func TestOfferStrictlyHigher(t *testing.T) {
	a := NewAssociations()
	if !a.Offer("Kiss", Association{URL: "1", Score: 60}) {
		t.Fatal("first offer should be stored")
	}
	if a.Offer("Kiss", Association{URL: "2", Score: 60}) {
		t.Error("equal score should not replace")
	}
	if !a.Offer("Kiss", Association{URL: "3", Score: 70}) {
		t.Error("higher score should replace")
	}
	if got, _ := a.Get("Kiss"); got.URL != "3" || a.Len() != 1 {
		t.Errorf("Get = %+v, Len = %d", got, a.Len())
	}
}
