package chart

import (
	"testing"

	"github.com/toddlburns/yt-tracker/internal/record"
)

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"Janet Jackson 'Rhythm Nation' hits No.1", "rhythm nation", true},
		{"Elton John ‘Tiny Dancer’ Anniversary", "tiny dancer", true},
		{"Nirvana ‘ Nevermind ’ and 'In Utero'", "nevermind", true},
		{"Queen reach No.1", "", false},
		{"Guns N' Roses", "", false},
	}
	for _, tt := range tests {
		got, ok := ExtractTitle(tt.name)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ExtractTitle(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSuppress(t *testing.T) {
	chartEvent := record.Event{RawName: "Janet Jackson 'Rhythm Nation' Tops Chart", Artist: "Janet Jackson", Occasion: "Chart", Month: 1, Day: 6}
	untitled := record.Event{RawName: "Janet Jackson chart record", Artist: "Janet Jackson", Occasion: "Chart", Month: 1, Day: 7}
	anniversary := record.Event{RawName: "Janet Jackson 'Control' Anniversary", Artist: "Janet Jackson", Occasion: "Anniversary", Month: 2, Day: 4}
	controlChart := record.Event{RawName: "Janet Jackson 'Control' No.1", Artist: "Janet Jackson", Occasion: "Chart", Month: 7, Day: 5}
	otherArtistChart := record.Event{RawName: "Eminem 'Control' No.1", Artist: "Eminem", Occasion: "Chart", Month: 7, Day: 5}
	otherAnniversary := record.Event{RawName: "Janet Jackson 'Janet.' Anniversary", Artist: "Janet Jackson", Occasion: "Anniversary", Month: 5, Day: 18}

	tests := []struct {
		name        string
		events      []record.Event
		videos      []record.Video
		wantNames   []string
		wantKept    int
		wantRemoved int
	}{
		{
			name:        "covered by video",
			events:      []record.Event{chartEvent, anniversary},
			videos:      []record.Video{{Artist: "Janet Jackson", Title: " Rhythm Nation "}},
			wantNames:   []string{anniversary.RawName},
			wantRemoved: 1,
		},
		{
			name:      "not covered",
			events:    []record.Event{chartEvent, untitled},
			wantNames: []string{chartEvent.RawName, untitled.RawName},
			wantKept:  2,
		},
		{
			name:        "covered by non-chart event",
			events:      []record.Event{controlChart, anniversary, otherArtistChart},
			wantNames:   []string{anniversary.RawName, otherArtistChart.RawName},
			wantKept:    1,
			wantRemoved: 1,
		},
		{
			name:      "video for another artist",
			events:    []record.Event{chartEvent},
			videos:    []record.Video{{Artist: "Eminem", Title: "Rhythm Nation"}},
			wantNames: []string{chartEvent.RawName},
			wantKept:  1,
		},
		{
			name:      "kept counts only chart events",
			events:    []record.Event{anniversary, chartEvent, otherAnniversary},
			wantNames: []string{anniversary.RawName, chartEvent.RawName, otherAnniversary.RawName},
			wantKept:  1,
		},
		{
			name:        "folded titles",
			events:      []record.Event{chartEvent},
			videos:      []record.Video{{Artist: "Janet Jackson", Title: "RHYTHM NATION"}},
			wantNames:   []string{},
			wantRemoved: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, stats := Suppress(tt.events, tt.videos)
			if len(got) != len(tt.wantNames) {
				t.Fatalf("got %d events, want %d: %+v", len(got), len(tt.wantNames), got)
			}
			for i, ev := range got {
				if ev.RawName != tt.wantNames[i] {
					t.Errorf("event[%d] = %q, want %q", i, ev.RawName, tt.wantNames[i])
				}
			}
			if stats.Removed != tt.wantRemoved || stats.Kept != tt.wantKept {
				t.Errorf("stats = %+v", stats)
			}
			if len(got) > len(tt.events) {
				t.Error("suppression must not add events")
			}
		})
	}
}
