package record

import "testing"

func TestNormalizeArtistPages(t *testing.T) {
	pages := NormalizeArtistPages([]map[string]string{
		{ColArtistName: "Elton John", ColArtistPage: "https://www.udiscovermusic.com/artists/elton-john/"},
		{ColArtistName: "2Pac", ColArtistPage: "https://www.udiscovermusic.com/artists/2pac/"},
		{ColArtistName: "No Page", ColArtistPage: "n/a"},
		{ColArtistName: "", ColArtistPage: "https://example.com"},
	})

	if pages.Len() != 2 {
		t.Fatalf("pages = %d, want 2: %v", pages.Len(), pages.Names())
	}
	if url, ok := pages.Lookup("elton JOHN"); !ok || url != "https://www.udiscovermusic.com/artists/elton-john/" {
		t.Errorf("Lookup = %q, %v", url, ok)
	}
	if _, ok := pages.Lookup("No Page"); ok {
		t.Error("non-http page should be skipped")
	}

	data, err := pages.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"Elton John":"https://www.udiscovermusic.com/artists/elton-john/","2Pac":"https://www.udiscovermusic.com/artists/2pac/"}`
	if string(data) != want {
		t.Errorf("json = %s", data)
	}
}

func TestNormalizeScraped(t *testing.T) {
	scraped, missing := NormalizeScraped([]map[string]string{
		{ColArtistName: "Queen", ColMemberName: "Freddie Mercury", ColArtistPageURL: "https://x/queen", ColBirthday: "1946-09-05"},
		{ColArtistName: "Sting", ColMemberName: "Sting", ColBirthday: "1951-10-02"},
		{ColArtistName: "Obscure Band", ColArtistPageURL: "https://x/obscure"},
		{ColArtistName: "  ", ColBirthday: "1900-01-01"},
	})

	if len(scraped) != 2 {
		t.Fatalf("scraped = %d, want 2", len(scraped))
	}
	if scraped[0].MemberName != "Freddie Mercury" || scraped[0].ArtistPageURL != "https://x/queen" {
		t.Errorf("scraped[0] = %+v", scraped[0])
	}
	if len(missing) != 1 || missing[0].ArtistName != "Obscure Band" || missing[0].ArtistPageURL != "https://x/obscure" {
		t.Errorf("missing = %+v", missing)
	}

	row := ScrapedRow(scraped[1])
	if row[ColBirthday] != "1951-10-02" || row[ColMemberName] != "Sting" {
		t.Errorf("row = %v", row)
	}
}
