package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/toddlburns/yt-tracker/internal/record"
)

type fixture struct {
	dir     string
	config  string
	dataset string
	missing string
	metrics string
}

func writeEditorial(t *testing.T, path string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	cells := map[string]any{
		"A1": "Editorial Schedule",
		"A3": "Name",
		"A4": "Elton John 'Tiny Dancer' Anniversary", "F4": "Anniversary",
		"K4": "https://www.udiscovermusic.com/stories/tiny-dancer/", "V4": 1971, "X4": "2024-02-07",
		"A5": "Elton John Birthday", "F5": "Birthday", "V5": 1947, "X5": "2024-03-25",
		"A6": "Elton John 'Rocket Man' Chart", "F6": "Chart", "V6": 1972, "X6": "2024-04-17",
	}
	for cell, v := range cells {
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			t.Fatalf("SetCellValue %s: %v", cell, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
}

func writeCSVFile(t *testing.T, path string, rows [][]string) {
	t.Helper()
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("writing csv: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	fx := fixture{
		dir:     dir,
		config:  filepath.Join(dir, "editorialhub.yaml"),
		dataset: filepath.Join(dir, "site", "editorial_data.js"),
		missing: filepath.Join(dir, "still_missing.csv"),
		metrics: filepath.Join(dir, "editorialhub.prom"),
	}

	editorial := filepath.Join(dir, "schedule.xlsx")
	writeEditorial(t, editorial)

	videos := filepath.Join(dir, "videos.csv")
	writeCSVFile(t, videos, [][]string{
		{"Artist", "Title", "YouTube ID", "Views (All Time)", "Anniversary Date", "Date Type"},
		{"Elton John", "Elton John - Rocket Man (Official Music Video)", "DtVBCG6ThDk", "1,000", "1972-04-17", "Release"},
	})

	scraped := filepath.Join(dir, "scraped.csv")
	writeCSVFile(t, scraped, [][]string{
		{record.ColArtistName, record.ColMemberName, record.ColArtistPageURL, record.ColBirthday},
		{"Sting", "", "https://www.udiscovermusic.com/artist/sting/", ""},
	})

	cfg := fmt.Sprintf(`inputs:
  editorial: %q
  videos: %q
  social: %q
  artist_pages: %q
  scraped: %q
output:
  dataset: %q
  still_missing: %q
  scraped_csv: %q
database:
  path: %q
logging:
  level: error
metrics:
  textfile: %q
`, editorial, videos,
		filepath.Join(dir, "social.xlsx"),
		filepath.Join(dir, "artist_pages.csv"),
		scraped,
		fx.dataset, fx.missing,
		filepath.Join(dir, "scraped_out.csv"),
		filepath.Join(dir, "hub.db"),
		fx.metrics)
	if err := os.WriteFile(fx.config, []byte(cfg), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return fx
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExtractCommand(t *testing.T) {
	fx := newFixture(t)

	out, err := execute(t, "-c", fx.config, "extract")
	if err != nil {
		t.Fatalf("extract: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Chart events removed") {
		t.Errorf("summary missing chart row:\n%s", out)
	}

	data, err := os.ReadFile(fx.dataset)
	if err != nil {
		t.Fatalf("reading dataset: %v", err)
	}
	js := string(data)
	if !strings.HasPrefix(js, "// Auto-generated") {
		t.Errorf("dataset header = %q", strings.SplitN(js, "\n", 2)[0])
	}
	for _, want := range []string{"const EDITORIAL_EVENTS", "Tiny Dancer", "const ARTIST_BIRTHDAYS", "DtVBCG6ThDk", "const ARTIST_PAGES"} {
		if !strings.Contains(js, want) {
			t.Errorf("dataset missing %q", want)
		}
	}
	if strings.Contains(js, "Rocket Man' Chart") {
		t.Error("chart event backed by a video should be suppressed")
	}

	missing, err := os.ReadFile(fx.missing)
	if err != nil {
		t.Fatalf("reading still-missing file: %v", err)
	}
	if !strings.Contains(string(missing), "Sting") {
		t.Errorf("still-missing file = %q", missing)
	}

	if _, err := os.Stat(fx.metrics); err != nil {
		t.Errorf("metrics textfile not written: %v", err)
	}
}

func TestExtractCommandMissingEditorial(t *testing.T) {
	fx := newFixture(t)
	if err := os.Remove(filepath.Join(fx.dir, "schedule.xlsx")); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "-c", fx.config, "extract"); err == nil {
		t.Fatal("expected error for missing editorial workbook")
	}
	if _, err := os.Stat(fx.dataset); !os.IsNotExist(err) {
		t.Errorf("dataset should not be written, stat err = %v", err)
	}
}
