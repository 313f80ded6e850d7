package main

import (
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/toddlburns/yt-tracker/internal/config"
	"github.com/toddlburns/yt-tracker/internal/record"
)

func writeSocial(t *testing.T, path string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	cells := map[string]any{
		"A1": "Social Calendar",
		"A2": "Week 1",
		"A3": "Name", "B3": "Store", "I3": "Channel", "R3": "Live Social Link",
		"A4": "Elton John - Tiny Dancer", "B4": "UMe", "I4": "Instagram",
		"R4": "https://instagram.com/p/abc",
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

func TestWorkbookOptions(t *testing.T) {
	cfg := config.Default()
	cols := record.DefaultEditorialColumns()

	ed := editorialWorkbookOptions(cfg)
	if ed.SkipRows != cfg.Discovery.SkipRows {
		t.Errorf("editorial skip rows = %d", ed.SkipRows)
	}
	if !slices.Contains(ed.DateColumns, cols.Year) || !slices.Contains(ed.DateColumns, cols.Date) {
		t.Errorf("editorial date columns = %v, want year and date", ed.DateColumns)
	}

	social := socialWorkbookOptions(cfg)
	if social.SkipRows != cfg.Discovery.SkipRows || len(social.DateColumns) != 0 {
		t.Errorf("social options = %+v", social)
	}
}

func TestReadSourcesSkipsSocialTitleRows(t *testing.T) {
	fx := newFixture(t)
	writeSocial(t, filepath.Join(fx.dir, "social.xlsx"))

	cfg, err := config.Load(fx.config)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	src, err := readSources(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("readSources: %v", err)
	}
	if len(src.Social) != 1 {
		t.Fatalf("social rows = %d, want 1 data row", len(src.Social))
	}
	if src.Social[0].Text(0) != "Elton John - Tiny Dancer" {
		t.Errorf("social row = %v", src.Social[0])
	}
	if len(src.Editorial) != 3 {
		t.Errorf("editorial rows = %d, want 3", len(src.Editorial))
	}
}
