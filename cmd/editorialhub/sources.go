package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/toddlburns/yt-tracker/internal/config"
	"github.com/toddlburns/yt-tracker/internal/ingest"
	"github.com/toddlburns/yt-tracker/internal/pipeline"
	"github.com/toddlburns/yt-tracker/internal/record"
)

// readSources loads every input named in cfg. The editorial workbook and the
// video export are required; the rest are skipped with a warning when absent.
func readSources(cfg *config.Config, logger *slog.Logger) (pipeline.Sources, error) {
	var src pipeline.Sources
	in := cfg.Inputs

	editorial, err := ingest.ReadWorkbook(in.Editorial, editorialWorkbookOptions(cfg))
	if err != nil {
		return src, err
	}
	src.Editorial = editorial

	src.VideoHeader, src.Videos, err = ingest.ReadCSV(in.Videos)
	if err != nil {
		return src, err
	}

	if exists(in.Social, logger) {
		src.Social, err = ingest.ReadWorkbook(in.Social, socialWorkbookOptions(cfg))
		if err != nil {
			return src, err
		}
	}

	if src.ArtistPages, err = ingest.ReadKeyedCSV(in.ArtistPages); err != nil {
		return src, err
	}
	if src.ArtistPages == nil {
		logger.Warn("artist pages not found", slog.String("path", in.ArtistPages))
	}
	if src.Scraped, err = ingest.ReadKeyedCSV(in.Scraped); err != nil {
		return src, err
	}
	if src.Scraped == nil {
		logger.Warn("scraped birthdays not found", slog.String("path", in.Scraped))
	}

	logger.Info("loaded sources",
		slog.Int("editorial_rows", len(src.Editorial)),
		slog.Int("video_rows", len(src.Videos)),
		slog.Int("social_rows", len(src.Social)),
		slog.Int("artist_pages", len(src.ArtistPages)),
		slog.Int("scraped_rows", len(src.Scraped)))
	return src, nil
}

// editorialWorkbookOptions converts both the date and the year column from
// date serials.
func editorialWorkbookOptions(cfg *config.Config) ingest.WorkbookOptions {
	cols := record.DefaultEditorialColumns()
	return ingest.WorkbookOptions{
		SkipRows:    cfg.Discovery.SkipRows,
		DateColumns: []int{cols.Year, cols.Date},
	}
}

// socialWorkbookOptions skips the same title rows as the editorial schedule.
func socialWorkbookOptions(cfg *config.Config) ingest.WorkbookOptions {
	return ingest.WorkbookOptions{SkipRows: cfg.Discovery.SkipRows}
}

// exists reports whether an optional input is present, warning when it is not.
func exists(path string, logger *slog.Logger) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn("optional input not found", slog.String("path", path))
	default:
		logger.Warn("optional input unreadable", slog.String("path", path), slog.String("error", err.Error()))
	}
	return false
}

