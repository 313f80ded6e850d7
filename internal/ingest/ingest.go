// Package ingest reads the editorial workbook and the CSV inputs into the
// tokenized rows the record normalizer consumes.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/toddlburns/yt-tracker/internal/record"
)

// DefaultSkipRows is the number of title and header rows above the editorial
// schedule's first data row.
const DefaultSkipRows = 3

// WorkbookOptions controls how the active sheet is tokenized.
type WorkbookOptions struct {
	SkipRows    int
	DateColumns []int
}

// ReadWorkbook reads the active sheet of the workbook at path. Numeric cells
// in DateColumns with a date number format become time.Time values; empty
// cells are nil and everything else is the cell's raw text.
func ReadWorkbook(path string, opts WorkbookOptions) ([]record.Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	iter, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	defer iter.Close() //nolint:errcheck

	dateCols := make(map[int]bool, len(opts.DateColumns))
	for _, c := range opts.DateColumns {
		dateCols[c] = true
	}
	styles := dateStyles{f: f}

	var rows []record.Row
	for n := 0; iter.Next(); n++ {
		cells, err := iter.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", n+1, err)
		}
		if n < opts.SkipRows {
			continue
		}
		row := make(record.Row, len(cells))
		for i, c := range cells {
			isDate := false
			if dateCols[i] {
				isDate = styles.isDate(sheet, i+1, n+1)
			}
			row[i] = cellValue(c, isDate)
		}
		rows = append(rows, row)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("iterating sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func cellValue(raw string, isDate bool) any {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if isDate {
		if serial, err := strconv.ParseFloat(s, 64); err == nil {
			if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return t
			}
		}
	}
	return raw
}

// dateStyles caches whether a cell style id carries a date number format.
type dateStyles struct {
	f     *excelize.File
	cache map[int]bool
}

func (d *dateStyles) isDate(sheet string, col, row int) bool {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return false
	}
	id, err := d.f.GetCellStyle(sheet, cell)
	if err != nil {
		return false
	}
	if v, ok := d.cache[id]; ok {
		return v
	}
	v := false
	if style, err := d.f.GetStyle(id); err == nil && style != nil {
		v = isDateFormat(style.NumFmt, style.CustomNumFmt)
	}
	if d.cache == nil {
		d.cache = make(map[int]bool)
	}
	d.cache[id] = v
	return v
}

var formatLiterals = regexp.MustCompile(`"[^"]*"|\[[^\]]*\]|\\.`)

// isDateFormat reports whether a number format renders a date: one of the
// built-in date formats or a custom code with a year or day token.
func isDateFormat(numFmt int, custom *string) bool {
	if custom != nil && *custom != "" {
		code := strings.ToLower(formatLiterals.ReplaceAllString(*custom, ""))
		return strings.ContainsAny(code, "yd")
	}
	switch {
	case numFmt >= 14 && numFmt <= 22,
		numFmt >= 27 && numFmt <= 36,
		numFmt >= 45 && numFmt <= 47,
		numFmt >= 50 && numFmt <= 58:
		return true
	}
	return false
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func openCSV(path string) (*csv.Reader, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from config
	if err != nil {
		return nil, err
	}
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r, nil
}

// ReadCSV reads a CSV file as a header and positional rows. Empty cells
// are nil.
func ReadCSV(path string) ([]string, []record.Row, error) {
	r, err := openCSV(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading header of %s: %w", path, err)
	}

	var rows []record.Row
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", path, err)
		}
		row := make(record.Row, len(rec))
		for i, c := range rec {
			row[i] = cellValue(c, false)
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

// ReadKeyedCSV reads a CSV file into rows keyed by trimmed header names. A
// missing file yields no rows.
func ReadKeyedCSV(path string) ([]map[string]string, error) {
	r, err := openCSV(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		row := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
