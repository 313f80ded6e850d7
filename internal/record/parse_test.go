package record

import (
	"testing"
	"time"
)

func TestParseYear(t *testing.T) {
	tests := []struct {
		in     any
		want   int
		wantOK bool
	}{
		{1899, 0, false},
		{1800, 1800, true},
		{"2024", 2024, true},
		{"1985 (reissue 2010)", 1985, true},
		{float64(1977), 1977, true},
		{int64(2026), 2026, true},
		{2027, 0, false},
		{"TBC", 0, false},
		{"N/A", 0, false},
		{"n/a", 0, false},
		{"", 0, false},
		{"unknown", 0, false},
		{nil, 0, false},
		{time.Date(1969, 7, 20, 0, 0, 0, 0, time.UTC), 1969, true},
	}
	for _, tt := range tests {
		got, ok := ParseYear(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseYear(%#v) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseMonthDay(t *testing.T) {
	tests := []struct {
		in        any
		wantMonth int
		wantDay   int
		wantOK    bool
	}{
		{"2024-03-25", 3, 25, true},
		{"2024-03-25 00:00:00", 3, 25, true},
		{time.Date(2024, 11, 2, 0, 0, 0, 0, time.UTC), 11, 2, true},
		{"2024-13-01", 0, 0, false},
		{"2024-02-00", 0, 0, false},
		{"03/25/2024", 0, 0, false},
		{time.Time{}, 0, 0, false},
		{45000.0, 0, 0, false},
		{nil, 0, 0, false},
	}
	for _, tt := range tests {
		m, d, ok := ParseMonthDay(tt.in)
		if m != tt.wantMonth || d != tt.wantDay || ok != tt.wantOK {
			t.Errorf("ParseMonthDay(%#v) = %d, %d, %v; want %d, %d, %v",
				tt.in, m, d, ok, tt.wantMonth, tt.wantDay, tt.wantOK)
		}
	}
}

func TestCleanLink(t *testing.T) {
	tests := map[string]string{
		"":                                "",
		"...":                             "",
		"None":                            "",
		"  https://example.com/a  ":       "https://example.com/a",
		"https://www.udiscovermusic.com/": "https://www.udiscovermusic.com/",
	}
	for in, want := range tests {
		if got := CleanLink(in); got != want {
			t.Errorf("CleanLink(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCellString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{42, "42"},
		{float64(1985), "1985"},
		{1234.5, "1234.5"},
		{time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), "2024-01-02 03:04:05"},
	}
	for _, tt := range tests {
		if got := CellString(tt.in); got != tt.want {
			t.Errorf("CellString(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
