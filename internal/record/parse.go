package record

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Accepted year range for anniversary and birth years, inclusive.
const (
	MinYear = 1800
	MaxYear = 2026
)

var (
	isoDatePrefix = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
	yearPrefix    = regexp.MustCompile(`^(\d{4})`)
)

// yearSentinels are placeholder values meaning "year unknown".
var yearSentinels = map[string]bool{
	"":    true,
	"N/A": true,
	"n/a": true,
	"TBC": true,
}

// linkPlaceholders are link cell values that mean "no link".
var linkPlaceholders = map[string]bool{
	"":     true,
	"...":  true,
	"None": true,
}

// CellString renders a cell value as text.
func CellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}

// ParseYear parses a year cell. The boolean is false for blank or placeholder
// values and for years outside [MinYear, MaxYear].
func ParseYear(v any) (int, bool) {
	var y int
	switch x := v.(type) {
	case nil:
		return 0, false
	case int:
		y = x
	case int64:
		y = int(x)
	case float64:
		y = int(x)
	case time.Time:
		y = x.Year()
	case string:
		s := strings.TrimSpace(x)
		if yearSentinels[s] {
			return 0, false
		}
		m := yearPrefix.FindStringSubmatch(s)
		if m == nil {
			return 0, false
		}
		y, _ = strconv.Atoi(m[1])
	default:
		return 0, false
	}
	if y < MinYear || y > MaxYear {
		return 0, false
	}
	return y, true
}

// ParseMonthDay extracts month and day from a date cell: a time.Time or a
// string beginning with YYYY-MM-DD.
func ParseMonthDay(v any) (month, day int, ok bool) {
	switch x := v.(type) {
	case time.Time:
		if x.IsZero() {
			return 0, 0, false
		}
		month, day = dateOf(x)
	case string:
		_, month, day, ok = ParseISODate(x)
		if !ok {
			return 0, 0, false
		}
	default:
		return 0, 0, false
	}
	if !validMonthDay(month, day) {
		return 0, 0, false
	}
	return month, day, true
}

// ParseISODate parses the YYYY-MM-DD prefix of s.
func ParseISODate(s string) (year, month, day int, ok bool) {
	m := isoDatePrefix.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, 0, false
	}
	year, _ = strconv.Atoi(m[1])
	month, _ = strconv.Atoi(m[2])
	day, _ = strconv.Atoi(m[3])
	if !validMonthDay(month, day) {
		return 0, 0, 0, false
	}
	return year, month, day, true
}

func validMonthDay(month, day int) bool {
	return month >= 1 && month <= 12 && day >= 1 && day <= 31
}

// CleanLink normalizes placeholder link values to the empty string.
func CleanLink(s string) string {
	s = strings.TrimSpace(s)
	if linkPlaceholders[s] {
		return ""
	}
	return s
}
