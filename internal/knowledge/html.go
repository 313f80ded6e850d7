package knowledge

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	isoDate        = regexp.MustCompile(`^\+?(\d{4})-(\d{2})-(\d{2})`)
	bornMonthFirst = regexp.MustCompile(`(?i)born[^)]{0,40}?(\w+)\s+(\d{1,2}),?\s+(\d{4})`)
	bornDayFirst   = regexp.MustCompile(`(?i)born[^)]{0,40}?(\d{1,2})\s+(\w+)\s+(\d{4})`)
)

var monthNumbers = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4,
	"may": 5, "june": 6, "july": 7, "august": 8,
	"september": 9, "october": 10, "november": 11, "december": 12,
}

// ParseTime parses a knowledge-base time value such as
// "+1947-03-25T00:00:00Z". Values with a zero month or day, which carry
// only year precision, are rejected.
func ParseTime(s string) (Date, bool) {
	m := isoDate.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Date{}, false
	}
	y, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	d, _ := strconv.Atoi(m[3])
	if mo == 0 || d == 0 {
		return Date{}, false
	}
	return Date{Year: y, Month: mo, Day: d}, true
}

// ExtractBirthdayFromHTML finds a birth date in a rendered page: first the
// bday microformat, then "born <Month> <Day>, <Year>", then
// "born <Day> <Month> <Year>".
func ExtractBirthdayFromHTML(page string) (Date, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return Date{}, false
	}

	if bday := strings.TrimSpace(doc.Find(".bday").First().Text()); bday != "" {
		if d, ok := ParseTime(bday); ok {
			return d, true
		}
	}

	text := visibleText(doc)

	if m := bornMonthFirst.FindStringSubmatch(text); m != nil {
		if mo, ok := monthNumbers[strings.ToLower(m[1])]; ok {
			return dateFromParts(m[3], mo, m[2])
		}
	}
	if m := bornDayFirst.FindStringSubmatch(text); m != nil {
		if mo, ok := monthNumbers[strings.ToLower(m[2])]; ok {
			return dateFromParts(m[3], mo, m[1])
		}
	}
	return Date{}, false
}

func dateFromParts(year string, month int, day string) (Date, bool) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return Date{}, false
	}
	d, err := strconv.Atoi(day)
	if err != nil || d < 1 || d > 31 {
		return Date{}, false
	}
	return Date{Year: y, Month: month, Day: d}, true
}

// visibleText joins the document's text nodes in order, separated by spaces
// so that adjacent inline elements do not fuse words.
func visibleText(doc *goquery.Document) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return b.String()
}
