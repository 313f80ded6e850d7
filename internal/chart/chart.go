// Package chart drops chart-milestone events whose song or album is already
// covered by another event or a music video for the same artist.
package chart

import (
	"regexp"
	"strings"

	"github.com/toddlburns/yt-tracker/internal/artist"
	"github.com/toddlburns/yt-tracker/internal/record"
)

// Occasion is the occasion value that marks a chart event.
const Occasion = "Chart"

var quotedTitle = regexp.MustCompile(`['\x{2018}\x{2019}]([^'\x{2018}\x{2019}]+)['\x{2018}\x{2019}]`)

// ExtractTitle returns the first quoted title in name, trimmed and case-folded.
func ExtractTitle(name string) (string, bool) {
	m := quotedTitle.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	title := artist.Fold(strings.TrimSpace(m[1]))
	if title == "" {
		return "", false
	}
	return title, true
}

// Stats reports how many chart events a suppression pass kept and removed.
type Stats struct {
	Kept    int
	Removed int
}

type coverKey struct {
	artist string
	title  string
}

// Suppress removes chart events whose title is covered for their artist by a
// non-chart event or a video. Other events pass through unchanged and in order.
func Suppress(events []record.Event, videos []record.Video) ([]record.Event, Stats) {
	covered := make(map[coverKey]struct{})
	for _, ev := range events {
		if ev.Occasion == Occasion {
			continue
		}
		if title, ok := ExtractTitle(ev.RawName); ok {
			covered[coverKey{ev.Artist, title}] = struct{}{}
		}
	}
	for _, v := range videos {
		covered[coverKey{v.Artist, artist.Fold(strings.TrimSpace(v.Title))}] = struct{}{}
	}

	out := make([]record.Event, 0, len(events))
	var stats Stats
	for _, ev := range events {
		if ev.Occasion == Occasion {
			if title, ok := ExtractTitle(ev.RawName); ok {
				if _, dup := covered[coverKey{ev.Artist, title}]; dup {
					stats.Removed++
					continue
				}
			}
			stats.Kept++
		}
		out = append(out, ev)
	}
	return out, stats
}
