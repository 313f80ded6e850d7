// Package dedupe removes repeated editorial records, keeping the first
// occurrence of each key in input order.
package dedupe

import "github.com/toddlburns/yt-tracker/internal/record"

// Seen tracks keys that have already been observed.
type Seen[K comparable] struct {
	keys map[K]struct{}
}

// NewSeen creates an empty set.
func NewSeen[K comparable]() *Seen[K] {
	return &Seen[K]{keys: make(map[K]struct{})}
}

// SeenAndRecord reports whether k was already seen and records it if not.
func (s *Seen[K]) SeenAndRecord(k K) bool {
	if _, ok := s.keys[k]; ok {
		return true
	}
	s.keys[k] = struct{}{}
	return false
}

// By returns the items whose key has not appeared earlier in the slice.
func By[T any, K comparable](items []T, key func(T) K) []T {
	seen := NewSeen[K]()
	out := make([]T, 0, len(items))
	for _, it := range items {
		if seen.SeenAndRecord(key(it)) {
			continue
		}
		out = append(out, it)
	}
	return out
}

type eventKey struct {
	artist   string
	month    int
	day      int
	year     int
	hasYear  bool
	occasion string
}

// keyOfEvent identifies an event by artist, date, original year, and occasion.
// An absent year is distinct from every present year.
func keyOfEvent(e record.Event) eventKey {
	y, ok := e.Year()
	return eventKey{
		artist:   e.Artist,
		month:    e.Month,
		day:      e.Day,
		year:     y,
		hasYear:  ok,
		occasion: e.Occasion,
	}
}

type videoKey struct {
	artist     string
	month      int
	day        int
	year       int
	externalID string
}

// keyOfVideo identifies a video by artist, date, original year, and external id.
func keyOfVideo(v record.Video) videoKey {
	return videoKey{
		artist:     v.Artist,
		month:      v.Month,
		day:        v.Day,
		year:       v.OrigYear,
		externalID: v.ExternalID,
	}
}

// Events drops repeated events.
func Events(events []record.Event) []record.Event {
	return By(events, keyOfEvent)
}

// Videos drops repeated videos.
func Videos(videos []record.Video) []record.Video {
	return By(videos, keyOfVideo)
}
