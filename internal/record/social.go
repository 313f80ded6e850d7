package record

import (
	"regexp"
	"strings"
)

// SocialPost is one published social post for an artist/title pair.
type SocialPost struct {
	Channel  string `json:"channel"`
	LiveLink string `json:"liveLink"`
}

// SocialGroup collects the posts for one artist and normalized title.
type SocialGroup struct {
	Artist string
	Title  string
	Posts  []SocialPost
}

// SocialGroups is an insertion-ordered set of social groups keyed by
// "artist|title". Links are unique within a group.
type SocialGroups struct {
	order  []string
	groups map[string]*SocialGroup
}

// NewSocialGroups creates an empty collection.
func NewSocialGroups() *SocialGroups {
	return &SocialGroups{groups: make(map[string]*SocialGroup)}
}

// SocialKey builds the group key for an artist and normalized title.
func SocialKey(artistName, title string) string {
	return artistName + "|" + title
}

// Add appends a post to its group. It returns false when the group already
// holds the same live link.
func (g *SocialGroups) Add(artistName, title string, p SocialPost) bool {
	key := SocialKey(artistName, title)
	grp, ok := g.groups[key]
	if !ok {
		grp = &SocialGroup{Artist: artistName, Title: title}
		g.groups[key] = grp
		g.order = append(g.order, key)
	}
	for _, existing := range grp.Posts {
		if existing.LiveLink == p.LiveLink {
			return false
		}
	}
	grp.Posts = append(grp.Posts, p)
	return true
}

// Get returns the group stored under key.
func (g *SocialGroups) Get(key string) (SocialGroup, bool) {
	grp, ok := g.groups[key]
	if !ok {
		return SocialGroup{}, false
	}
	return *grp, true
}

// Keys returns the group keys in insertion order.
func (g *SocialGroups) Keys() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Len returns the number of groups.
func (g *SocialGroups) Len() int { return len(g.order) }

// MarshalJSON encodes the groups as an object of key to post list, in
// insertion order.
func (g *SocialGroups) MarshalJSON() ([]byte, error) {
	return MarshalOrdered(g.order, func(key string) any { return g.groups[key].Posts })
}

var (
	socialFeaturePrefix = regexp.MustCompile(`(?i)^(?:PRODUCT FEATURE:\s*|FEATURE:\s*)`)
	socialCopySuffix    = regexp.MustCompile(`\s*\(copy\).*$`)
	socialQualifier     = regexp.MustCompile(`(?i)\s*(?:on The Ed Sullivan.*|Video|2024.*|Remastered.*)$`)
)

var socialSeparators = []string{" - ", " – ", " — ", ": "}

// CleanSocialTitle reduces a social post name to a lower-case song or album
// title, dropping feature prefixes, copy markers, the artist prefix, and
// trailing qualifiers.
func CleanSocialTitle(name, artistName string) string {
	cleaned := socialFeaturePrefix.ReplaceAllString(name, "")
	cleaned = socialCopySuffix.ReplaceAllString(cleaned, "")

	lowerArtist := strings.ToLower(artistName)
	for _, sep := range socialSeparators {
		before, after, ok := strings.Cut(cleaned, sep)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(before), lowerArtist) {
			cleaned = strings.TrimSpace(after)
			break
		}
	}

	cleaned = socialQualifier.ReplaceAllString(cleaned, "")
	return strings.ToLower(strings.TrimSpace(cleaned))
}
