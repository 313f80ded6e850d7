package artist

import "strings"

// Alias maps an alternative spelling onto a canonical roster name.
type Alias struct {
	Alias     string `json:"alias"`
	Canonical string `json:"canonical"`
}

// bestOfAliases collapses near-duplicate spellings mined from article titles.
var bestOfAliases = []Alias{
	{Alias: "Beach Boys", Canonical: "The Beach Boys"},
	{Alias: "Mary J Blige", Canonical: "Mary J. Blige"},
	{Alias: "Yusuf / Cat Stevens", Canonical: "Cat Stevens"},
	{Alias: "Queen Of The Stone Age", Canonical: "Queens of the Stone Age"},
	{Alias: "The Carpenters", Canonical: "Carpenters"},
}

// pageAliases maps artist-page directory names (lower case) onto editorial names.
var pageAliases = []Alias{
	{Alias: "2pac", Canonical: "Tupac"},
	{Alias: "yusuf / cat stevens", Canonical: "Cat Stevens"},
	{Alias: "yusuf/cat stevens", Canonical: "Cat Stevens"},
	{Alias: "the carpenters", Canonical: "Carpenters"},
}

// CanonicalName returns the canonical spelling for a discovered artist name,
// or the name unchanged when no alias applies.
func CanonicalName(name string) string {
	for _, a := range bestOfAliases {
		if a.Alias == name {
			return a.Canonical
		}
	}
	return name
}

// PageAliasesFor returns the lower-case directory names known to denote
// canonical, in table order.
func PageAliasesFor(canonical string) []string {
	var out []string
	for _, a := range pageAliases {
		if a.Canonical == canonical {
			out = append(out, strings.ToLower(a.Alias))
		}
	}
	return out
}
