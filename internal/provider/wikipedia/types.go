package wikipedia

import "encoding/json"

// MediaWiki and Wikidata response types.

// pagePropsResponse is the action=query&prop=pageprops response.
type pagePropsResponse struct {
	Query struct {
		Pages map[string]struct {
			Title     string `json:"title"`
			PageProps struct {
				WikibaseItem string `json:"wikibase_item"`
			} `json:"pageprops"`
		} `json:"pages"`
	} `json:"query"`
}

// parseResponse is the action=parse&prop=text response.
type parseResponse struct {
	Parse struct {
		Title string `json:"title"`
		Text  struct {
			HTML string `json:"*"`
		} `json:"text"`
	} `json:"parse"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

// entityResponse is the Special:EntityData JSON document.
type entityResponse struct {
	Entities map[string]entityJSON `json:"entities"`
}

type entityJSON struct {
	ID     string `json:"id"`
	Labels map[string]struct {
		Value string `json:"value"`
	} `json:"labels"`
	Sitelinks map[string]struct {
		Title string `json:"title"`
	} `json:"sitelinks"`
	Claims map[string][]claimJSON `json:"claims"`
}

type claimJSON struct {
	Mainsnak struct {
		Datavalue struct {
			Type  string          `json:"type"`
			Value json.RawMessage `json:"value"`
		} `json:"datavalue"`
	} `json:"mainsnak"`
	Qualifiers map[string]json.RawMessage `json:"qualifiers"`
}

// snakValue covers the two value shapes the resolver reads: entity ids and
// times. Other shapes decode to empty strings.
type snakValue struct {
	ID   string `json:"id"`
	Time string `json:"time"`
}
