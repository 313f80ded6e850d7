// Package wikipedia is the knowledge-base transport: MediaWiki search, page
// properties, and rendered pages from Wikipedia, and structured entities
// from Wikidata.
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/toddlburns/yt-tracker/internal/knowledge"
	"github.com/toddlburns/yt-tracker/internal/provider"
)

const (
	// DefaultAPIEndpoint is the English Wikipedia action API.
	DefaultAPIEndpoint = "https://en.wikipedia.org/w/api.php"
	// DefaultEntityEndpoint serves Wikidata entity documents.
	DefaultEntityEndpoint = "https://www.wikidata.org/wiki/Special:EntityData"

	userAgent = "EditorialHub/1.0 (https://github.com/toddlburns/yt-tracker)"
)

// Adapter implements knowledge.Client against Wikipedia and Wikidata.
type Adapter struct {
	client         *http.Client
	limiter        *provider.RateLimiterMap
	logger         *slog.Logger
	apiEndpoint    string
	entityEndpoint string
}

var _ knowledge.Client = (*Adapter)(nil)

// New creates an adapter with the public endpoints.
func New(limiter *provider.RateLimiterMap, logger *slog.Logger) *Adapter {
	return NewWithEndpoints(limiter, logger, DefaultAPIEndpoint, DefaultEntityEndpoint)
}

// NewWithEndpoints creates an adapter with custom endpoints (for testing).
func NewWithEndpoints(limiter *provider.RateLimiterMap, logger *slog.Logger, apiEndpoint, entityEndpoint string) *Adapter {
	return &Adapter{
		client:         &http.Client{Timeout: 15 * time.Second},
		limiter:        limiter,
		logger:         logger.With(slog.String("provider", "wikipedia")),
		apiEndpoint:    strings.TrimRight(apiEndpoint, "?"),
		entityEndpoint: strings.TrimRight(entityEndpoint, "/"),
	}
}

// WithTimeout sets the HTTP client timeout.
func (a *Adapter) WithTimeout(d time.Duration) *Adapter {
	if d > 0 {
		a.client.Timeout = d
	}
	return a
}

// Search returns page titles matching query via opensearch.
func (a *Adapter) Search(ctx context.Context, query string, limit int) ([]string, error) {
	params := url.Values{
		"action": {"opensearch"},
		"search": {query},
		"limit":  {fmt.Sprint(limit)},
		"format": {"json"},
	}
	var raw []json.RawMessage
	if err := a.getJSON(ctx, provider.NameWikipedia, a.apiEndpoint+"?"+params.Encode(), &raw); err != nil {
		return nil, err
	}
	if len(raw) < 2 {
		return nil, nil
	}
	var titles []string
	if err := json.Unmarshal(raw[1], &titles); err != nil {
		return nil, fmt.Errorf("parsing opensearch titles: %w", err)
	}
	return titles, nil
}

// EntityIDForPage returns the Wikidata item id linked to a page, following
// redirects.
func (a *Adapter) EntityIDForPage(ctx context.Context, title string) (string, error) {
	params := url.Values{
		"action":    {"query"},
		"titles":    {title},
		"prop":      {"pageprops"},
		"ppprop":    {"wikibase_item"},
		"format":    {"json"},
		"redirects": {"1"},
	}
	var resp pagePropsResponse
	if err := a.getJSON(ctx, provider.NameWikipedia, a.apiEndpoint+"?"+params.Encode(), &resp); err != nil {
		return "", err
	}
	for _, page := range resp.Query.Pages {
		if page.PageProps.WikibaseItem != "" {
			return page.PageProps.WikibaseItem, nil
		}
	}
	return "", &provider.ErrNotFound{Provider: provider.NameWikipedia, ID: title}
}

// Entity fetches a Wikidata entity document.
func (a *Adapter) Entity(ctx context.Context, id string) (*knowledge.Entity, error) {
	reqURL := fmt.Sprintf("%s/%s.json", a.entityEndpoint, url.PathEscape(id))
	var resp entityResponse
	if err := a.getJSON(ctx, provider.NameWikidata, reqURL, &resp); err != nil {
		return nil, err
	}

	ent, ok := resp.Entities[id]
	if !ok && len(resp.Entities) == 1 {
		for _, only := range resp.Entities {
			ent, ok = only, true
		}
	}
	if !ok {
		return nil, &provider.ErrNotFound{Provider: provider.NameWikidata, ID: id}
	}
	return mapEntity(id, ent), nil
}

// PageHTML returns the rendered HTML of a page.
func (a *Adapter) PageHTML(ctx context.Context, title string) (string, error) {
	params := url.Values{
		"action":    {"parse"},
		"page":      {title},
		"prop":      {"text"},
		"format":    {"json"},
		"redirects": {"1"},
	}
	var resp parseResponse
	if err := a.getJSON(ctx, provider.NameWikipedia, a.apiEndpoint+"?"+params.Encode(), &resp); err != nil {
		return "", err
	}
	if resp.Error != nil {
		if resp.Error.Code == "missingtitle" {
			return "", &provider.ErrNotFound{Provider: provider.NameWikipedia, ID: title}
		}
		return "", &provider.ErrProviderUnavailable{
			Provider: provider.NameWikipedia,
			Cause:    fmt.Errorf("api error %s: %s", resp.Error.Code, resp.Error.Info),
		}
	}
	return resp.Parse.Text.HTML, nil
}

func (a *Adapter) getJSON(ctx context.Context, name provider.ProviderName, reqURL string, into any) error {
	if err := a.limiter.Wait(ctx, name); err != nil {
		return &provider.ErrProviderUnavailable{
			Provider: name,
			Cause:    fmt.Errorf("rate limiter: %w", err),
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	a.logger.Debug("fetching", slog.String("url", reqURL))

	resp, err := a.client.Do(req) //nolint:gosec // URL constructed from configured endpoint
	if err != nil {
		return &provider.ErrProviderUnavailable{Provider: name, Cause: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &provider.ErrNotFound{Provider: name, ID: reqURL}
	case resp.StatusCode != http.StatusOK:
		return &provider.ErrProviderUnavailable{
			Provider: name,
			Cause:    fmt.Errorf("HTTP %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if err := json.Unmarshal(body, into); err != nil {
		return fmt.Errorf("parsing %s response: %w", name, err)
	}
	return nil
}

func mapEntity(id string, ent entityJSON) *knowledge.Entity {
	out := &knowledge.Entity{
		ID:     ent.ID,
		Claims: make(map[string][]knowledge.Claim, len(ent.Claims)),
	}
	if out.ID == "" {
		out.ID = id
	}
	if l, ok := ent.Labels["en"]; ok {
		out.Label = l.Value
	}
	if s, ok := ent.Sitelinks["enwiki"]; ok {
		out.PageTitle = s.Title
	}
	for prop, claims := range ent.Claims {
		mapped := make([]knowledge.Claim, 0, len(claims))
		for _, c := range claims {
			mapped = append(mapped, knowledge.Claim{
				Value:      claimValue(c),
				Qualifiers: qualifierProps(c),
			})
		}
		out.Claims[prop] = mapped
	}
	return out
}

func claimValue(c claimJSON) string {
	var v snakValue
	if err := json.Unmarshal(c.Mainsnak.Datavalue.Value, &v); err != nil {
		return ""
	}
	if v.ID != "" {
		return v.ID
	}
	return v.Time
}

func qualifierProps(c claimJSON) []string {
	if len(c.Qualifiers) == 0 {
		return nil
	}
	props := make([]string, 0, len(c.Qualifiers))
	for p := range c.Qualifiers {
		props = append(props, p)
	}
	sort.Strings(props)
	return props
}
