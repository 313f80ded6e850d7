// Package provider holds what the knowledge-base transports share: provider
// names, per-provider rate limiting, and the typed errors adapters return.
package provider

import "fmt"

// ProviderName uniquely identifies a knowledge-base provider.
type ProviderName string

// Known provider names.
const (
	NameWikipedia ProviderName = "wikipedia"
	NameWikidata  ProviderName = "wikidata"
)

// AllProviderNames returns all known provider names.
func AllProviderNames() []ProviderName {
	return []ProviderName{NameWikipedia, NameWikidata}
}

// ErrProviderUnavailable indicates a transient failure (rate-limited, timeout, server error).
type ErrProviderUnavailable struct {
	Provider ProviderName
	Cause    error
}

func (e *ErrProviderUnavailable) Error() string {
	return fmt.Sprintf("provider %s unavailable: %v", e.Provider, e.Cause)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Cause }

// ErrNotFound indicates the provider has no data for the requested page or entity.
type ErrNotFound struct {
	Provider ProviderName
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("provider %s: %s not found", e.Provider, e.ID)
}
