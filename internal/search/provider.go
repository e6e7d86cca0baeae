// Package search implements the web-search gateway: a thin translation
// layer between the application's result model and third-party search HTTP
// APIs. Two providers exist — SerpAPI (used when an API key is configured)
// and the free DuckDuckGo Instant Answer API (the fallback) — and both
// normalize responses into the same ordered []Result shape.
//
// Design notes:
//   - The provider is selected once at construction (NewProvider), not
//     re-checked per call.
//   - Providers make exactly one attempt per call: no retries, no backoff.
//   - No logging in the library; callers decide how to report failures.
//     The orchestrating service treats any error as "no results" plus a
//     recoverable warning, so errors here never reach the renderer.
package search

import (
	"context"
	"net/http"

	"github.com/tbourn/go-research-backend/internal/config"
)

// Result is one normalized search hit.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Provider is the minimal interface implemented by all search providers.
// Search returns at most count results, possibly empty, in provider order.
type Provider interface {
	Search(ctx context.Context, query string, count int) ([]Result, error)
}

// Default field values applied when a provider omits a field.
const (
	defaultTitle   = "No title"
	defaultLink    = "#"
	defaultSnippet = "No description available"
)

// NewProvider selects the search strategy for the lifetime of the process:
// SerpAPI when cfg.APIKey is set, the DuckDuckGo Instant Answer API
// otherwise. A nil client falls back to http.DefaultClient.
func NewProvider(cfg config.SearchConfig, client *http.Client) Provider {
	if client == nil {
		client = http.DefaultClient
	}
	if cfg.APIKey != "" {
		return &SerpAPIProvider{
			BaseURL:  cfg.BaseURL,
			APIKey:   cfg.APIKey,
			Country:  cfg.Country,
			Language: cfg.Language,
			Client:   client,
		}
	}
	return &DuckDuckGoProvider{
		BaseURL: cfg.FallbackURL,
		Client:  client,
	}
}
