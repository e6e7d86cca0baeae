// SerpAPI provider: Google results through serpapi.com.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// SerpAPIProvider queries serpapi.com's Google engine and maps its
// organic_results array into normalized Results.
type SerpAPIProvider struct {
	BaseURL  string // e.g. "https://serpapi.com/search"
	APIKey   string
	Country  string // "gl" query parameter
	Language string // "hl" query parameter
	Client   *http.Client
}

// serpResponse models the subset of the SerpAPI payload the gateway reads.
type serpResponse struct {
	OrganicResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}

// Search issues a single GET to the provider and returns up to count
// normalized results. Missing fields are substituted with defaults; a
// non-200 status or transport failure is returned as an error for the
// caller to downgrade to "no results".
func (p *SerpAPIProvider) Search(ctx context.Context, query string, count int) ([]Result, error) {
	if count < 1 {
		count = 1
	}

	q := url.Values{}
	q.Set("engine", "google")
	q.Set("q", query)
	q.Set("api_key", p.APIKey)
	q.Set("num", strconv.Itoa(count))
	q.Set("gl", p.Country)
	q.Set("hl", p.Language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serpapi: unexpected status %d", resp.StatusCode)
	}

	var body serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("serpapi: decode response: %w", err)
	}

	out := make([]Result, 0, count)
	for _, r := range body.OrganicResults {
		if len(out) >= count {
			break
		}
		res := Result{Title: r.Title, Link: r.Link, Snippet: r.Snippet}
		if res.Title == "" {
			res.Title = defaultTitle
		}
		if res.Link == "" {
			res.Link = defaultLink
		}
		if res.Snippet == "" {
			res.Snippet = defaultSnippet
		}
		out = append(out, res)
	}
	return out, nil
}
