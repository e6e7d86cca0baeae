// DuckDuckGo Instant Answer provider: the free fallback used when no
// SerpAPI key is configured.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// DuckDuckGoProvider queries the DuckDuckGo Instant Answer API and maps its
// RelatedTopics entries into normalized Results. The API returns topic
// blurbs rather than ranked pages, so the topic text serves as both title
// and snippet.
type DuckDuckGoProvider struct {
	BaseURL string // e.g. "https://api.duckduckgo.com/"
	Client  *http.Client
}

// ddgResponse models the subset of the Instant Answer payload the gateway
// reads. Topics missing either field are skipped.
type ddgResponse struct {
	RelatedTopics []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
	} `json:"RelatedTopics"`
}

// Search issues a single GET and returns up to count results. A non-200
// status or transport failure is returned as an error for the caller to
// downgrade to "no results".
func (p *DuckDuckGoProvider) Search(ctx context.Context, query string, count int) ([]Result, error) {
	if count < 1 {
		count = 1
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")

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
		return nil, fmt.Errorf("duckduckgo: unexpected status %d", resp.StatusCode)
	}

	var body ddgResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("duckduckgo: decode response: %w", err)
	}

	out := make([]Result, 0, count)
	for _, t := range body.RelatedTopics {
		if len(out) >= count {
			break
		}
		if t.Text == "" || t.FirstURL == "" {
			continue
		}
		out = append(out, Result{Title: t.Text, Link: t.FirstURL, Snippet: t.Text})
	}
	return out, nil
}
