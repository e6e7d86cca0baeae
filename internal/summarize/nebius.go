// Nebius chat-completion client.
package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/tbourn/go-research-backend/internal/search"
)

// maxContextSnippets caps how many search results are embedded in the
// prompt. More adds token cost without improving the summary.
const maxContextSnippets = 3

// NebiusClient calls a hosted OpenAI-style chat-completion endpoint to
// generate research summaries. Every failure path degrades to deterministic
// substitute content; Summarize never errors and never panics past this
// boundary.
type NebiusClient struct {
	BaseURL     string // chat/completions endpoint
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Client      *http.Client // carries the 30s request timeout
}

// chatRequest is the JSON body of a chat-completion call.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse models the subset of the completion payload the gateway reads.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Summarize builds the fixed prompt from the query and up to the first
// three context snippets, issues a single POST, and returns the assistant
// text on success. Failure branches:
//   - transport error / timeout: unavailable template, confidence [75,88]
//   - non-200 status or unusable payload: API-error template, confidence [80,92]
//
// On success confidence is drawn from [85,98]. WordCount is always computed
// from the returned text.
func (c *NebiusClient) Summarize(ctx context.Context, query string, results []search.Result) Summary {
	body, err := json.Marshal(chatRequest{
		Model:       c.Model,
		Messages:    []chatMessage{{Role: "user", Content: buildPrompt(query, results)}},
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
	})
	if err != nil {
		return fallbackSummary(fallbackUnavailableText(query), 75, 88)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return fallbackSummary(fallbackUnavailableText(query), 75, 88)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return fallbackSummary(fallbackUnavailableText(query), 75, 88)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fallbackSummary(fallbackAPIErrorText(query), 80, 92)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || len(out.Choices) == 0 {
		return fallbackSummary(fallbackAPIErrorText(query), 80, 92)
	}

	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return fallbackSummary(fallbackAPIErrorText(query), 80, 92)
	}
	return Summary{
		Text:       text,
		Confidence: confidence(85, 98),
		WordCount:  countWords(text),
	}
}

// fallbackSummary wraps a substitute text with a confidence from [lo,hi].
func fallbackSummary(text string, lo, hi int) Summary {
	return Summary{
		Text:       text,
		Confidence: confidence(lo, hi),
		WordCount:  countWords(text),
	}
}

// buildPrompt renders the fixed summary-request template: the query, a
// numbered context block of up to maxContextSnippets results, and the
// formatting instructions.
func buildPrompt(query string, results []search.Result) string {
	var ctxBlock strings.Builder
	fmt.Fprintf(&ctxBlock, "Query: %s\n\nSearch Results:\n", query)
	for i, r := range results {
		if i >= maxContextSnippets {
			break
		}
		fmt.Fprintf(&ctxBlock, "%d. %s: %s\n", i+1, r.Title, r.Snippet)
	}

	return fmt.Sprintf(`Based on the following search results, provide a comprehensive research summary about %q.

%s

Please provide:
1. A detailed summary (200-300 words)
2. Key findings and insights
3. Current trends and developments
4. Practical applications

Format your response as a well-structured research summary.`, query, ctxBlock.String())
}
