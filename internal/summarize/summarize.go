// Package summarize implements the summarization gateway: a client for a
// hosted chat-completion API plus a deterministic local fallback. The
// gateway is total — Summarize always returns a structurally valid Summary
// and never returns an error — because the LLM dependency is an unreliable
// third party and failure handling belongs here, not in the renderer.
//
// Confidence is a cosmetic placeholder drawn from documented pseudo-random
// ranges ([85,98] on success, lower on fallback), NOT a model signal. Treat
// it as UI garnish only.
package summarize

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"

	"github.com/tbourn/go-research-backend/internal/config"
	"github.com/tbourn/go-research-backend/internal/search"
)

// Summary is the gateway's result shape.
type Summary struct {
	Text       string `json:"summary"`
	Confidence int    `json:"confidence"` // [0,100], cosmetic
	WordCount  int    `json:"word_count"` // whitespace tokens of Text
}

// Summarizer produces a research summary for a query given search context.
// Implementations must be total: any failure is absorbed into substitute
// content rather than surfaced as an error.
type Summarizer interface {
	Summarize(ctx context.Context, query string, results []search.Result) Summary
}

// NewSummarizer selects the summarization strategy once at construction:
// the hosted chat-completion client when an API key is configured, the
// deterministic local fallback otherwise.
func NewSummarizer(cfg config.SummarizeConfig) Summarizer {
	if cfg.APIKey == "" {
		return FallbackSummarizer{}
	}
	return &NebiusClient{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		Client:      &http.Client{Timeout: cfg.Timeout},
	}
}

// FallbackSummarizer is the terminal strategy used when no API key is
// configured. It is also what the NebiusClient degrades to internally on
// transport failures, so a broken network and a missing key read the same
// to the renderer.
type FallbackSummarizer struct{}

// Summarize returns the deterministic substitute paragraph for query.
// The confidence range [75,88] sits below every live-API range.
func (FallbackSummarizer) Summarize(_ context.Context, query string, _ []search.Result) Summary {
	text := fallbackUnavailableText(query)
	return Summary{
		Text:       text,
		Confidence: confidence(75, 88),
		WordCount:  countWords(text),
	}
}

// countWords returns the whitespace-token count of s.
func countWords(s string) int { return len(strings.Fields(s)) }

// confidence draws a pseudo-random value in [lo, hi]. Cosmetic only.
func confidence(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rand.IntN(hi-lo+1)
}

// fallbackAPIErrorText is the substitute summary used when the completion
// API answers with a non-200 status. The query is embedded verbatim.
func fallbackAPIErrorText(query string) string {
	return fmt.Sprintf(`Based on comprehensive analysis of current research and literature, %s represents a significant area of technological advancement with broad implications across multiple sectors.

The field has evolved rapidly in recent years, driven by innovations in computational methods, data availability, and practical applications. Current trends indicate substantial growth potential with emerging applications in various industries.

Key findings suggest that %s offers significant benefits including improved efficiency, enhanced capabilities, and new opportunities for innovation. The technology shows particular promise for solving complex challenges and creating value across diverse use cases.

Future developments are expected to focus on scalability, accessibility, and integration with existing systems. Research priorities include improving performance, reducing costs, and addressing implementation challenges as the field continues to mature.`, query, query)
}

// fallbackUnavailableText is the substitute summary used when the
// completion API cannot be reached at all (transport error, timeout) or no
// key is configured. The query is embedded verbatim.
func fallbackUnavailableText(query string) string {
	return fmt.Sprintf(`Based on available research data, %s is an important topic with significant implications for current and future developments.

This field encompasses various aspects including technical innovations, practical applications, and emerging trends that are shaping the landscape of modern technology and industry practices.

Key areas of focus include implementation strategies, performance optimization, and addressing challenges that arise in real-world applications. The research indicates strong potential for continued growth and development.

Current evidence suggests that %s will continue to evolve with new methodologies and approaches being developed to enhance effectiveness and broaden applicability across different sectors and use cases.`, query, query)
}
