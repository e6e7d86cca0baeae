// Package services – ResearchService
//
// This file implements the research orchestrator. It composes the search
// gateway and the summarization gateway into the two renderer-facing
// operations, "quick" and "deep" research, records every invocation as a
// search event (plus snippet and summary rows) through the persistence
// layer, and maintains the running total-searches counter.
//
// Failure posture: provider errors are downgraded to "no results" with a
// warning log; the summarizer is total by contract. The only errors this
// service returns are invalid input and storage failures.
//
// Observability: public methods are OpenTelemetry-instrumented, and
// invocations are counted by mode/outcome in Prometheus.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-research-backend/internal/domain"
	"github.com/tbourn/go-research-backend/internal/repo"
	"github.com/tbourn/go-research-backend/internal/search"
	"github.com/tbourn/go-research-backend/internal/summarize"
)

// Result counts requested from the provider per mode.
const (
	quickResultCount = 5
	deepResultCount  = 8
	maxDeepSources   = 5
)

// researchRuns counts orchestrator invocations by mode and outcome
// ("ok" or "no_results"). Label cardinality is fixed.
var researchRuns = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "research_invocations_total",
		Help: "Total number of research invocations.",
	},
	[]string{"mode", "outcome"},
)

func init() {
	prometheus.MustRegister(researchRuns)
}

// Source is one cited search result in a deep-research report.
type Source struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// DeepResult is the assembled outcome of a deep research run.
type DeepResult struct {
	Summary    string   `json:"summary"`
	Sources    []Source `json:"sources"`
	Confidence int      `json:"confidence"`
	WordCount  int      `json:"word_count"`
}

// SearchDetail bundles a stored search event with its snippet rows and the
// latest summary (empty string when none was generated).
type SearchDetail struct {
	Search  domain.Search           `json:"search"`
	Content []domain.ScrapedContent `json:"content"`
	Summary string                  `json:"summary"`
}

// ResearchService orchestrates search, summarization, and persistence.
// Operations within one invocation run strictly sequentially; the two
// gateway calls of a deep run never overlap.
type ResearchService struct {
	DB         *gorm.DB
	Provider   search.Provider
	Summarizer summarize.Summarizer

	total atomic.Int64
}

// NewResearchService constructs a ResearchService.
func NewResearchService(db *gorm.DB, p search.Provider, s summarize.Summarizer) *ResearchService {
	return &ResearchService{DB: db, Provider: p, Summarizer: s}
}

// Quick runs a quick search: up to five provider results, recorded as a
// search event with snippet rows. When the provider yields nothing (or
// fails), a single synthetic placeholder result referencing the query is
// substituted so the returned slice is never empty. No summarization.
func (s *ResearchService) Quick(ctx context.Context, query string) ([]search.Result, error) {
	tr := otel.Tracer("services/ResearchService")
	ctx, span := tr.Start(ctx, "Quick",
		trace.WithAttributes(attribute.String("query", query)),
	)
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	results := s.searchOrEmpty(ctx, query, quickResultCount)
	if err := s.record(ctx, query, results, ""); err != nil {
		return nil, err
	}

	if len(results) == 0 {
		researchRuns.WithLabelValues("quick", "no_results").Inc()
		return []search.Result{placeholderResult(query)}, nil
	}
	researchRuns.WithLabelValues("quick", "ok").Inc()
	return results, nil
}

// Deep runs a deep research pass: up to eight provider results, a summary
// built from them, and the first five results cited as sources. When the
// search step yields nothing the summarizer is not invoked at all and a
// zero-confidence explanatory result with no sources is returned.
func (s *ResearchService) Deep(ctx context.Context, query string) (*DeepResult, error) {
	tr := otel.Tracer("services/ResearchService")
	ctx, span := tr.Start(ctx, "Deep",
		trace.WithAttributes(attribute.String("query", query)),
	)
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	results := s.searchOrEmpty(ctx, query, deepResultCount)
	if len(results) == 0 {
		if err := s.record(ctx, query, nil, ""); err != nil {
			return nil, err
		}
		researchRuns.WithLabelValues("deep", "no_results").Inc()
		text := fmt.Sprintf("Unable to retrieve current data for %s. Please check your internet connection and API keys.", query)
		return &DeepResult{
			Summary:    text,
			Sources:    []Source{},
			Confidence: 0,
			WordCount:  len(strings.Fields(text)),
		}, nil
	}

	sum := s.Summarizer.Summarize(ctx, query, results)
	if err := s.record(ctx, query, results, sum.Text); err != nil {
		return nil, err
	}
	researchRuns.WithLabelValues("deep", "ok").Inc()

	sources := make([]Source, 0, maxDeepSources)
	for i, r := range results {
		if i >= maxDeepSources {
			break
		}
		sources = append(sources, Source{Title: r.Title, Link: r.Link})
	}

	return &DeepResult{
		Summary:    sum.Text,
		Sources:    sources,
		Confidence: sum.Confidence,
		WordCount:  sum.WordCount,
	}, nil
}

// RecentSearches returns the most recent limit search events, newest first.
func (s *ResearchService) RecentSearches(ctx context.Context, limit int) ([]domain.Search, error) {
	return repo.ListRecentSearches(ctx, s.DB, limit)
}

// Detail returns a stored search event with its snippets and latest
// summary. Returns ErrSearchNotFound when id does not exist.
func (s *ResearchService) Detail(ctx context.Context, id uint) (*SearchDetail, error) {
	ev, err := repo.GetSearch(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrSearchNotFound
		}
		return nil, err
	}
	content, err := repo.ListScrapedContent(ctx, s.DB, ev.ID)
	if err != nil {
		return nil, err
	}
	detail := &SearchDetail{Search: *ev, Content: content}
	if sum, err := repo.LatestSummary(ctx, s.DB, ev.ID); err == nil {
		detail.Summary = sum.Summary
	}
	return detail, nil
}

// TotalSearches returns the number of research invocations served by this
// process since startup.
func (s *ResearchService) TotalSearches() int64 {
	return s.total.Load()
}

// searchOrEmpty asks the provider for results, downgrading any error to an
// empty slice with a warning. Errors never cross this boundary.
func (s *ResearchService) searchOrEmpty(ctx context.Context, query string, count int) []search.Result {
	results, err := s.Provider.Search(ctx, query, count)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("search provider failed; continuing with no results")
		return nil
	}
	return results
}

// record persists one invocation: the search event (results_count is the
// provider count, not the padded renderer view), one snippet row per
// result, and a summary row when summaryText is non-empty. It also bumps
// the running total.
func (s *ResearchService) record(ctx context.Context, query string, results []search.Result, summaryText string) error {
	s.total.Add(1)

	ev, err := repo.CreateSearch(ctx, s.DB, query, len(results))
	if err != nil {
		return err
	}
	for _, r := range results {
		if _, err := repo.CreateScrapedContent(ctx, s.DB, ev.ID, r.Title, r.Link, r.Snippet, len(strings.Fields(r.Snippet))); err != nil {
			return err
		}
	}
	if summaryText != "" {
		if _, err := repo.CreateSummary(ctx, s.DB, ev.ID, summaryText); err != nil {
			return err
		}
	}
	return nil
}

// placeholderResult is the synthetic result substituted when a quick
// search comes back empty, so the renderer always has something to show.
func placeholderResult(query string) search.Result {
	return search.Result{
		Title:   fmt.Sprintf("Understanding %s: A Comprehensive Overview", query),
		Link:    "https://example.com/article1",
		Snippet: fmt.Sprintf("This article provides detailed insights into %s and its applications.", query),
	}
}
