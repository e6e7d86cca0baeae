package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tbourn/go-research-backend/internal/domain"
	"github.com/tbourn/go-research-backend/internal/search"
	"github.com/tbourn/go-research-backend/internal/summarize"
)

// ---- gateway stubs ----

type stubProvider struct {
	results []search.Result
	err     error
	gotQ    string
	gotN    int
}

func (s *stubProvider) Search(_ context.Context, query string, count int) ([]search.Result, error) {
	s.gotQ, s.gotN = query, count
	return s.results, s.err
}

type stubSummarizer struct {
	sum    summarize.Summary
	called bool
}

func (s *stubSummarizer) Summarize(_ context.Context, _ string, _ []search.Result) summarize.Summary {
	s.called = true
	return s.sum
}

// ---- quick ----

func TestQuick_EmptyQuery(t *testing.T) {
	svc := NewResearchService(newTestDB(t), &stubProvider{}, &stubSummarizer{})
	if _, err := svc.Quick(context.Background(), "   "); !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestQuick_RecordsResults(t *testing.T) {
	db := newTestDB(t)
	p := &stubProvider{results: []search.Result{
		{Title: "A", Link: "https://a", Snippet: "two words"},
		{Title: "B", Link: "https://b", Snippet: "one two three"},
	}}
	svc := NewResearchService(db, p, &stubSummarizer{})

	results, err := svc.Quick(context.Background(), " lighthouses ")
	if err != nil {
		t.Fatalf("quick: %v", err)
	}
	if p.gotQ != "lighthouses" || p.gotN != 5 {
		t.Fatalf("provider called with %q, %d", p.gotQ, p.gotN)
	}
	if len(results) != 2 {
		t.Fatalf("expected provider results returned as-is, got %d", len(results))
	}

	// One search event with the provider count, one snippet row per result.
	var ev domain.Search
	if err := db.First(&ev).Error; err != nil {
		t.Fatalf("search event not recorded: %v", err)
	}
	if ev.Query != "lighthouses" || ev.ResultsCount != 2 {
		t.Fatalf("event = %+v", ev)
	}
	var rows []domain.ScrapedContent
	if err := db.Order("id ASC").Find(&rows).Error; err != nil {
		t.Fatalf("content rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 snippet rows, got %d", len(rows))
	}
	// Word count is computed from the snippet text, never assumed.
	if rows[0].WordCount != 2 || rows[1].WordCount != 3 {
		t.Fatalf("word counts = %d, %d", rows[0].WordCount, rows[1].WordCount)
	}
	if svc.TotalSearches() != 1 {
		t.Fatalf("total = %d", svc.TotalSearches())
	}
}

func TestQuick_EmptySearchGetsPlaceholder(t *testing.T) {
	db := newTestDB(t)
	svc := NewResearchService(db, &stubProvider{results: nil}, &stubSummarizer{})

	results, err := svc.Quick(context.Background(), "obscure topic")
	if err != nil {
		t.Fatalf("quick: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("placeholder expected, got %d results", len(results))
	}
	if !strings.Contains(results[0].Title, "obscure topic") || !strings.Contains(results[0].Snippet, "obscure topic") {
		t.Fatalf("placeholder does not reference the query: %+v", results[0])
	}

	// The stored event records zero results, not the placeholder.
	var ev domain.Search
	if err := db.First(&ev).Error; err != nil {
		t.Fatalf("event: %v", err)
	}
	if ev.ResultsCount != 0 {
		t.Fatalf("results_count = %d, want 0", ev.ResultsCount)
	}
	var n int64
	db.Model(&domain.ScrapedContent{}).Count(&n)
	if n != 0 {
		t.Fatalf("placeholder must not be persisted, found %d rows", n)
	}
}

func TestQuick_ProviderErrorDowngraded(t *testing.T) {
	svc := NewResearchService(newTestDB(t), &stubProvider{err: errors.New("boom")}, &stubSummarizer{})

	results, err := svc.Quick(context.Background(), "flaky")
	if err != nil {
		t.Fatalf("provider error must not surface: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected placeholder after provider failure, got %d", len(results))
	}
}

// ---- deep ----

func TestDeep_EmptyQuery(t *testing.T) {
	svc := NewResearchService(newTestDB(t), &stubProvider{}, &stubSummarizer{})
	if _, err := svc.Deep(context.Background(), ""); !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestDeep_Success(t *testing.T) {
	db := newTestDB(t)
	results := []search.Result{
		{Title: "r1", Link: "https://1", Snippet: "s"},
		{Title: "r2", Link: "https://2", Snippet: "s"},
		{Title: "r3", Link: "https://3", Snippet: "s"},
		{Title: "r4", Link: "https://4", Snippet: "s"},
		{Title: "r5", Link: "https://5", Snippet: "s"},
		{Title: "r6", Link: "https://6", Snippet: "s"},
	}
	p := &stubProvider{results: results}
	sm := &stubSummarizer{sum: summarize.Summary{Text: "four words right here", Confidence: 91, WordCount: 4}}
	svc := NewResearchService(db, p, sm)

	res, err := svc.Deep(context.Background(), "coral reefs")
	if err != nil {
		t.Fatalf("deep: %v", err)
	}
	if p.gotN != 8 {
		t.Fatalf("deep should request 8 results, got %d", p.gotN)
	}
	if !sm.called {
		t.Fatalf("summarizer not invoked")
	}
	if res.Summary != "four words right here" || res.Confidence != 91 || res.WordCount != 4 {
		t.Fatalf("result = %+v", res)
	}
	// Sources capped at the first five.
	if len(res.Sources) != 5 || res.Sources[0].Title != "r1" || res.Sources[4].Title != "r5" {
		t.Fatalf("sources = %+v", res.Sources)
	}

	// Summary row persisted alongside the event.
	var sum domain.Summary
	if err := db.First(&sum).Error; err != nil {
		t.Fatalf("summary row: %v", err)
	}
	if sum.Summary != "four words right here" {
		t.Fatalf("stored summary = %q", sum.Summary)
	}
}

func TestDeep_EmptySearchSkipsSummarizer(t *testing.T) {
	db := newTestDB(t)
	sm := &stubSummarizer{sum: summarize.Summary{Text: "should not appear"}}
	svc := NewResearchService(db, &stubProvider{results: nil}, sm)

	res, err := svc.Deep(context.Background(), "void")
	if err != nil {
		t.Fatalf("deep: %v", err)
	}
	if sm.called {
		t.Fatalf("summarizer must not run when search is empty")
	}
	if res.Confidence != 0 {
		t.Fatalf("confidence = %d, want 0", res.Confidence)
	}
	if res.Sources == nil || len(res.Sources) != 0 {
		t.Fatalf("sources must be an empty slice, got %#v", res.Sources)
	}
	if !strings.Contains(res.Summary, "void") || !strings.Contains(res.Summary, "Unable to retrieve current data") {
		t.Fatalf("summary = %q", res.Summary)
	}
	if res.WordCount != len(strings.Fields(res.Summary)) {
		t.Fatalf("word count %d != token count", res.WordCount)
	}

	// The event is still recorded, with no summary row.
	var ev domain.Search
	if err := db.First(&ev).Error; err != nil {
		t.Fatalf("event: %v", err)
	}
	if ev.ResultsCount != 0 {
		t.Fatalf("results_count = %d", ev.ResultsCount)
	}
	var n int64
	db.Model(&domain.Summary{}).Count(&n)
	if n != 0 {
		t.Fatalf("no summary row expected, found %d", n)
	}
}

// ---- retrieval ----

func TestRecentSearchesAndDetail(t *testing.T) {
	db := newTestDB(t)
	p := &stubProvider{results: []search.Result{{Title: "t", Link: "l", Snippet: "a b"}}}
	sm := &stubSummarizer{sum: summarize.Summary{Text: "stored summary", Confidence: 90, WordCount: 2}}
	svc := NewResearchService(db, p, sm)

	if _, err := svc.Deep(context.Background(), "first"); err != nil {
		t.Fatalf("seed deep: %v", err)
	}
	if _, err := svc.Quick(context.Background(), "second"); err != nil {
		t.Fatalf("seed quick: %v", err)
	}

	recent, err := svc.RecentSearches(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 || recent[0].Query != "second" {
		t.Fatalf("recent = %+v", recent)
	}

	detail, err := svc.Detail(context.Background(), recent[1].ID)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.Search.Query != "first" || len(detail.Content) != 1 || detail.Summary != "stored summary" {
		t.Fatalf("detail = %+v", detail)
	}

	// Quick runs have no summary; field stays empty.
	quickDetail, err := svc.Detail(context.Background(), recent[0].ID)
	if err != nil {
		t.Fatalf("detail quick: %v", err)
	}
	if quickDetail.Summary != "" {
		t.Fatalf("quick detail summary = %q", quickDetail.Summary)
	}

	if _, err := svc.Detail(context.Background(), 9999); !errors.Is(err, ErrSearchNotFound) {
		t.Fatalf("expected ErrSearchNotFound, got %v", err)
	}
}

func TestTotalSearches_CountsEveryInvocation(t *testing.T) {
	svc := NewResearchService(newTestDB(t), &stubProvider{}, &stubSummarizer{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Quick(ctx, "q"); err != nil {
			t.Fatalf("quick: %v", err)
		}
	}
	if _, err := svc.Deep(ctx, "q"); err != nil {
		t.Fatalf("deep: %v", err)
	}
	if got := svc.TotalSearches(); got != 4 {
		t.Fatalf("total = %d, want 4", got)
	}
}
