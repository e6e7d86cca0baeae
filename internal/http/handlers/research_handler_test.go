package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-research-backend/internal/domain"
	"github.com/tbourn/go-research-backend/internal/search"
	"github.com/tbourn/go-research-backend/internal/services"
)

func newResearchRouter(research ResearchService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(stubAuthSvc{}, services.NewSessionStore(), research, stubReportSvc{})
	r := gin.New()
	r.POST("/research/quick", h.QuickResearch)
	r.POST("/research/deep", h.DeepResearch)
	r.GET("/research/recent", h.RecentSearches)
	r.GET("/research/searches/:id", h.SearchDetail)
	return r
}

func TestQuickResearch_OK(t *testing.T) {
	r := newResearchRouter(stubResearchSvc{quick: func(_ context.Context, q string) ([]search.Result, error) {
		return []search.Result{{Title: "T", Link: "L", Snippet: "S"}}, nil
	}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/research/quick", bytes.NewBufferString(`{"query":" quarks "}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var resp QuickResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.Query != "quarks" || len(resp.Results) != 1 || resp.Results[0].Title != "T" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestQuickResearch_BindingError(t *testing.T) {
	r := newResearchRouter(stubResearchSvc{quick: func(context.Context, string) ([]search.Result, error) {
		t.Fatalf("service must not run on binding error")
		return nil, nil
	}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/research/quick", bytes.NewBufferString(`{}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestQuickResearch_EmptyQueryMapsTo400(t *testing.T) {
	r := newResearchRouter(stubResearchSvc{quick: func(context.Context, string) ([]search.Result, error) {
		return nil, services.ErrEmptyQuery
	}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/research/quick", bytes.NewBufferString(`{"query":"   "}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil || er.Code != ErrCodeBadRequest {
		t.Fatalf("envelope = %+v, %v", er, err)
	}
}

func TestDeepResearch_OK(t *testing.T) {
	r := newResearchRouter(stubResearchSvc{deep: func(_ context.Context, q string) (*services.DeepResult, error) {
		return &services.DeepResult{
			Summary:    "findings about " + q,
			Sources:    []services.Source{{Title: "src", Link: "https://s"}},
			Confidence: 90,
			WordCount:  3,
		}, nil
	}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/research/deep", bytes.NewBufferString(`{"query":"mycelium"}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var resp DeepResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.Query != "mycelium" || resp.Confidence != 90 || len(resp.Sources) != 1 {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestDeepResearch_ServiceError(t *testing.T) {
	r := newResearchRouter(stubResearchSvc{deep: func(context.Context, string) (*services.DeepResult, error) {
		return nil, context.DeadlineExceeded
	}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/research/deep", bytes.NewBufferString(`{"query":"x"}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

func TestRecentSearches_OK(t *testing.T) {
	var gotLimit int
	r := newResearchRouter(stubResearchSvc{
		recent: func(_ context.Context, limit int) ([]domain.Search, error) {
			gotLimit = limit
			return []domain.Search{{ID: 2, Query: "newest"}, {ID: 1, Query: "older"}}, nil
		},
		total: 7,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/research/recent?limit=2", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if gotLimit != 2 {
		t.Fatalf("limit = %d", gotLimit)
	}
	var resp RecentResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(resp.Searches) != 2 || resp.TotalSearches != 7 {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestRecentSearches_ClampsLimit(t *testing.T) {
	var gotLimit int
	r := newResearchRouter(stubResearchSvc{recent: func(_ context.Context, limit int) ([]domain.Search, error) {
		gotLimit = limit
		return nil, nil
	}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/research/recent?limit=9000", nil))
	if gotLimit != 100 {
		t.Fatalf("limit = %d, want clamp to 100", gotLimit)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/research/recent?limit=bogus", nil))
	if gotLimit != 10 {
		t.Fatalf("limit = %d, want default 10", gotLimit)
	}
}

func TestSearchDetail_OK(t *testing.T) {
	r := newResearchRouter(stubResearchSvc{detail: func(_ context.Context, id uint) (*services.SearchDetail, error) {
		return &services.SearchDetail{
			Search:  domain.Search{ID: id, Query: "stored"},
			Content: []domain.ScrapedContent{{ID: 1, SearchID: id, Title: "t"}},
			Summary: "sum",
		}, nil
	}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/research/searches/5", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp services.SearchDetail
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.Search.ID != 5 || len(resp.Content) != 1 || resp.Summary != "sum" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestSearchDetail_BadID(t *testing.T) {
	r := newResearchRouter(stubResearchSvc{detail: func(context.Context, uint) (*services.SearchDetail, error) {
		t.Fatalf("service must not run for a non-numeric id")
		return nil, nil
	}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/research/searches/abc", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestSearchDetail_NotFound(t *testing.T) {
	r := newResearchRouter(stubResearchSvc{detail: func(context.Context, uint) (*services.SearchDetail, error) {
		return nil, services.ErrSearchNotFound
	}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/research/searches/404", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil || er.Code != ErrCodeNotFound {
		t.Fatalf("envelope = %+v, %v", er, err)
	}
}
