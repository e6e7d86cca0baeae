// Research HTTP handlers.
//
// This file exposes the research endpoints:
//   - POST /research/quick          (search only, never-empty results)
//   - POST /research/deep          (search + summary + cited sources)
//   - GET  /research/recent        (recent search events, ETag support)
//   - GET  /research/searches/{id} (stored search event detail)
//
// Handlers are transport-thin: they validate input, call application
// services, and translate results into HTTP responses (including
// conditional responses on the recent listing).
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-research-backend/internal/domain"
	"github.com/tbourn/go-research-backend/internal/repo"
	"github.com/tbourn/go-research-backend/internal/search"
	"github.com/tbourn/go-research-backend/internal/services"
	"github.com/tbourn/go-research-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// ResearchService defines the research operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ResearchService interface {
	// Quick returns search results for a query, never an empty slice.
	Quick(ctx context.Context, query string) ([]search.Result, error)
	// Deep returns a summarized research result with cited sources.
	Deep(ctx context.Context, query string) (*services.DeepResult, error)
	// RecentSearches returns the newest search events, newest first.
	RecentSearches(ctx context.Context, limit int) ([]domain.Search, error)
	// Detail returns a stored search event with snippets and summary.
	Detail(ctx context.Context, id uint) (*services.SearchDetail, error)
	// TotalSearches reports invocations served since startup.
	TotalSearches() int64
}

// ReportService defines report export operations.
type ReportService interface {
	// Generate writes a report artifact and returns its path.
	Generate(ctx context.Context, username, query string, data services.ReportData, format string) (string, error)
	// UserHistory lists report entries recorded for username.
	UserHistory(username string) []domain.ReportEntry
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for auth, research, and reports.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	authSvc     AuthService
	sessions    SessionManager
	researchSvc ResearchService
	reportSvc   ReportService
}

// New constructs a Handlers instance bound to the given services.
func New(authSvc AuthService, sessions SessionManager, researchSvc ResearchService, reportSvc ReportService) *Handlers {
	return &Handlers{
		authSvc:     authSvc,
		sessions:    sessions,
		researchSvc: researchSvc,
		reportSvc:   reportSvc,
	}
}

//
// DTOs
//

// ResearchRequest is the JSON payload for quick and deep research.
type ResearchRequest struct {
	Query string `json:"query" binding:"required" example:"quantum computing"`
}

// QuickResponse wraps the results of a quick research run.
type QuickResponse struct {
	Query   string          `json:"query"`
	Results []search.Result `json:"results"`
}

// DeepResponse wraps the outcome of a deep research run.
type DeepResponse struct {
	Query      string            `json:"query"`
	Summary    string            `json:"summary"`
	Sources    []services.Source `json:"sources"`
	Confidence int               `json:"confidence"`
	WordCount  int               `json:"word_count"`
}

// RecentResponse wraps the recent search events listing.
type RecentResponse struct {
	Searches      []domain.Search `json:"searches"`
	TotalSearches int64           `json:"total_searches"`
}

//
// Helpers
//

// clampLimit parses and bounds the limit query param.
func clampLimit(c *gin.Context) int {
	const (
		defaultLimit = 10
		maxLimit     = 100
	)
	limit := utils.AtoiDefault(c.Query("limit"), defaultLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit
}

//
// Handlers
//

// QuickResearch godoc
// @ID          quickResearch
// @Summary     Quick research
// @Description Runs a search-only research pass. The result list is never empty: when the provider yields nothing, a placeholder entry referencing the query is returned.
// @Tags        Research
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.ResearchRequest  true  "Research query"
//
// @Success     200  {object}  handlers.QuickResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /research/quick [post]
func (h *Handlers) QuickResearch(c *gin.Context) {
	var req ResearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "query required")
		return
	}

	results, err := h.researchSvc.Quick(c.Request.Context(), req.Query)
	if err != nil {
		if errors.Is(err, services.ErrEmptyQuery) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "query is empty")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeResearchFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, QuickResponse{Query: strings.TrimSpace(req.Query), Results: results})
}

// DeepResearch godoc
// @ID          deepResearch
// @Summary     Deep research
// @Description Runs a full research pass: search, summarization, and cited sources. Always returns a summary; confidence 0 indicates the search step found nothing.
// @Tags        Research
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.ResearchRequest  true  "Research query"
//
// @Success     200  {object}  handlers.DeepResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /research/deep [post]
func (h *Handlers) DeepResearch(c *gin.Context) {
	var req ResearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "query required")
		return
	}

	res, err := h.researchSvc.Deep(c.Request.Context(), req.Query)
	if err != nil {
		if errors.Is(err, services.ErrEmptyQuery) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "query is empty")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeResearchFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, DeepResponse{
		Query:      strings.TrimSpace(req.Query),
		Summary:    res.Summary,
		Sources:    res.Sources,
		Confidence: res.Confidence,
		WordCount:  res.WordCount,
	})
}

// RecentSearches godoc
// @ID          recentSearches
// @Summary     Recent searches
// @Description Returns the newest search events plus the running total served since startup. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Research
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
// @Param       limit          query   int     false "Maximum events returned"      minimum(1) maximum(100) default(10)
//
// @Success     200  {object} handlers.RecentResponse
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /research/recent [get]
func (h *Handlers) RecentSearches(c *gin.Context) {
	ctx := c.Request.Context()
	limit := clampLimit(c)

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, okSvc := h.researchSvc.(*services.ResearchService); okSvc {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.SearchesStats(ctx, db)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"searches:%d:%d:%d"`, count, ts, limit)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, err := h.researchSvc.RecentSearches(ctx, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, RecentResponse{
		Searches:      items,
		TotalSearches: h.researchSvc.TotalSearches(),
	})
}

// SearchDetail godoc
// @ID          searchDetail
// @Summary     Search event detail
// @Description Returns a stored search event with its snippet rows and the latest summary, if any.
// @Tags        Research
// @Produce     json
//
// @Param       id  path  int  true  "Search event ID"  minimum(1)
//
// @Success     200  {object}  services.SearchDetail
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Search not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /research/searches/{id} [get]
func (h *Handlers) SearchDetail(c *gin.Context) {
	id, okID := utils.ParseUint(c.Param("id"))
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "search id must be a positive integer")
		return
	}

	detail, err := h.researchSvc.Detail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrSearchNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "search not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, detail)
}
