// Report HTTP handlers.
//
// This file exposes the report export endpoints:
//   - POST /reports         (render a research result to pdf/txt/json)
//   - GET  /reports/history (entries recorded for the session user)
//
// Both endpoints require a logged-in session; RequireSession middleware
// enforces that before these handlers run.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-research-backend/internal/domain"
	"github.com/tbourn/go-research-backend/internal/http/middleware"
	"github.com/tbourn/go-research-backend/internal/services"
)

//
// DTOs
//

// CreateReportRequest is the JSON payload for report generation.
type CreateReportRequest struct {
	Query      string            `json:"query" binding:"required" example:"quantum computing"`
	Summary    string            `json:"summary" binding:"required"`
	Confidence int               `json:"confidence" example:"91"`
	Sources    []services.Source `json:"sources"`
	Format     string            `json:"format" binding:"required" example:"pdf" enums:"pdf,txt,json"`
}

// CreateReportResponse returns the path of the written artifact.
type CreateReportResponse struct {
	Path string `json:"path" example:"reports/alice_2026-08-30_14-02-11.pdf"`
}

// ReportHistoryResponse wraps the per-user report history listing.
type ReportHistoryResponse struct {
	Reports []domain.ReportEntry `json:"reports"`
}

//
// Handlers
//

// CreateReport godoc
// @ID          createReport
// @Summary     Export a report
// @Description Renders a research result as a PDF, TXT, or JSON artifact and records it in the session user's history.
// @Tags        Reports
// @Accept      json
// @Produce     json
//
// @Param       X-Session-Token  header  string  true  "Session token"
// @Param       body             body    handlers.CreateReportRequest  true  "Report payload"
//
// @Success     201  {object}  handlers.CreateReportResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "No valid session"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /reports [post]
func (h *Handlers) CreateReport(c *gin.Context) {
	username, okUser := middleware.SessionUser(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "valid session token required")
		return
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "query, summary, and format required")
		return
	}

	path, err := h.reportSvc.Generate(c.Request.Context(), username, strings.TrimSpace(req.Query),
		services.ReportData{
			Summary:    req.Summary,
			Confidence: req.Confidence,
			Sources:    req.Sources,
		}, req.Format)
	if err != nil {
		if errors.Is(err, services.ErrUnknownFormat) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "format must be pdf, txt, or json")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeReportFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, CreateReportResponse{Path: path})
}

// ReportHistory godoc
// @ID          reportHistory
// @Summary     Report history
// @Description Lists the report artifacts previously generated by the session user, oldest first.
// @Tags        Reports
// @Produce     json
//
// @Param       X-Session-Token  header  string  true  "Session token"
//
// @Success     200  {object}  handlers.ReportHistoryResponse
// @Failure     401  {object}  handlers.ErrorResponse  "No valid session"
// @Router      /reports/history [get]
func (h *Handlers) ReportHistory(c *gin.Context) {
	username, okUser := middleware.SessionUser(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "valid session token required")
		return
	}

	reports := h.reportSvc.UserHistory(username)
	if reports == nil {
		reports = []domain.ReportEntry{}
	}
	ok(c, http.StatusOK, ReportHistoryResponse{Reports: reports})
}
