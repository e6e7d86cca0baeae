// Package services – ReportService
//
// This file implements report export: rendering a finished research result
// to a PDF, TXT, or JSON artifact in the reports directory and recording
// the artifact in the per-user flat-file history. File names are
// <username>_<timestamp>.<ext> so artifacts sort chronologically per user.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tbourn/go-research-backend/internal/domain"
	"github.com/tbourn/go-research-backend/internal/repo"
)

// Report formats accepted by Generate.
const (
	FormatPDF  = "pdf"
	FormatTXT  = "txt"
	FormatJSON = "json"
)

// ReportData is the research result being exported.
type ReportData struct {
	Summary    string   `json:"summary"`
	Confidence int      `json:"confidence"`
	Sources    []Source `json:"sources"`
}

// reportExport is the JSON export envelope.
type reportExport struct {
	Query      string   `json:"query"`
	Summary    string   `json:"summary"`
	Confidence int      `json:"confidence"`
	Sources    []Source `json:"sources"`
	Timestamp  string   `json:"timestamp"`
}

// ReportService writes export artifacts and appends history entries.
type ReportService struct {
	// ReportsDir is created on first use if absent.
	ReportsDir string
	// History is the flat per-user report index.
	History *repo.HistoryStore

	titler cases.Caser
}

// NewReportService constructs a ReportService writing to dir and recording
// entries in history.
func NewReportService(dir string, history *repo.HistoryStore) *ReportService {
	return &ReportService{
		ReportsDir: dir,
		History:    history,
		titler:     cases.Title(language.English),
	}
}

// Generate renders data as the requested format, writes it under the
// reports directory, appends a history entry for username, and returns the
// artifact path. Format must be one of pdf, txt, or json
// (ErrUnknownFormat otherwise).
func (s *ReportService) Generate(ctx context.Context, username, query string, data ReportData, format string) (string, error) {
	_ = ctx // rendering is local; kept for interface symmetry with the gateways

	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case FormatPDF, FormatTXT, FormatJSON:
	default:
		return "", ErrUnknownFormat
	}

	if err := os.MkdirAll(s.ReportsDir, 0o755); err != nil {
		return "", err
	}

	now := time.Now()
	path := filepath.Join(s.ReportsDir,
		fmt.Sprintf("%s_%s.%s", username, now.Format("2006-01-02_15-04-05"), format))

	var err error
	switch format {
	case FormatPDF:
		err = s.writePDF(path, query, data)
	case FormatTXT:
		err = writeTXT(path, query, data, now)
	case FormatJSON:
		err = writeJSON(path, query, data, now)
	}
	if err != nil {
		return "", err
	}

	if err := s.History.Append(domain.ReportEntry{
		User:  username,
		Title: query,
		Path:  path,
		Date:  now.Format("2006-01-02 15:04"),
	}); err != nil {
		return "", err
	}
	return path, nil
}

// UserHistory returns the report entries recorded for username.
func (s *ReportService) UserHistory(username string) []domain.ReportEntry {
	return s.History.ForUser(username)
}

// writePDF renders the report as a single-column letter-format PDF.
func (s *ReportService) writePDF(path, query string, data ReportData) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle("Research Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Research Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 8, "Topic: "+s.titler.String(query), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "Summary: "+data.Summary, "", "L", false)
	pdf.Ln(4)

	if len(data.Sources) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Sources:", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, src := range data.Sources {
			pdf.MultiCell(0, 5, fmt.Sprintf("- %s (%s)", src.Title, src.Link), "", "L", false)
			pdf.Ln(1)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// writeTXT renders the plain-text export template.
func writeTXT(path, query string, data ReportData, now time.Time) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Research Report: %s\n", query)
	fmt.Fprintf(&b, "Generated: %s\n\n", now.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "SUMMARY:\n%s\n\n", data.Summary)
	fmt.Fprintf(&b, "CONFIDENCE: %d%%\n\n", data.Confidence)
	b.WriteString("SOURCES:\n")
	for i, src := range data.Sources {
		fmt.Fprintf(&b, "%d. %s\n   %s\n", i+1, src.Title, src.Link)
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// writeJSON renders the machine-readable export envelope.
func writeJSON(path, query string, data ReportData, now time.Time) error {
	sources := data.Sources
	if sources == nil {
		sources = []Source{}
	}
	out, err := json.MarshalIndent(reportExport{
		Query:      query,
		Summary:    data.Summary,
		Confidence: data.Confidence,
		Sources:    sources,
		Timestamp:  now.Format(time.RFC3339),
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}
