// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for search events,
// their scraped snippet content, and generated summaries.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only append-only
// inserts and query composition.
//
// Error semantics:
//   - When a search is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// The store is append-only by design: no update or delete function exists
// for any of these tables.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-research-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateSearch inserts a new search event and returns it with the
// auto-assigned surrogate key. CreatedAt is set to UTC.
func CreateSearch(ctx context.Context, db *gorm.DB, query string, resultsCount int) (*domain.Search, error) {
	s := &domain.Search{
		Query:        query,
		ResultsCount: resultsCount,
		CreatedAt:    time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// GetSearch fetches a single search event by ID. If the record does not
// exist, it returns ErrNotFound.
func GetSearch(ctx context.Context, db *gorm.DB, id uint) (*domain.Search, error) {
	var s domain.Search
	if err := db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// ListRecentSearches returns the most recent limit search events, newest
// first. The surrogate key breaks ties between rows created in the same
// instant. A limit <= 0 is coerced to 10.
func ListRecentSearches(ctx context.Context, db *gorm.DB, limit int) ([]domain.Search, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []domain.Search
	err := db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CreateScrapedContent inserts one snippet row owned by searchID.
// ScrapedAt is set to UTC.
func CreateScrapedContent(ctx context.Context, db *gorm.DB, searchID uint, title, url, text string, wordCount int) (*domain.ScrapedContent, error) {
	c := &domain.ScrapedContent{
		SearchID:  searchID,
		Title:     title,
		URL:       url,
		Text:      text,
		WordCount: wordCount,
		ScrapedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// ListScrapedContent returns all snippet rows for a search in insertion
// order. It returns an empty slice when the search has no content.
func ListScrapedContent(ctx context.Context, db *gorm.DB, searchID uint) ([]domain.ScrapedContent, error) {
	var out []domain.ScrapedContent
	err := db.WithContext(ctx).
		Where("search_id = ?", searchID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

// CreateSummary inserts a summary row owned by searchID. CreatedAt is set
// to UTC.
func CreateSummary(ctx context.Context, db *gorm.DB, searchID uint, summary string) (*domain.Summary, error) {
	s := &domain.Summary{
		SearchID:  searchID,
		Summary:   summary,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// LatestSummary returns the most recent summary for a search, or
// ErrNotFound when none has been written. Duplicates are legal (summaries
// are append-only) and resolved by creation time, surrogate key as
// tiebreaker.
func LatestSummary(ctx context.Context, db *gorm.DB, searchID uint) (*domain.Summary, error) {
	var s domain.Summary
	err := db.WithContext(ctx).
		Where("search_id = ?", searchID).
		Order("created_at DESC, id DESC").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}
