// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate queries used primarily
// for conditional responses (e.g., ETag generation) in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-research-backend/internal/domain"
)

// SearchesStats returns aggregate metadata for the searches table: the total
// number of rows and the maximum CreatedAt timestamp among them. Because
// search events are append-only, the pair (count, max created_at) changes
// exactly when the recent-searches view changes, which makes it a cheap
// ETag input.
//
// When the table is empty, count is 0 and maxCreatedAt is nil.
func SearchesStats(ctx context.Context, db *gorm.DB) (count int64, maxCreatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Search{})

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest created_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		CreatedAt time.Time
	}
	if err = q.Select("created_at").Order("created_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.CreatedAt, nil
}
