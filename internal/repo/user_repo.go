// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User
// (credential) model.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-research-backend/internal/domain"
)

// ErrDuplicateUser is returned by CreateUser when the username already
// exists. The primary-key constraint on username makes the insert atomic:
// two concurrent registrations of the same name cannot both succeed.
var ErrDuplicateUser = errors.New("username already exists")

// CreateUser inserts a credential row. The caller supplies the password
// hash; plaintext never reaches this layer. Returns ErrDuplicateUser when
// the username is taken, or the raw DB error otherwise.
func CreateUser(ctx context.Context, db *gorm.DB, username, passwordHash string) (*domain.User, error) {
	u := &domain.User{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	return u, nil
}

// GetUser fetches a credential row by username (case-sensitive).
// Returns ErrNotFound when no such user exists.
func GetUser(ctx context.Context, db *gorm.DB, username string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).First(&u, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// CountUsers returns the number of credential rows.
func CountUsers(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.User{}).Count(&total).Error
	return total, err
}

// isUniqueViolation detects unique/primary-key violations across drivers
// that may not map to gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
