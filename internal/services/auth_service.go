// Package services – AuthService
//
// This file implements the AuthService, the credential store's business
// layer. It validates registration input (minimum password length, blank
// username) and delegates persistence to the user repository. Passwords are
// stored as SHA-256 hex digests only; the digest is deterministic so Verify
// can recompute and compare.
//
// Known weakness, accepted by design: the stored-hash comparison is an
// ordinary string equality, not a constant-time compare.
package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-research-backend/internal/repo"
)

// MinPasswordLen is the minimum accepted registration password length.
const MinPasswordLen = 4

// AuthService implements registration and credential verification on top
// of the users table.
type AuthService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewAuthService constructs an AuthService bound to db.
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

// HashPassword returns the SHA-256 hex digest of password. Deterministic:
// the same input always yields the same 64-character string.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Register creates a credential record for username. It returns
// ErrEmptyUsername or ErrPasswordTooShort on invalid input and
// ErrUsernameTaken when a record already exists; the insert itself is
// atomic (primary-key constraint), so concurrent duplicate registrations
// cannot both succeed.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" {
		return ErrEmptyUsername
	}
	if len(password) < MinPasswordLen {
		return ErrPasswordTooShort
	}
	if _, err := repo.CreateUser(ctx, s.DB, username, HashPassword(password)); err != nil {
		if errors.Is(err, repo.ErrDuplicateUser) {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

// Verify reports whether username exists and password matches the one
// supplied at registration. Any other password, an unknown username, or a
// storage failure all read as false — verification never errors.
func (s *AuthService) Verify(ctx context.Context, username, password string) bool {
	u, err := repo.GetUser(ctx, s.DB, username)
	if err != nil {
		return false
	}
	return u.PasswordHash == HashPassword(password)
}
