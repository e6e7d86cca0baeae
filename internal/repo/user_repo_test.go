package repo

import (
	"context"
	"errors"
	"testing"
)

func TestCreateUser_AndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	u, err := CreateUser(ctx, db, "alice", "deadbeef")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.CreatedAt.IsZero() {
		t.Fatalf("created_at not set")
	}

	got, err := GetUser(ctx, db, "alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PasswordHash != "deadbeef" {
		t.Fatalf("hash = %q", got.PasswordHash)
	}
}

func TestCreateUser_Duplicate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := CreateUser(ctx, db, "bob", "h1"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := CreateUser(ctx, db, "bob", "h2")
	if !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}

	// First registration wins: the stored hash is unchanged.
	got, err := GetUser(ctx, db, "bob")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PasswordHash != "h1" {
		t.Fatalf("duplicate overwrote hash: %q", got.PasswordHash)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := GetUser(context.Background(), db, "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCountUsers(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	n, err := CountUsers(ctx, db)
	if err != nil || n != 0 {
		t.Fatalf("empty count = %d, %v", n, err)
	}
	if _, err := CreateUser(ctx, db, "u1", "h"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := CreateUser(ctx, db, "u2", "h"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	n, err = CountUsers(ctx, db)
	if err != nil || n != 2 {
		t.Fatalf("count = %d, %v", n, err)
	}
}
