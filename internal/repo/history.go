// Package repo implements the data persistence layer for domain entities.
// This file provides HistoryStore, a flat append-only JSON file recording
// which report artifacts were generated for which user. It is deliberately
// separate from the relational schema: the file is the artifact index the
// renderer's "my reports" view reads, and it survives database resets.
//
// Durability model:
//   - The whole collection is a single JSON array; every append rewrites the
//     file. Fine for the expected volume (one entry per generated report).
//   - A corrupted or unreadable file is treated as an empty collection
//     rather than an error; the next append replaces it with valid JSON.
//   - Reads filter the full set by user client-side.
package repo

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/tbourn/go-research-backend/internal/domain"
)

// HistoryStore is an append-only, user-keyed report history backed by one
// JSON file. Safe for concurrent use within a single process.
type HistoryStore struct {
	path string
	mu   sync.Mutex
}

// NewHistoryStore returns a store writing to path. The file is created on
// first append; a missing file reads as an empty history.
func NewHistoryStore(path string) *HistoryStore {
	return &HistoryStore{path: path}
}

// Append adds one entry to the history file, creating it if absent.
func (h *HistoryStore) Append(entry domain.ReportEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries := h.readAll()
	entries = append(entries, entry)

	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(h.path, data, 0o644)
}

// ForUser returns the entries recorded for username, oldest first. Entries
// written for other users never appear. A missing or corrupted file yields
// an empty slice, never an error.
func (h *HistoryStore) ForUser(username string) []domain.ReportEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	all := h.readAll()
	out := make([]domain.ReportEntry, 0, len(all))
	for _, e := range all {
		if e.User == username {
			out = append(out, e)
		}
	}
	return out
}

// readAll loads the file, resetting to empty on any read or parse failure.
// Callers must hold h.mu.
func (h *HistoryStore) readAll() []domain.ReportEntry {
	data, err := os.ReadFile(h.path)
	if err != nil {
		return nil
	}
	var entries []domain.ReportEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		// Corrupted history is recoverable: start over rather than fail.
		return nil
	}
	return entries
}
