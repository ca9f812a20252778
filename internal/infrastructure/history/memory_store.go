// Package history holds the session-scoped record of executed commands.
//
// The store lives in process memory only: a single-shot invocation records
// one entry, a REPL session accumulates entries across queries. Nothing is
// persisted across process runs.
package history

import (
	"fmt"
	"strings"
	"sync"

	"github.com/doeshing/nlsh/internal/domain"
	"github.com/doeshing/nlsh/internal/ports"
)

// MemoryStore is an append-only, mutex-guarded record of history entries.
type MemoryStore struct {
	mu      sync.Mutex
	entries []domain.HistoryEntry
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append records one completed execution. It is the only mutator.
func (s *MemoryStore) Append(entry domain.HistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
}

// RecentContext renders the last k entries as a newline-joined list in
// original execution order, most-recent-last. The result is opaque to the
// rest of the pipeline; it is only interpolated into prompt text.
func (s *MemoryStore) RecentContext(k int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) == 0 {
		return domain.EmptyHistorySentinel
	}
	if k <= 0 {
		k = domain.DefaultHistoryContextSize
	}

	start := len(s.entries) - k
	if start < 0 {
		start = 0
	}
	lines := make([]string, 0, len(s.entries)-start)
	for _, entry := range s.entries[start:] {
		lines = append(lines, fmt.Sprintf("%s (Status: %s)", entry.Command, entry.Status))
	}
	return strings.Join(lines, "\n")
}

// Entries returns a copy of all recorded entries in execution order. Older
// entries beyond the prompt window are retained here for inspection.
func (s *MemoryStore) Entries() []domain.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of recorded entries.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

var _ ports.HistoryStore = (*MemoryStore)(nil)
