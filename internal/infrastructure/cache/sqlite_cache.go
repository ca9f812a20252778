// Package cache persists raw completion responses so repeated prompts skip
// the backend call. Rows are keyed by the SHA-256 of the full prompt text
// and expire after a TTL. Only raw responses are cached; parsing, validation,
// and selection always run fresh.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/nlsh/internal/domain"
	"github.com/doeshing/nlsh/internal/pkg/filesystem"
	"github.com/doeshing/nlsh/internal/ports"
)

// SQLiteCache stores cache entries in ~/.nlsh/cache/responses.db.
type SQLiteCache struct {
	db   *sql.DB
	path string
	ttl  time.Duration
	mu   sync.Mutex
}

// New creates (or opens) the response cache database. Open failures degrade
// to a disabled cache rather than blocking the pipeline.
func New(ttl time.Duration) *SQLiteCache {
	return NewAt(filepath.Join(filesystem.ConfigDir(), "cache", "responses.db"), ttl)
}

// NewAt opens a cache database at an explicit path, for tests.
func NewAt(path string, ttl time.Duration) *SQLiteCache {
	if ttl <= 0 {
		ttl = domain.DefaultCacheTTL
	}
	_ = os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
	store := &SQLiteCache{path: path, ttl: ttl}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return store
	}
	store.db = db
	if err := store.init(); err != nil {
		store.db = nil
	}
	return store
}

func (c *SQLiteCache) init() error {
	_, err := c.db.Exec(`CREATE TABLE IF NOT EXISTS responses (
		key TEXT PRIMARY KEY,
		prompt TEXT,
		model TEXT,
		response TEXT,
		cycle_id TEXT,
		created_at TEXT
	);`)
	return err
}

func key(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}

// Get implements ports.CacheRepository. Expired rows are removed on read.
func (c *SQLiteCache) Get(prompt string) (domain.CacheEntry, bool, error) {
	if c.db == nil || prompt == "" {
		return domain.CacheEntry{}, false, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	k := key(prompt)
	row := c.db.QueryRow(`SELECT prompt, model, response, cycle_id, created_at FROM responses WHERE key = ?`, k)
	var entry domain.CacheEntry
	var created string
	if err := row.Scan(&entry.Prompt, &entry.Model, &entry.Response, &entry.CycleID, &created); err != nil {
		if err == sql.ErrNoRows {
			return domain.CacheEntry{}, false, nil
		}
		return domain.CacheEntry{}, false, err
	}
	if t, err := time.Parse(time.RFC3339, created); err == nil {
		entry.CreatedAt = t
	}
	if time.Since(entry.CreatedAt) > c.ttl {
		_, _ = c.db.Exec(`DELETE FROM responses WHERE key = ?`, k)
		return domain.CacheEntry{}, false, nil
	}
	return entry, true, nil
}

// Set implements ports.CacheRepository.
func (c *SQLiteCache) Set(entry domain.CacheEntry) error {
	if c.db == nil || entry.Prompt == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	_, err := c.db.Exec(`INSERT OR REPLACE INTO responses (key, prompt, model, response, cycle_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		key(entry.Prompt), entry.Prompt, entry.Model, entry.Response, entry.CycleID,
		entry.CreatedAt.Format(time.RFC3339))
	return err
}

// Clear removes all cached responses.
func (c *SQLiteCache) Clear() error {
	if c.db == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.db.Exec(`DELETE FROM responses`)
	return err
}

// Stats summarizes the cache contents.
func (c *SQLiteCache) Stats() (domain.CacheStats, error) {
	if c.db == nil {
		return domain.CacheStats{}, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	var stats domain.CacheStats
	var oldest, newest sql.NullString
	row := c.db.QueryRow(`SELECT COUNT(*), MIN(created_at), MAX(created_at) FROM responses`)
	if err := row.Scan(&stats.Entries, &oldest, &newest); err != nil {
		return domain.CacheStats{}, err
	}
	if oldest.Valid {
		if t, err := time.Parse(time.RFC3339, oldest.String); err == nil {
			stats.Oldest = t
		}
	}
	if newest.Valid {
		if t, err := time.Parse(time.RFC3339, newest.String); err == nil {
			stats.Newest = t
		}
	}
	return stats, nil
}

// Path returns the backing database path.
func (c *SQLiteCache) Path() string {
	return c.path
}

var _ ports.CacheRepository = (*SQLiteCache)(nil)
