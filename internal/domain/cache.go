package domain

import "time"

// CacheEntry stores one cached raw completion response for a prompt.
type CacheEntry struct {
	Prompt    string
	Model     string
	Response  string
	CycleID   string
	CreatedAt time.Time
}

// CacheStats summarizes the response cache for the stats subcommand.
type CacheStats struct {
	Entries int
	Oldest  time.Time
	Newest  time.Time
}
