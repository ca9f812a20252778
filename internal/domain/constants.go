package domain

import "time"

// File permission constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Timeout and duration constants
const (
	// DefaultProbeTimeout bounds sysinfo and validator probe commands
	DefaultProbeTimeout = 2 * time.Second
	// DefaultHTTPClientTimeout is the timeout for completion HTTP requests
	DefaultHTTPClientTimeout = 60 * time.Second
	// DefaultCacheTTL is how long cached responses stay valid
	DefaultCacheTTL = time.Hour
)

// Pipeline constants
const (
	// DefaultHistoryContextSize is how many recent entries condition a prompt
	DefaultHistoryContextSize = 5
	// DefaultMaxTokens is the default completion token budget
	DefaultMaxTokens = 512
)
