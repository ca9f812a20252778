package filesystem

import (
	"os"
	"path/filepath"
)

// UserHomeDir returns the current user's home directory, "." when it cannot
// be determined.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// ConfigDir returns the nlsh state directory (~/.nlsh), home of the config
// file and the response cache. Callers create it on demand.
func ConfigDir() string {
	return filepath.Join(UserHomeDir(), ".nlsh")
}
