// Package config loads YAML configuration from ~/.nlsh/config.yaml.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/nlsh/assets"
	"github.com/doeshing/nlsh/internal/domain"
	"github.com/doeshing/nlsh/internal/pkg/filesystem"
	"github.com/doeshing/nlsh/internal/ports"
)

// FileLoader loads YAML configuration from ~/.nlsh/config.yaml (overridable
// via NLSH_CONFIG or an explicit path).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file is seeded from the
// embedded defaults on first run.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, fmt.Errorf("ensure config dir: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := defaultConfig()
			if err := os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}
	return hydrateDefaults(cfg), nil
}

// Path returns the resolved config file path.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return expandPath(l.overridePath)
	}
	if custom := os.Getenv("NLSH_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.ConfigDir(), "config.yaml")
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return path
}

func defaultConfig() domain.Config {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		// Minimal fallback if the embedded YAML is ever corrupted.
		return domain.Config{
			ConfigFormatVersion: "1",
			Preferences: domain.Preferences{
				DefaultModel:       "ollama-local",
				HistoryContextSize: domain.DefaultHistoryContextSize,
			},
			Models: []domain.ModelDefinition{
				{Name: "ollama-local", Command: "ollama run llama3.2:latest"},
			},
			Security: domain.SecuritySettings{Enabled: true},
		}
	}
	return hydrateDefaults(cfg)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Preferences.HistoryContextSize <= 0 {
		cfg.Preferences.HistoryContextSize = domain.DefaultHistoryContextSize
	}
	if cfg.Preferences.DefaultModel == "" && len(cfg.Models) > 0 {
		cfg.Preferences.DefaultModel = cfg.Models[0].Name
	}
	if cfg.Cache.TTLMinutes <= 0 {
		cfg.Cache.TTLMinutes = int(domain.DefaultCacheTTL.Minutes())
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
