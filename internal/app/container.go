// Package app wires application services with infrastructure adapters.
package app

import (
	"context"
	"os"
	"time"

	"github.com/doeshing/nlsh/internal/domain"
	"github.com/doeshing/nlsh/internal/infrastructure/cache"
	"github.com/doeshing/nlsh/internal/infrastructure/config"
	"github.com/doeshing/nlsh/internal/infrastructure/executor"
	"github.com/doeshing/nlsh/internal/infrastructure/history"
	"github.com/doeshing/nlsh/internal/infrastructure/provider"
	"github.com/doeshing/nlsh/internal/infrastructure/security"
	"github.com/doeshing/nlsh/internal/infrastructure/sysinfo"
	"github.com/doeshing/nlsh/internal/infrastructure/validator"
	"github.com/doeshing/nlsh/internal/pkg/logger"
	"github.com/doeshing/nlsh/internal/ports"
	"github.com/doeshing/nlsh/internal/services"
)

// Container holds the dependency graph behind the CLI.
type Container struct {
	QueryService *services.QueryService
	ConfigLoader *config.FileLoader
	HistoryStore ports.HistoryStore
	CacheStore   ports.CacheRepository
	Config       domain.Config
}

// BuildContainer constructs the dependency graph. The selector, prompter, and
// clipboard are attached by the CLI layer, which owns the terminal.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose || cfg.Preferences.Verbose)
	historyStore := history.NewMemoryStore()
	cacheStore := cache.New(time.Duration(cfg.Cache.TTLMinutes) * time.Minute)

	var guardrail ports.SecurityService
	if cfg.Security.Enabled {
		guardrail, err = security.NewGuardrail(cfg.Security.RulesFile)
		if err != nil {
			return nil, err
		}
	}

	queryService := &services.QueryService{
		ConfigProvider:  cfgLoader,
		SystemInfo:      sysinfo.New(),
		ProviderFactory: provider.NewFactory(),
		History:         historyStore,
		Validator:       validator.New(cfg.Validator),
		Executor:        executor.NewInteractive(cfg.Preferences.Shell, os.Stdout, os.Stderr),
		Cache:           cacheStore,
		Security:        guardrail,
		Logger:          log,
	}

	return &Container{
		QueryService: queryService,
		ConfigLoader: cfgLoader,
		HistoryStore: historyStore,
		CacheStore:   cacheStore,
		Config:       cfg,
	}, nil
}
