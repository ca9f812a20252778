// Package services orchestrates the command-resolution pipeline.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/doeshing/nlsh/internal/domain"
	"github.com/doeshing/nlsh/internal/parser"
	"github.com/doeshing/nlsh/internal/ports"
)

// QueryService runs one resolution cycle end-to-end: system facts and recent
// history condition a prompt, the completion backend answers, the response is
// parsed into candidates, non-executable candidates are filtered, the user
// picks one, the executor runs it, and the outcome is appended to history for
// the next cycle.
//
// The pipeline is strictly sequential; every stage failure is one of the
// typed errors in the domain package and terminates the cycle.
type QueryService struct {
	ConfigProvider  ports.ConfigProvider
	SystemInfo      ports.SystemInfoProvider
	ProviderFactory ports.ProviderFactory
	History         ports.HistoryStore
	Validator       ports.CommandValidator
	Selector        ports.Selector
	Executor        ports.CommandExecutor
	Cache           ports.CacheRepository
	Security        ports.SecurityService
	Prompter        ports.ConfirmationPrompter
	Clipboard       ports.Clipboard
	Logger          ports.Logger
}

// Run processes a single natural-language query.
func (s *QueryService) Run(req domain.QueryRequest) (domain.QueryResponse, error) {
	if s.ConfigProvider == nil || s.SystemInfo == nil || s.ProviderFactory == nil ||
		s.History == nil || s.Validator == nil || s.Selector == nil ||
		s.Executor == nil || s.Logger == nil {
		return domain.QueryResponse{}, errors.New("services.QueryService dependencies not satisfied")
	}

	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}
	cycleID := uuid.NewString()

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.QueryResponse{}, fmt.Errorf("load config: %w", err)
	}

	sysCtx, err := s.SystemInfo.Collect(ctx)
	if err != nil {
		return domain.QueryResponse{}, fmt.Errorf("collect system info: %w", err)
	}

	prompt, err := buildPrompt(cfg, req.Prompt, sysCtx, s.History.RecentContext(cfg.HistoryContextSize()))
	if err != nil {
		return domain.QueryResponse{}, fmt.Errorf("build prompt: %w", err)
	}

	model, err := pickModel(cfg, req.ModelOverride)
	if err != nil {
		return domain.QueryResponse{}, err
	}

	resp := domain.QueryResponse{SystemContext: sysCtx, ModelUsed: model.Name}

	raw, fromCache, err := s.rawResponse(ctx, cfg, model, prompt, req, cycleID)
	if err != nil {
		return resp, err
	}
	resp.RawResponse = raw
	resp.FromCache = fromCache

	candidates, err := parser.Parse(raw)
	if err != nil {
		return resp, err
	}
	s.Logger.Debug("parsed candidates", map[string]interface{}{
		"cycle": cycleID, "count": len(candidates),
	})

	candidates, err = s.Validator.Validate(candidates)
	if err != nil {
		return resp, err
	}
	resp.Candidates = candidates

	selected, err := s.Selector.Select(candidates)
	if err != nil {
		if errors.Is(err, domain.ErrCancelled) {
			resp.Cancelled = true
		}
		return resp, err
	}
	resp.SelectedCommand = selected.Command

	approved, err := s.approve(selected.Command)
	if err != nil {
		return resp, err
	}
	if !approved {
		resp.Cancelled = true
		return resp, domain.ErrCancelled
	}

	if req.CopyToClipboard && s.Clipboard != nil && s.Clipboard.Enabled() {
		if err := s.Clipboard.Copy(selected.Command); err != nil {
			s.Logger.Warn("clipboard copy failed", map[string]interface{}{"error": err.Error()})
		}
	}

	entry, execErr := s.Executor.Execute(ctx, selected.Command)
	// All three outcomes are recorded, launch failures included.
	s.History.Append(entry)
	resp.ExecutionResult = &entry
	if execErr != nil {
		return resp, execErr
	}
	return resp, nil
}

// rawResponse fetches raw completion text, consulting the cache when enabled.
// A cache hit skips the backend call entirely; parse and validate still run.
func (s *QueryService) rawResponse(
	ctx context.Context,
	cfg domain.Config,
	model domain.ModelDefinition,
	prompt string,
	req domain.QueryRequest,
	cycleID string,
) (string, bool, error) {
	useCache := cfg.Cache.Enabled && !req.NoCache && s.Cache != nil

	if useCache {
		if entry, ok, err := s.Cache.Get(prompt); err == nil && ok {
			s.Logger.Debug("cache hit", map[string]interface{}{"cycle": cycleID})
			return entry.Response, true, nil
		} else if err != nil {
			s.Logger.Warn("cache read failed", map[string]interface{}{"error": err.Error()})
		}
	}

	provider, err := s.ProviderFactory.ForModel(model)
	if err != nil {
		return "", false, err
	}
	s.Logger.Info("calling completion backend", map[string]interface{}{
		"cycle":    cycleID,
		"provider": provider.Name(),
	})

	raw, err := provider.Complete(ctx, prompt)
	if err != nil {
		return "", false, err
	}

	if useCache {
		setErr := s.Cache.Set(domain.CacheEntry{
			Prompt:   prompt,
			Model:    model.Name,
			Response: raw,
			CycleID:  cycleID,
		})
		if setErr != nil {
			s.Logger.Warn("cache write failed", map[string]interface{}{"error": setErr.Error()})
		}
	}
	return raw, false, nil
}

// approve runs the guardrail over the selected command. Declining is a
// cancellation, not a failure.
func (s *QueryService) approve(command string) (bool, error) {
	if s.Security == nil {
		return true, nil
	}
	risk, err := s.Security.Evaluate(command)
	if err != nil {
		return false, fmt.Errorf("security evaluate: %w", err)
	}
	if !risk.NeedsConfirmation() {
		return true, nil
	}
	if s.Prompter == nil || !s.Prompter.Enabled() {
		// Nobody to ask; warn and proceed rather than silently block.
		s.Logger.Warn("risky command approved without prompt", map[string]interface{}{
			"command": command,
			"level":   string(risk.Level),
		})
		return true, nil
	}
	return s.Prompter.Confirm(risk.Level, command, risk.Reasons)
}

func pickModel(cfg domain.Config, override string) (domain.ModelDefinition, error) {
	name := override
	if name == "" {
		name = cfg.Preferences.DefaultModel
	}
	if name == "" && len(cfg.Models) > 0 {
		return cfg.Models[0], nil
	}
	for _, model := range cfg.Models {
		if model.Name == name {
			return model, nil
		}
	}
	return domain.ModelDefinition{}, fmt.Errorf("model %s not configured", name)
}

var _ domain.QueryService = (*QueryService)(nil)
