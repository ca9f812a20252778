package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/nlsh/internal/domain"
	"github.com/doeshing/nlsh/internal/infrastructure/history"
	"github.com/doeshing/nlsh/internal/pkg/logger"
	"github.com/doeshing/nlsh/internal/ports"
)

func testConfig() domain.Config {
	return domain.Config{
		Preferences: domain.Preferences{DefaultModel: "stub", HistoryContextSize: 5},
		Models:      []domain.ModelDefinition{{Name: "stub", Command: "stub"}},
	}
}

func newService(raw string, selectIndex int) (*QueryService, *stubProvider, *stubExecutor) {
	provider := &stubProvider{raw: raw}
	executor := &stubExecutor{entry: domain.HistoryEntry{Status: domain.StatusSuccess}}
	svc := &QueryService{
		ConfigProvider:  stubConfigProvider{cfg: testConfig()},
		SystemInfo:      stubSystemInfo{},
		ProviderFactory: stubFactory{provider: provider},
		History:         history.NewMemoryStore(),
		Validator:       stubValidator{},
		Selector:        stubSelector{index: selectIndex},
		Executor:        executor,
		Logger:          logger.NewStd(false),
	}
	return svc, provider, executor
}

func TestRunEndToEnd(t *testing.T) {
	raw := `Sure! [{"command":"ls -la"},{"command":"pwd"}] Hope that helps!`
	svc, _, executor := newService(raw, 2)

	resp, err := svc.Run(domain.QueryRequest{Context: context.Background(), Prompt: "show files"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := domain.CandidateList{{Command: "ls -la"}, {Command: "pwd"}}
	if diff := cmp.Diff(want, resp.Candidates); diff != "" {
		t.Fatalf("Candidates mismatch (-want +got):\n%s", diff)
	}
	if resp.SelectedCommand != "pwd" {
		t.Fatalf("SelectedCommand = %q, want pwd", resp.SelectedCommand)
	}
	if executor.command != "pwd" {
		t.Fatalf("executed %q, want pwd", executor.command)
	}
	if svc.History.Len() != 1 {
		t.Fatalf("history length = %d, want 1", svc.History.Len())
	}
}

func TestRunFallbackProseFailsValidation(t *testing.T) {
	svc, _, executor := newService("remove all temp files", 1)
	svc.Validator = stubValidator{
		err: &domain.ValidationFailure{Dropped: []string{"remove all temp files"}},
	}

	_, err := svc.Run(domain.QueryRequest{Context: context.Background(), Prompt: "clean up"})
	var vf *domain.ValidationFailure
	if !errors.As(err, &vf) {
		t.Fatalf("Run() error = %v, want ValidationFailure", err)
	}
	if executor.command != "" {
		t.Fatal("nothing should execute on validation failure")
	}
	if svc.History.Len() != 0 {
		t.Fatal("nothing should be appended on validation failure")
	}
}

func TestRunBackendUnavailable(t *testing.T) {
	svc, provider, _ := newService("", 1)
	provider.err = &domain.BackendUnavailableError{Provider: "stub", Err: errors.New("refused")}

	_, err := svc.Run(domain.QueryRequest{Context: context.Background(), Prompt: "anything"})
	var unavailable *domain.BackendUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("Run() error = %v, want BackendUnavailableError", err)
	}
}

func TestRunQuitPath(t *testing.T) {
	svc, _, executor := newService(`["ls"]`, 0)
	svc.Selector = stubSelector{err: domain.ErrCancelled}

	resp, err := svc.Run(domain.QueryRequest{Context: context.Background(), Prompt: "list"})
	if !errors.Is(err, domain.ErrCancelled) {
		t.Fatalf("Run() error = %v, want ErrCancelled", err)
	}
	if !resp.Cancelled {
		t.Fatal("response should be marked cancelled")
	}
	if executor.command != "" || svc.History.Len() != 0 {
		t.Fatal("quit must not execute or record anything")
	}
}

func TestRunInvalidSelection(t *testing.T) {
	svc, _, executor := newService(`["ls"]`, 0)
	svc.Selector = stubSelector{err: &domain.InvalidSelectionError{Input: "seven", Count: 1}}

	_, err := svc.Run(domain.QueryRequest{Context: context.Background(), Prompt: "list"})
	var invalid *domain.InvalidSelectionError
	if !errors.As(err, &invalid) {
		t.Fatalf("Run() error = %v, want InvalidSelectionError", err)
	}
	if executor.command != "" {
		t.Fatal("nothing should execute after invalid selection")
	}
}

func TestRunCacheHitSkipsProvider(t *testing.T) {
	svc, provider, _ := newService("unused", 1)
	cfg := testConfig()
	cfg.Cache.Enabled = true
	svc.ConfigProvider = stubConfigProvider{cfg: cfg}
	svc.Cache = &stubCache{hit: true, entry: domain.CacheEntry{Response: `["pwd"]`}}

	resp, err := svc.Run(domain.QueryRequest{Context: context.Background(), Prompt: "where am i"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !resp.FromCache {
		t.Fatal("response should be marked as cached")
	}
	if provider.calls != 0 {
		t.Fatalf("provider called %d times, want 0 on cache hit", provider.calls)
	}
}

func TestRunCacheMissStoresResponse(t *testing.T) {
	svc, _, _ := newService(`["pwd"]`, 1)
	cfg := testConfig()
	cfg.Cache.Enabled = true
	svc.ConfigProvider = stubConfigProvider{cfg: cfg}
	store := &stubCache{}
	svc.Cache = store

	if _, err := svc.Run(domain.QueryRequest{Context: context.Background(), Prompt: "where am i"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if store.stored.Response != `["pwd"]` {
		t.Fatalf("cache stored %+v, want the raw response", store.stored)
	}
}

func TestRunGuardrailDeclineCancels(t *testing.T) {
	svc, _, executor := newService(`["rm -rf /tmp/x"]`, 1)
	svc.Security = stubSecurity{risk: domain.RiskAssessment{Level: domain.RiskDangerous, Reasons: []string{"recursive delete"}}}
	svc.Prompter = stubPrompter{confirm: false}

	resp, err := svc.Run(domain.QueryRequest{Context: context.Background(), Prompt: "delete stuff"})
	if !errors.Is(err, domain.ErrCancelled) {
		t.Fatalf("Run() error = %v, want ErrCancelled", err)
	}
	if !resp.Cancelled || executor.command != "" || svc.History.Len() != 0 {
		t.Fatal("declined guardrail must not execute or record anything")
	}
}

func TestRunHistoryConditionsPrompt(t *testing.T) {
	svc, provider, _ := newService(`["ls"]`, 1)
	svc.History.Append(domain.HistoryEntry{Command: "df -h", Status: domain.StatusSuccess})
	svc.History.Append(domain.HistoryEntry{Command: "mount /mnt", Status: domain.StatusFailed})

	if _, err := svc.Run(domain.QueryRequest{Context: context.Background(), Prompt: "next step"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, fragment := range []string{"df -h (Status: success)", "mount /mnt (Status: failed)", `"next step"`} {
		if !strings.Contains(provider.prompt, fragment) {
			t.Fatalf("prompt missing %q:\n%s", fragment, provider.prompt)
		}
	}
}

func TestRunEmptyHistoryUsesSentinel(t *testing.T) {
	svc, provider, _ := newService(`["ls"]`, 1)

	if _, err := svc.Run(domain.QueryRequest{Context: context.Background(), Prompt: "list"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(provider.prompt, domain.EmptyHistorySentinel) {
		t.Fatalf("prompt missing empty-history sentinel:\n%s", provider.prompt)
	}
}

func TestRunExecutionErrorStillRecorded(t *testing.T) {
	svc, _, executor := newService(`["ls"]`, 1)
	executor.entry = domain.HistoryEntry{Command: "ls", Status: domain.StatusError, Output: "launch failed"}
	executor.err = &domain.ExecutionError{Command: "ls", Err: errors.New("launch failed")}

	_, err := svc.Run(domain.QueryRequest{Context: context.Background(), Prompt: "list"})
	var execErr *domain.ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("Run() error = %v, want ExecutionError", err)
	}
	if svc.History.Len() != 1 {
		t.Fatal("error outcomes must still be appended to history")
	}
}

func TestRunUnknownModelOverride(t *testing.T) {
	svc, _, _ := newService(`["ls"]`, 1)

	_, err := svc.Run(domain.QueryRequest{Context: context.Background(), Prompt: "list", ModelOverride: "nope"})
	if err == nil || !strings.Contains(err.Error(), "not configured") {
		t.Fatalf("Run() error = %v, want unknown model error", err)
	}
}

// Stubs

type stubConfigProvider struct {
	cfg domain.Config
	err error
}

func (s stubConfigProvider) Load(context.Context) (domain.Config, error) {
	return s.cfg, s.err
}

type stubSystemInfo struct{}

func (stubSystemInfo) Collect(context.Context) (domain.SystemContext, error) {
	return domain.SystemContext{
		OSName: "fedora", OSVersion: "41", Kernel: "6.11", Arch: "amd64", PackageManager: "dnf",
	}, nil
}

type stubFactory struct {
	provider ports.CompletionProvider
}

func (s stubFactory) ForModel(domain.ModelDefinition) (ports.CompletionProvider, error) {
	return s.provider, nil
}

type stubProvider struct {
	raw    string
	err    error
	prompt string
	calls  int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Complete(_ context.Context, prompt string) (string, error) {
	s.calls++
	s.prompt = prompt
	return s.raw, s.err
}

// stubValidator keeps everything unless primed with an error.
type stubValidator struct {
	err error
}

func (s stubValidator) Validate(candidates domain.CandidateList) (domain.CandidateList, error) {
	if s.err != nil {
		return nil, s.err
	}
	return candidates, nil
}

type stubSelector struct {
	index int
	err   error
}

func (s stubSelector) Select(candidates domain.CandidateList) (domain.Candidate, error) {
	if s.err != nil {
		return domain.Candidate{}, s.err
	}
	return candidates[s.index-1], nil
}

type stubExecutor struct {
	entry   domain.HistoryEntry
	err     error
	command string
}

func (s *stubExecutor) Execute(_ context.Context, command string) (domain.HistoryEntry, error) {
	s.command = command
	entry := s.entry
	if entry.Command == "" {
		entry.Command = command
	}
	entry.Timestamp = time.Now()
	return entry, s.err
}

type stubCache struct {
	hit    bool
	entry  domain.CacheEntry
	stored domain.CacheEntry
}

func (s *stubCache) Get(string) (domain.CacheEntry, bool, error) {
	return s.entry, s.hit, nil
}

func (s *stubCache) Set(entry domain.CacheEntry) error {
	s.stored = entry
	return nil
}

func (s *stubCache) Clear() error { return nil }

func (s *stubCache) Stats() (domain.CacheStats, error) { return domain.CacheStats{}, nil }

type stubSecurity struct {
	risk domain.RiskAssessment
}

func (s stubSecurity) Evaluate(string) (domain.RiskAssessment, error) {
	return s.risk, nil
}

type stubPrompter struct {
	confirm bool
}

func (s stubPrompter) Confirm(domain.RiskLevel, string, []string) (bool, error) {
	return s.confirm, nil
}

func (s stubPrompter) Enabled() bool { return true }
