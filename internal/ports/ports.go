// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the pipeline core and external
// adapters (infrastructure). The core depends on these abstractions only, so
// every stage can be exercised with stubs: a canned completion backend, a fake
// executable lookup, a scripted selector.
package ports

import (
	"context"

	"github.com/doeshing/nlsh/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.nlsh/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// SystemInfoProvider gathers host facts (OS, kernel, arch, package manager)
// rendered into prompts. Facts are collected once and cached for the process.
type SystemInfoProvider interface {
	Collect(context.Context) (domain.SystemContext, error)
}

// CompletionProvider turns a prompt string into raw generated text. The raw
// text is opaque here; the parser extracts candidates from it downstream.
type CompletionProvider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// ProviderFactory builds completion providers from model definitions.
type ProviderFactory interface {
	ForModel(domain.ModelDefinition) (CompletionProvider, error)
}

// HistoryStore is the bounded-context record of past executions. Append is
// the only mutator and is called exactly once per completed executor run.
type HistoryStore interface {
	Append(domain.HistoryEntry)
	RecentContext(k int) string
	Entries() []domain.HistoryEntry
	Len() int
}

// CommandValidator filters candidates down to those plausibly executable on
// this host, preserving input order.
type CommandValidator interface {
	Validate(domain.CandidateList) (domain.CandidateList, error)
}

// Selector presents candidates and returns the chosen one, domain.ErrCancelled
// on the quit path, or a domain.InvalidSelectionError on malformed input.
type Selector interface {
	Select(domain.CandidateList) (domain.Candidate, error)
}

// CommandExecutor runs a shell command and reports its outcome as a history
// entry. A non-zero exit is a failed entry, not an error return.
type CommandExecutor interface {
	Execute(ctx context.Context, command string) (domain.HistoryEntry, error)
}

// CacheRepository stores raw completion responses addressed by prompt.
// Deriving the storage key from the prompt is the adapter's concern.
type CacheRepository interface {
	Get(prompt string) (domain.CacheEntry, bool, error)
	Set(entry domain.CacheEntry) error
	Clear() error
	Stats() (domain.CacheStats, error)
}

// SecurityService evaluates a selected command against guardrail rules.
type SecurityService interface {
	Evaluate(command string) (domain.RiskAssessment, error)
}

// ConfirmationPrompter handles interactive approval of risky commands.
type ConfirmationPrompter interface {
	Confirm(level domain.RiskLevel, command string, reasons []string) (bool, error)
	Enabled() bool
}

// Clipboard provides best-effort clipboard integration for copying commands.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// Logger provides structured logging abstraction for the pipeline.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
