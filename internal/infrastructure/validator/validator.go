// Package validator filters candidates down to commands that can plausibly
// run on this host.
package validator

import (
	"context"
	"os/exec"
	"time"

	"github.com/doeshing/nlsh/internal/domain"
	"github.com/doeshing/nlsh/internal/ports"
)

// LookPathFunc resolves an executable name on the host, exec.LookPath shaped.
type LookPathFunc func(name string) (string, error)

// ProbeFunc runs a help-style invocation of an executable and reports whether
// it exited zero.
type ProbeFunc func(ctx context.Context, executable string) bool

// PathValidator keeps candidates whose first token resolves on the command
// lookup path. The optional help probe is advisory: a failing probe never
// drops a candidate whose executable exists, to avoid over-filtering tools
// that do not support --help.
type PathValidator struct {
	lookPath     LookPathFunc
	probe        ProbeFunc
	probeEnabled bool
	probeTimeout time.Duration
}

// New builds a validator backed by the real host lookup.
func New(settings domain.ValidatorSettings) *PathValidator {
	timeout := domain.DefaultProbeTimeout
	if settings.ProbeTimeoutSeconds > 0 {
		timeout = time.Duration(settings.ProbeTimeoutSeconds) * time.Second
	}
	return &PathValidator{
		lookPath:     exec.LookPath,
		probe:        helpProbe,
		probeEnabled: settings.HelpProbe,
		probeTimeout: timeout,
	}
}

// NewWithLookup builds a validator with injected lookup and probe functions.
// Tests use this to stay hermetic.
func NewWithLookup(lookPath LookPathFunc, probe ProbeFunc, probeEnabled bool) *PathValidator {
	return &PathValidator{
		lookPath:     lookPath,
		probe:        probe,
		probeEnabled: probeEnabled,
		probeTimeout: domain.DefaultProbeTimeout,
	}
}

// Validate implements ports.CommandValidator. Survivors keep their input
// order; nothing is ever added. An empty result is a ValidationFailure naming
// every dropped command.
func (v *PathValidator) Validate(candidates domain.CandidateList) (domain.CandidateList, error) {
	kept := make(domain.CandidateList, 0, len(candidates))
	dropped := make([]string, 0, len(candidates))

	for _, candidate := range candidates {
		if !v.executable(candidate) {
			dropped = append(dropped, candidate.Command)
			continue
		}
		kept = append(kept, candidate)
	}

	if len(kept) == 0 {
		return nil, &domain.ValidationFailure{Dropped: dropped}
	}
	return kept, nil
}

func (v *PathValidator) executable(candidate domain.Candidate) bool {
	name := candidate.Executable()
	if name == "" {
		return false
	}
	if _, err := v.lookPath(name); err != nil {
		return false
	}
	if v.probeEnabled && len(candidate.Command) > len(name) {
		ctx, cancel := context.WithTimeout(context.Background(), v.probeTimeout)
		defer cancel()
		// Existence already passed; the probe outcome is recorded by the
		// caller's logs at most. Keep regardless.
		_ = v.probe(ctx, name)
	}
	return true
}

func helpProbe(ctx context.Context, executable string) bool {
	cmd := exec.CommandContext(ctx, executable, "--help")
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}

var _ ports.CommandValidator = (*PathValidator)(nil)
