package validator

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/nlsh/internal/domain"
)

func fakeLookup(known ...string) LookPathFunc {
	set := map[string]bool{}
	for _, name := range known {
		set[name] = true
	}
	return func(name string) (string, error) {
		if set[name] {
			return "/usr/bin/" + name, nil
		}
		return "", exec.ErrNotFound
	}
}

func TestValidateKeepsOrderAndDropsMissing(t *testing.T) {
	v := NewWithLookup(fakeLookup("ls", "pwd"), nil, false)

	got, err := v.Validate(domain.CandidateList{
		{Command: "ls -la"},
		{Command: "frobnicate --all"},
		{Command: "pwd"},
	})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	want := domain.CandidateList{{Command: "ls -la"}, {Command: "pwd"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Validate() mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateAllDroppedIsValidationFailure(t *testing.T) {
	v := NewWithLookup(fakeLookup(), nil, false)

	_, err := v.Validate(domain.CandidateList{{Command: "remove all temp files"}})
	var vf *domain.ValidationFailure
	if !errors.As(err, &vf) {
		t.Fatalf("Validate() error = %v, want ValidationFailure", err)
	}
	want := []string{"remove all temp files"}
	if diff := cmp.Diff(want, vf.Dropped); diff != "" {
		t.Fatalf("Dropped mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateFailingProbeDoesNotDropExistingExecutable(t *testing.T) {
	probed := 0
	failingProbe := func(context.Context, string) bool {
		probed++
		return false
	}
	v := NewWithLookup(fakeLookup("tar"), failingProbe, true)

	got, err := v.Validate(domain.CandidateList{{Command: "tar -xzf backup.tgz"}})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(got) != 1 || got[0].Command != "tar -xzf backup.tgz" {
		t.Fatalf("Validate() = %v, want the probed candidate kept", got)
	}
	if probed != 1 {
		t.Fatalf("probe invoked %d times, want 1", probed)
	}
}

func TestValidateProbeSkippedForSingleTokenCommands(t *testing.T) {
	probed := 0
	probe := func(context.Context, string) bool {
		probed++
		return true
	}
	v := NewWithLookup(fakeLookup("pwd"), probe, true)

	if _, err := v.Validate(domain.CandidateList{{Command: "pwd"}}); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if probed != 0 {
		t.Fatalf("probe invoked %d times, want 0", probed)
	}
}

func TestValidateBlankCandidateDropped(t *testing.T) {
	v := NewWithLookup(fakeLookup("ls"), nil, false)

	got, err := v.Validate(domain.CandidateList{{Command: "   "}, {Command: "ls"}})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(got) != 1 || got[0].Command != "ls" {
		t.Fatalf("Validate() = %v, want only ls", got)
	}
}
