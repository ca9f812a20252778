package domain

import (
	"errors"
	"fmt"
	"strings"
)

// The pipeline reports every stage failure as one of the typed errors below.
// All of them are terminal for the current cycle and are mapped to a message
// and exit code by a single top-level handler; none are retried.

// BackendUnavailableError means the completion backend could not be reached
// or invoked.
type BackendUnavailableError struct {
	Provider string
	Err      error
}

func (e *BackendUnavailableError) Error() string {
	return fmt.Sprintf("completion backend %s unavailable: %v", e.Provider, e.Err)
}

func (e *BackendUnavailableError) Unwrap() error {
	return e.Err
}

// ParseFailure means the backend response yielded zero usable candidates.
// The raw text is carried so the CLI can echo it for diagnosis.
type ParseFailure struct {
	Raw string
}

func (e *ParseFailure) Error() string {
	return "response contained no command candidates"
}

// ValidationFailure means every candidate's executable is absent from the
// host. Dropped commands are named for diagnosis.
type ValidationFailure struct {
	Dropped []string
}

func (e *ValidationFailure) Error() string {
	return fmt.Sprintf("no executable command among candidates (dropped: %s); AI-generated commands may be invalid on this system",
		strings.Join(e.Dropped, ", "))
}

// InvalidSelectionError means the menu input was non-numeric or out of range.
// Selection is fail-fast: the cycle terminates instead of re-prompting.
type InvalidSelectionError struct {
	Input string
	Count int
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("invalid selection %q (expected 1-%d or q)", e.Input, e.Count)
}

// ExecutionError means the shell invocation itself could not be launched.
// A command that launched and exited non-zero is a failed HistoryEntry, not
// an ExecutionError.
type ExecutionError struct {
	Command string
	Err     error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("could not launch %q: %v", e.Command, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// ErrCancelled is returned when the user takes the quit path or declines a
// guardrail confirmation. It is not a failure; the CLI exits zero.
var ErrCancelled = errors.New("cancelled by user")

// IsFailure reports whether err is one of the pipeline failure types that
// should map to a non-zero exit code.
func IsFailure(err error) bool {
	if err == nil || errors.Is(err, ErrCancelled) {
		return false
	}
	return true
}
