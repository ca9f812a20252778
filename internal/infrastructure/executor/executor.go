// Package executor runs selected commands through the host shell.
package executor

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/doeshing/nlsh/internal/domain"
	"github.com/doeshing/nlsh/internal/ports"
)

// ShellExecutor runs commands via `<shell> -c <command>`, capturing stdout,
// stderr, and exit status. A non-zero exit is recorded as a failed entry and
// is not an error return; only a launch failure is. There is deliberately no
// timeout and no output cap: a hung command hangs the pipeline.
type ShellExecutor struct {
	shell string

	// When interactive, output is teed to these writers while captured.
	stdout io.Writer
	stderr io.Writer
}

// New builds an executor; shell defaults to $SHELL, then /bin/sh.
func New(shell string) *ShellExecutor {
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}
	return &ShellExecutor{shell: shell}
}

// NewInteractive builds an executor that mirrors command output to the given
// writers (typically the terminal) while still capturing it for history.
func NewInteractive(shell string, stdout, stderr io.Writer) *ShellExecutor {
	e := New(shell)
	e.stdout = stdout
	e.stderr = stderr
	return e
}

// Execute implements ports.CommandExecutor. The returned entry is appended to
// the history store by the caller; the executor does not own history.
func (e *ShellExecutor) Execute(ctx context.Context, command string) (domain.HistoryEntry, error) {
	cmd := exec.CommandContext(ctx, e.shell, "-c", command)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = e.tee(&stdout, e.stdout)
	cmd.Stderr = e.tee(&stderr, e.stderr)
	cmd.Stdin = os.Stdin

	entry := domain.HistoryEntry{
		Command:   command,
		Timestamp: time.Now(),
	}

	err := cmd.Run()
	switch {
	case err == nil:
		entry.Status = domain.StatusSuccess
		entry.Output = stdout.String()
		entry.ExitCode = 0
		return entry, nil
	case isExitError(err):
		code := exitCode(err)
		entry.ExitCode = code
		// The shell reports 127 (not found) and 126 (not executable) when
		// the command itself could never launch.
		if code == 126 || code == 127 {
			entry.Status = domain.StatusError
			entry.Output = launchFailure(stderr.String(), command)
			return entry, &domain.ExecutionError{Command: command, Err: err}
		}
		entry.Status = domain.StatusFailed
		entry.Output = stderr.String()
		return entry, nil
	default:
		entry.Status = domain.StatusError
		entry.Output = err.Error()
		entry.ExitCode = -1
		return entry, &domain.ExecutionError{Command: command, Err: err}
	}
}

func (e *ShellExecutor) tee(capture *bytes.Buffer, mirror io.Writer) io.Writer {
	if mirror == nil {
		return capture
	}
	return io.MultiWriter(capture, mirror)
}

func launchFailure(stderr, command string) string {
	if s := strings.TrimSpace(stderr); s != "" {
		return s
	}
	return "could not launch " + command
}

func isExitError(err error) bool {
	_, ok := err.(*exec.ExitError)
	return ok
}

func exitCode(err error) int {
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	return -1
}

// Shell returns the shell binary used for invocations.
func (e *ShellExecutor) Shell() string {
	return strings.TrimSpace(e.shell)
}

var _ ports.CommandExecutor = (*ShellExecutor)(nil)
