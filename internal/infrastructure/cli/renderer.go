package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/doeshing/nlsh/internal/domain"
)

// RenderOutcome prints the status line for an executed command. The
// interactive executor already mirrors command output to the terminal while
// it runs, so the captured entry output is never re-printed here. The process
// still exits zero on a non-zero command exit; the distinction is only
// reported.
func RenderOutcome(out io.Writer, resp domain.QueryResponse) {
	if resp.Cancelled || resp.ExecutionResult == nil {
		return
	}
	switch resp.ExecutionResult.Status {
	case domain.StatusSuccess:
		fmt.Fprintln(out, "Command executed successfully.")
	case domain.StatusFailed:
		fmt.Fprintf(out, "Command failed with exit code %d.\n", resp.ExecutionResult.ExitCode)
	}
}

// RenderFailure maps a pipeline failure to a diagnostic message and an exit
// code. Every stage failure lands here; nothing is retried.
func RenderFailure(out io.Writer, err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, domain.ErrCancelled) {
		return 0
	}

	var parseFailure *domain.ParseFailure
	var validationFailure *domain.ValidationFailure
	var backendUnavailable *domain.BackendUnavailableError
	var invalidSelection *domain.InvalidSelectionError
	var executionError *domain.ExecutionError

	switch {
	case errors.As(err, &backendUnavailable):
		fmt.Fprintln(out, "Error:", backendUnavailable.Error())
	case errors.As(err, &parseFailure):
		fmt.Fprintln(out, "No valid commands found in the backend output.")
		if parseFailure.Raw != "" {
			fmt.Fprintln(out, "Raw output:")
			fmt.Fprintln(out, parseFailure.Raw)
		}
	case errors.As(err, &validationFailure):
		fmt.Fprintln(out, "Error:", validationFailure.Error())
	case errors.As(err, &invalidSelection):
		fmt.Fprintln(out, "Invalid selection. Exiting.")
	case errors.As(err, &executionError):
		fmt.Fprintln(out, "Error:", executionError.Error())
	default:
		fmt.Fprintln(out, "Error:", err)
	}
	return 1
}
