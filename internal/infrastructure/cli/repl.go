package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/nlsh/internal/app"
	"github.com/doeshing/nlsh/internal/domain"
)

// newREPLCommand starts an interactive session. Every line runs one full
// pipeline cycle against the shared session history, so earlier outcomes
// condition later prompts. A failed cycle reports and the loop continues.
//
// The loop reads queries from the same buffered reader the selector and
// prompter consume selections from; a second buffer over stdin would read
// ahead and swallow their lines on piped input.
func newREPLCommand(container *app.Container, in *bufio.Reader) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive session; history conditions follow-up queries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in == nil {
				in = bufio.NewReader(cmd.InOrStdin())
			}
			return runREPL(cmd, container, in)
		},
	}
}

func runREPL(cmd *cobra.Command, container *app.Container, in *bufio.Reader) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "nlsh session; type a request, :history, or :quit")
	for {
		fmt.Fprint(out, "nlsh> ")
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			return nil
		}
		query := strings.TrimSpace(line)

		switch {
		case query == "":
			continue
		case query == ":quit" || query == ":q":
			return nil
		case query == ":history":
			renderHistory(out, container.HistoryStore.Entries())
			continue
		}

		resp, runErr := container.QueryService.Run(domain.QueryRequest{
			Context: cmd.Context(),
			Prompt:  query,
		})
		RenderOutcome(out, resp)
		if runErr != nil {
			// Cycle failures are terminal for the query, not the session.
			RenderFailure(cmd.ErrOrStderr(), runErr)
		}
	}
}

func renderHistory(out io.Writer, entries []domain.HistoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(out, domain.EmptyHistorySentinel)
		return
	}
	for i, entry := range entries {
		age := ""
		if !entry.Timestamp.IsZero() {
			age = ", " + humanize.Time(entry.Timestamp)
		}
		fmt.Fprintf(out, "%d) %s (Status: %s%s)\n", i+1, entry.Command, entry.Status, age)
	}
}
