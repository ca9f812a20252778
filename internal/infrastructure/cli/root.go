package cli

import (
	"bufio"
	"context"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/nlsh/internal/app"
	"github.com/doeshing/nlsh/internal/domain"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}
	// Every line-oriented stdin consumer must pull from one buffer. Separate
	// bufio readers over the same file read ahead and steal each other's
	// lines when input is piped.
	stdin := bufio.NewReader(os.Stdin)
	container.QueryService.Selector = NewMenuSelector(stdin, nil)
	container.QueryService.Prompter = NewPrompter(stdin, nil)
	container.QueryService.Clipboard = NewClipboard()

	var (
		model   string
		copyCmd bool
		noCache bool
		debug   bool
	)

	root := &cobra.Command{
		Use:   "nlsh [query]",
		Short: "Natural language shell helper",
		Long: "nlsh turns a natural-language request into shell command candidates,\n" +
			"lets you pick one from a numbered menu, and runs it. Outcomes feed back\n" +
			"into later requests within the same session.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("query required: describe the command to run, e.g. nlsh show the largest files")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			req := domain.QueryRequest{
				Context:         cmd.Context(),
				Prompt:          strings.Join(args, " "),
				ModelOverride:   model,
				CopyToClipboard: copyCmd,
				NoCache:         noCache,
				Debug:           debug,
			}
			resp, err := container.QueryService.Run(req)
			RenderOutcome(cmd.OutOrStdout(), resp)
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.Flags().StringVarP(&model, "model", "m", "", "Override model name (default from config)")
	root.Flags().BoolVarP(&copyCmd, "copy", "c", false, "Copy the selected command to the clipboard")
	root.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the response cache for this query")
	root.Flags().BoolVar(&debug, "debug", false, "Enable verbose logging")

	root.AddCommand(newREPLCommand(container, stdin))
	root.AddCommand(newCacheCommand(container))
	root.AddCommand(newConfigCommand(container))
	root.AddCommand(newVersionCommand())
	return root, nil
}
