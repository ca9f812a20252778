package main

import (
	"context"
	"os"
	"strings"

	"github.com/doeshing/nlsh/internal/infrastructure/cli"
)

func main() {
	ctx := context.Background()
	opts := cli.Options{Verbose: isVerbose()}

	root, err := cli.NewRootCmd(ctx, opts)
	if err != nil {
		os.Exit(cli.RenderFailure(os.Stderr, err))
	}

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(cli.RenderFailure(os.Stderr, err))
	}
}

func isVerbose() bool {
	return strings.EqualFold(os.Getenv("NLSH_DEBUG"), "1") || strings.EqualFold(os.Getenv("NLSH_DEBUG"), "true")
}
