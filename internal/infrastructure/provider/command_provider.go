package provider

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/doeshing/nlsh/internal/domain"
	"github.com/doeshing/nlsh/internal/ports"
)

// commandProvider runs a local generator process, e.g.
// `ollama run llama3.2:latest`, writing the prompt to its stdin and reading
// the raw response from stdout. The wait is unbounded beyond ctx.
type commandProvider struct {
	model domain.ModelDefinition
}

func newCommandProvider(model domain.ModelDefinition) ports.CompletionProvider {
	return &commandProvider{model: model}
}

func (p *commandProvider) Name() string {
	return "command/" + p.model.Name
}

// Complete invokes the configured command. A launch failure or non-zero exit
// maps to BackendUnavailableError with the process stderr attached.
func (p *commandProvider) Complete(ctx context.Context, prompt string) (string, error) {
	argv := strings.Fields(p.model.Command)
	if len(argv) == 0 {
		return "", &domain.BackendUnavailableError{
			Provider: p.Name(),
			Err:      fmt.Errorf("empty backend command"),
		}
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(prompt)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := err
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			detail = fmt.Errorf("%w: %s", err, msg)
		}
		return "", &domain.BackendUnavailableError{Provider: p.Name(), Err: detail}
	}
	return stdout.String(), nil
}

var _ ports.CompletionProvider = (*commandProvider)(nil)
