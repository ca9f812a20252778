package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/doeshing/nlsh/internal/domain"
	"github.com/doeshing/nlsh/internal/ports"
)

// Prompter implements ConfirmationPrompter using stdin/stdout.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter constructs a prompter referencing stdio. An already-buffered
// reader passes through bufio.NewReader unchanged, so confirmations draw
// from the same buffer as the selector and the session loop.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Enabled indicates whether the prompter can actually ask anyone.
func (p *Prompter) Enabled() bool {
	return Interactive()
}

// Confirm asks the user to approve a risky command. Dangerous commands need
// an explicit "yes"; caution-level commands accept y/yes.
func (p *Prompter) Confirm(level domain.RiskLevel, command string, reasons []string) (bool, error) {
	fmt.Fprintf(p.out, "\nWarning: %s command\n", strings.ToUpper(string(level)))
	for _, reason := range reasons {
		fmt.Fprintf(p.out, " - %s\n", reason)
	}
	fmt.Fprintf(p.out, "Command:\n  %s\n", command)

	if level == domain.RiskDangerous {
		return p.askExplicit()
	}
	return p.ask("[y/N]: ")
}

func (p *Prompter) ask(prompt string) (bool, error) {
	fmt.Fprint(p.out, "Continue? ", prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false, err
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes", nil
}

func (p *Prompter) askExplicit() (bool, error) {
	fmt.Fprint(p.out, "Type 'yes' to confirm (or anything else to cancel): ")
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false, err
	}
	return strings.TrimSpace(line) == "yes", nil
}

var _ ports.ConfirmationPrompter = (*Prompter)(nil)
