package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/doeshing/nlsh/internal/domain"
	"github.com/doeshing/nlsh/internal/ports"
)

// MenuSelector presents candidates as a numbered menu and reads one line of
// input. Selection is deliberately fail-fast: `q` quits, a valid 1-based
// number selects, everything else terminates the cycle without re-prompting.
type MenuSelector struct {
	in  *bufio.Reader
	out io.Writer
}

// NewMenuSelector constructs a selector referencing stdio by default. An
// already-buffered reader passes through bufio.NewReader unchanged, so the
// menu draws from the same buffer as the other stdin consumers.
func NewMenuSelector(in io.Reader, out io.Writer) *MenuSelector {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &MenuSelector{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Select implements ports.Selector.
func (s *MenuSelector) Select(candidates domain.CandidateList) (domain.Candidate, error) {
	fmt.Fprintln(s.out, "Available commands:")
	for i, candidate := range candidates {
		fmt.Fprintf(s.out, "%d) %s\n", i+1, candidate.Command)
	}
	fmt.Fprint(s.out, "Select the command number to execute (or q to quit): ")

	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		// EOF without input behaves like quitting.
		fmt.Fprintln(s.out)
		return domain.Candidate{}, domain.ErrCancelled
	}

	choice := strings.TrimSpace(line)
	if strings.EqualFold(choice, "q") {
		return domain.Candidate{}, domain.ErrCancelled
	}

	index, convErr := strconv.Atoi(choice)
	if convErr != nil || index < 1 || index > len(candidates) {
		return domain.Candidate{}, &domain.InvalidSelectionError{Input: choice, Count: len(candidates)}
	}
	return candidates[index-1], nil
}

// Interactive reports whether stdin is a terminal.
func Interactive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

var _ ports.Selector = (*MenuSelector)(nil)
