package domain

import "strings"

// Candidate is a single shell command proposed by the completion backend.
type Candidate struct {
	Command string
}

// Valid reports whether the candidate carries a non-blank command.
func (c Candidate) Valid() bool {
	return strings.TrimSpace(c.Command) != ""
}

// Executable returns the command's first whitespace-delimited token, the
// name the validator resolves on the lookup path. Empty for blank commands.
func (c Candidate) Executable() string {
	fields := strings.Fields(c.Command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// CandidateList is an ordered set of candidates; order follows the
// backend response and is preserved through validation and selection.
type CandidateList []Candidate
