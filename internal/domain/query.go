package domain

import "context"

// QueryRequest captures user intent originating from the CLI or the REPL.
type QueryRequest struct {
	Context         context.Context
	Prompt          string
	ModelOverride   string
	CopyToClipboard bool
	NoCache         bool
	Debug           bool
}

// QueryResponse is the canonical response propagated back to the CLI.
type QueryResponse struct {
	Candidates      CandidateList
	SelectedCommand string
	Cancelled       bool
	ExecutionResult *HistoryEntry
	SystemContext   SystemContext
	RawResponse     string
	FromCache       bool
	ModelUsed       string
}

// QueryService exposes the use-case boundary for handling one query.
type QueryService interface {
	Run(QueryRequest) (QueryResponse, error)
}
