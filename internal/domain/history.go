package domain

import "time"

// EntryStatus classifies the outcome of an executed command.
type EntryStatus string

const (
	// StatusSuccess means the command ran and exited zero.
	StatusSuccess EntryStatus = "success"
	// StatusFailed means the command ran and exited non-zero.
	StatusFailed EntryStatus = "failed"
	// StatusError means the command could not be launched at all.
	StatusError EntryStatus = "error"
)

// HistoryEntry captures one executed command and its outcome. Entries are
// appended by the pipeline after every executor run and never mutated.
type HistoryEntry struct {
	Command   string
	Status    EntryStatus
	Output    string
	ExitCode  int
	Timestamp time.Time
}

// EmptyHistorySentinel is rendered into prompts when no command has run yet.
const EmptyHistorySentinel = "no previous commands"
