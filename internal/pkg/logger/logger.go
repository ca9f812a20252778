// Package logger provides pipeline logging on top of Go's log package.
package logger

import (
	"fmt"
	"log"
	"sort"
	"strings"
)

// StdLogger writes leveled, key=value formatted lines. Debug, Info, and Warn
// are gated on verbose mode so the interactive menu stays clean; Error
// always prints.
type StdLogger struct {
	verbose bool
}

// NewStd creates a StdLogger.
func NewStd(verbose bool) *StdLogger {
	return &StdLogger{verbose: verbose}
}

func (l *StdLogger) Debug(msg string, fields map[string]interface{}) {
	if l.verbose {
		log.Println(line("DEBUG", msg, fields))
	}
}

func (l *StdLogger) Info(msg string, fields map[string]interface{}) {
	if l.verbose {
		log.Println(line("INFO", msg, fields))
	}
}

func (l *StdLogger) Warn(msg string, fields map[string]interface{}) {
	if l.verbose {
		log.Println(line("WARN", msg, fields))
	}
}

func (l *StdLogger) Error(msg string, err error, fields map[string]interface{}) {
	s := line("ERROR", msg, fields)
	if err != nil {
		s += " error=" + err.Error()
	}
	log.Println(s)
}

// line renders fields in sorted key order so log output is deterministic.
func line(level, msg string, fields map[string]interface{}) string {
	var b strings.Builder
	b.WriteString("[" + level + "] " + msg)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	return b.String()
}
