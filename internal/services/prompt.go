package services

import (
	"bytes"
	"text/template"

	"github.com/doeshing/nlsh/internal/domain"
)

// defaultPromptTemplate is the built-in prompt. The wording is tunable via
// config; the structural contract is fixed: assistant preamble, system
// context, recent history (or its sentinel), the literal query, and the
// JSON-array-of-objects instruction.
const defaultPromptTemplate = `You are a Linux automation assistant.
The user's query is: "{{.Query}}".
Local system context: {{.SystemInfo}}.
Recently executed commands:
{{.History}}
Your task is to generate a JSON array containing one or more objects.
Each object MUST have exactly one key "command" whose value is a single, simple, executable shell command that accomplishes the query on this system.
Do not output any extra keys, commentary, markdown, or escape characters.
Output exactly and only a valid JSON array.`

type promptData struct {
	Query      string
	SystemInfo string
	History    string
}

// buildPrompt renders the completion prompt for one cycle.
func buildPrompt(cfg domain.Config, query string, sysCtx domain.SystemContext, historyContext string) (string, error) {
	text := cfg.Prompt.Template
	if text == "" {
		text = defaultPromptTemplate
	}

	tmpl, err := template.New("prompt").Parse(text)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, promptData{
		Query:      query,
		SystemInfo: sysCtx.String(),
		History:    historyContext,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
