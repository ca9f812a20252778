package domain

// ModelDefinition describes a completion backend declared in the config file.
// A definition carries either an HTTP endpoint (chat-completions style) or a
// local generator command such as "ollama run llama3.2:latest"; the provider
// factory picks the transport from whichever is set.
type ModelDefinition struct {
	Name       string `yaml:"name"`
	Endpoint   string `yaml:"endpoint,omitempty"`
	ModelID    string `yaml:"model_id,omitempty"`
	AuthEnvVar string `yaml:"auth_env_var,omitempty"`
	MaxTokens  int    `yaml:"max_tokens,omitempty"`
	Command    string `yaml:"command,omitempty"`
}

// IsLocalCommand reports whether the backend is invoked as a local process.
func (m ModelDefinition) IsLocalCommand() bool {
	return m.Command != ""
}
