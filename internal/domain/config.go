package domain

// Config mirrors ~/.nlsh/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Preferences         Preferences       `yaml:"preferences"`
	Models              []ModelDefinition `yaml:"models"`
	Validator           ValidatorSettings `yaml:"validator"`
	Cache               CacheSettings     `yaml:"cache"`
	Security            SecuritySettings  `yaml:"security"`
	Prompt              PromptSettings    `yaml:"prompt"`
}

// Preferences captures user level toggles.
type Preferences struct {
	DefaultModel       string `yaml:"default_model"`
	HistoryContextSize int    `yaml:"history_context_size"`
	Shell              string `yaml:"shell"`
	Verbose            bool   `yaml:"verbose"`
}

// ValidatorSettings controls the executable filter.
type ValidatorSettings struct {
	HelpProbe           bool `yaml:"help_probe"`
	ProbeTimeoutSeconds int  `yaml:"probe_timeout"`
}

// CacheSettings controls response caching.
type CacheSettings struct {
	Enabled    bool `yaml:"enabled"`
	TTLMinutes int  `yaml:"ttl_minutes"`
}

// SecuritySettings defines guardrail behavior.
type SecuritySettings struct {
	Enabled   bool   `yaml:"enabled"`
	RulesFile string `yaml:"rules_file"`
}

// PromptSettings allows overriding the built-in prompt template.
type PromptSettings struct {
	Template string `yaml:"template,omitempty"`
}

// HistoryContextSize returns the configured prompt-context window with the
// default fallback.
func (c Config) HistoryContextSize() int {
	if c.Preferences.HistoryContextSize > 0 {
		return c.Preferences.HistoryContextSize
	}
	return DefaultHistoryContextSize
}
