// Package security evaluates selected commands against guardrail rules.
//
// The guardrail warns and asks; it never sandboxes or alters the command.
package security

import (
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/nlsh/assets"
	"github.com/doeshing/nlsh/internal/domain"
	"github.com/doeshing/nlsh/internal/pkg/filesystem"
	"github.com/doeshing/nlsh/internal/ports"
)

// Guardrail implements the SecurityService port with regex-based rules.
type Guardrail struct {
	patterns []compiledPattern
}

type compiledPattern struct {
	re   *regexp.Regexp
	rule DangerPattern
}

// DangerPattern describes one regex-based guardrail rule.
type DangerPattern struct {
	Pattern string `yaml:"pattern"`
	Level   string `yaml:"level"`
	Message string `yaml:"message"`
}

// RulesFile is the YAML schema root.
type RulesFile struct {
	Rules struct {
		DangerPatterns []DangerPattern `yaml:"danger_patterns"`
	} `yaml:"rules"`
}

// NewGuardrail loads rules from the given file, falling back to the embedded
// defaults when the path is empty or unreadable.
func NewGuardrail(path string) (*Guardrail, error) {
	rules, err := loadRules(path)
	if err != nil {
		return nil, err
	}

	var compiled []compiledPattern
	for _, pattern := range rules.Rules.DangerPatterns {
		re, err := regexp.Compile(pattern.Pattern)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, compiledPattern{re: re, rule: pattern})
	}
	return &Guardrail{patterns: compiled}, nil
}

// Evaluate implements ports.SecurityService. The most severe matching rule
// determines the level; every match contributes a reason.
func (g *Guardrail) Evaluate(command string) (domain.RiskAssessment, error) {
	assessment := domain.RiskAssessment{Level: domain.RiskSafe}
	for _, pattern := range g.patterns {
		if !pattern.re.MatchString(command) {
			continue
		}
		level := parseRiskLevel(pattern.rule.Level)
		if moreSevere(level, assessment.Level) {
			assessment.Level = level
		}
		assessment.Reasons = append(assessment.Reasons, pattern.rule.Message)
	}
	return assessment, nil
}

func loadRules(path string) (RulesFile, error) {
	var rules RulesFile
	data := assets.DefaultGuardrailYAML
	if path != "" {
		if fileData, err := os.ReadFile(expandPath(path)); err == nil {
			data = fileData
		}
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return RulesFile{}, err
	}
	return rules, nil
}

func parseRiskLevel(value string) domain.RiskLevel {
	switch strings.ToLower(value) {
	case "dangerous", "high":
		return domain.RiskDangerous
	case "caution", "medium", "low":
		return domain.RiskCaution
	default:
		return domain.RiskCaution
	}
}

func moreSevere(a, b domain.RiskLevel) bool {
	return severity(a) > severity(b)
}

func severity(level domain.RiskLevel) int {
	switch level {
	case domain.RiskDangerous:
		return 2
	case domain.RiskCaution:
		return 1
	default:
		return 0
	}
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filesystem.UserHomeDir() + path[1:]
	}
	return path
}

var _ ports.SecurityService = (*Guardrail)(nil)
