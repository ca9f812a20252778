package domain

// RiskLevel grades how dangerous a command looks to the guardrail.
type RiskLevel string

const (
	RiskSafe      RiskLevel = "safe"
	RiskCaution   RiskLevel = "caution"
	RiskDangerous RiskLevel = "dangerous"
)

// RiskAssessment is the guardrail verdict for a selected command. Anything
// above RiskSafe requires interactive confirmation before execution.
type RiskAssessment struct {
	Level   RiskLevel
	Reasons []string
}

// NeedsConfirmation reports whether the user must approve the command.
func (r RiskAssessment) NeedsConfirmation() bool {
	return r.Level != RiskSafe && r.Level != ""
}
