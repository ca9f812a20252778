package domain

import "fmt"

// SystemContext holds host facts injected into prompts. It is computed once
// per process and treated as immutable afterwards.
type SystemContext struct {
	OSName         string
	OSVersion      string
	Kernel         string
	Arch           string
	PackageManager string
}

// String renders the descriptive one-liner interpolated into prompts.
func (s SystemContext) String() string {
	return fmt.Sprintf("OS: %s %s; Kernel: %s; Arch: %s; Package Manager: %s",
		s.OSName, s.OSVersion, s.Kernel, s.Arch, s.PackageManager)
}
