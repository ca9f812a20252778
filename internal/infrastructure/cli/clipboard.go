package cli

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/doeshing/nlsh/internal/ports"
)

// Clipboard copies selected commands through platform clipboard tools. The
// copy is best effort: a missing tool is reported, never fatal.
type Clipboard struct{}

// NewClipboard builds the clipboard helper.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

func (c *Clipboard) Enabled() bool {
	switch runtime.GOOS {
	case "darwin", "linux":
		return true
	default:
		return false
	}
}

// Copy implements ports.Clipboard.
func (c *Clipboard) Copy(text string) error {
	cmd, err := clipboardCommand()
	if err != nil {
		return err
	}
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// clipboardCommand resolves the first available clipboard writer for this
// platform: pbcopy on macOS; wl-copy, xclip, then xsel on Linux.
func clipboardCommand() (*exec.Cmd, error) {
	if runtime.GOOS == "darwin" {
		return exec.Command("pbcopy"), nil
	}
	if runtime.GOOS != "linux" {
		return nil, fmt.Errorf("clipboard not supported on %s", runtime.GOOS)
	}

	tools := []struct {
		name string
		args []string
	}{
		{"wl-copy", nil},
		{"xclip", []string{"-selection", "clipboard"}},
		{"xsel", []string{"--clipboard", "--input"}},
	}
	for _, tool := range tools {
		if _, err := exec.LookPath(tool.name); err == nil {
			return exec.Command(tool.name, tool.args...), nil
		}
	}
	return nil, fmt.Errorf("no clipboard utility found (wl-copy, xclip, xsel)")
}

var _ ports.Clipboard = (*Clipboard)(nil)
