// Package sysinfo gathers host facts rendered into completion prompts.
package sysinfo

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/doeshing/nlsh/internal/domain"
	"github.com/doeshing/nlsh/internal/ports"
)

// Known package managers, probed in preference order.
var packageManagers = []string{"dnf", "apt-get", "pacman", "zypper", "apk", "brew"}

// Collector reads /etc/os-release and probes the host for kernel and package
// manager facts. The snapshot is computed once and cached for the process.
type Collector struct {
	osReleasePath string
	lookPath      func(string) (string, error)

	once     sync.Once
	snapshot domain.SystemContext
}

// New builds a collector against the real host.
func New() *Collector {
	return &Collector{
		osReleasePath: "/etc/os-release",
		lookPath:      exec.LookPath,
	}
}

// NewWithSource builds a collector reading an alternate os-release file and
// lookup, for tests.
func NewWithSource(osReleasePath string, lookPath func(string) (string, error)) *Collector {
	return &Collector{osReleasePath: osReleasePath, lookPath: lookPath}
}

// Collect implements ports.SystemInfoProvider.
func (c *Collector) Collect(ctx context.Context) (domain.SystemContext, error) {
	c.once.Do(func() {
		name, version := c.readOSRelease()
		c.snapshot = domain.SystemContext{
			OSName:         name,
			OSVersion:      version,
			Kernel:         kernelRelease(ctx),
			Arch:           runtime.GOARCH,
			PackageManager: c.detectPackageManager(name),
		}
	})
	return c.snapshot, nil
}

func (c *Collector) readOSRelease() (name, version string) {
	name, version = "unknown", "unknown"
	data, err := os.ReadFile(c.osReleasePath)
	if err != nil {
		return name, version
	}
	for _, line := range strings.Split(string(data), "\n") {
		switch {
		case strings.HasPrefix(line, "ID="):
			name = unquote(strings.TrimPrefix(line, "ID="))
		case strings.HasPrefix(line, "VERSION_ID="):
			version = unquote(strings.TrimPrefix(line, "VERSION_ID="))
		}
	}
	return name, version
}

// detectPackageManager prefers a PATH probe over distribution guessing, and
// falls back to the ID-based guess when nothing resolves.
func (c *Collector) detectPackageManager(osName string) string {
	for _, pm := range packageManagers {
		if _, err := c.lookPath(pm); err == nil {
			return pm
		}
	}
	switch strings.ToLower(osName) {
	case "ubuntu", "debian":
		return "apt-get"
	default:
		return "dnf"
	}
}

func kernelRelease(ctx context.Context) string {
	cctx, cancel := context.WithTimeout(ctx, domain.DefaultProbeTimeout)
	defer cancel()
	out, err := exec.CommandContext(cctx, "uname", "-r").Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(out))
}

func unquote(value string) string {
	return strings.Trim(strings.TrimSpace(value), `"`)
}

var _ ports.SystemInfoProvider = (*Collector)(nil)
