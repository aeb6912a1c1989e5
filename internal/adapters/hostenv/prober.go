// Package hostenv implements the EnvProber port from the Go runtime's view of the host.
package hostenv

import (
	"runtime"

	"go.trai.ch/pinset/internal/core/domain"
	"go.trai.ch/pinset/internal/core/ports"
)

var _ ports.EnvProber = (*Prober)(nil)

// Prober derives marker environment values from the host platform.
type Prober struct{}

// NewProber creates a new EnvProber.
func NewProber() *Prober {
	return &Prober{}
}

// Probe returns the marker environment for the host, with overrides applied
// on top. Interpreter-specific values default to empty since no interpreter
// is consulted; projects set them via configuration.
func (p *Prober) Probe(overrides map[string]string) domain.Environment {
	env := domain.Environment{
		"os_name":                        osName(runtime.GOOS),
		"sys_platform":                   sysPlatform(runtime.GOOS),
		"platform_system":                platformSystem(runtime.GOOS),
		"platform_machine":               platformMachine(runtime.GOARCH),
		"platform_release":               "",
		"platform_version":               "",
		"platform_python_implementation": "",
		"python_version":                 "",
		"python_full_version":            "",
		"implementation_name":            "",
		"implementation_version":         "",
		"extra":                          "",
	}

	for k, v := range overrides {
		env[k] = v
	}
	return env
}

// osName maps the host OS to the os.name marker convention.
func osName(goos string) string {
	if goos == "windows" {
		return "nt"
	}
	return "posix"
}

// sysPlatform maps the host OS to the sys.platform marker convention.
func sysPlatform(goos string) string {
	switch goos {
	case "darwin":
		return "darwin"
	case "windows":
		return "win32"
	default:
		return "linux"
	}
}

// platformSystem maps the host OS to the platform.system() marker convention.
func platformSystem(goos string) string {
	switch goos {
	case "darwin":
		return "Darwin"
	case "windows":
		return "Windows"
	default:
		return "Linux"
	}
}

// platformMachine maps the host architecture to the platform.machine() marker convention.
func platformMachine(goarch string) string {
	switch goarch {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "arm64"
	case "386":
		return "i686"
	default:
		return goarch
	}
}
