// Package detector provides environment detection for log format selection.
package detector

import (
	"os"

	"golang.org/x/term"
)

// LogFormat represents how diagnostics are rendered.
type LogFormat int

const (
	// FormatAuto picks based on the environment.
	FormatAuto LogFormat = iota
	// FormatPretty renders styled human-readable lines.
	FormatPretty
	// FormatJSON renders one JSON object per line for machine consumers.
	FormatJSON
)

// DetectLogFormat returns the recommended format based on the environment.
// Non-TTY output and CI both get JSON so logs stay parseable in pipelines.
func DetectLogFormat() LogFormat {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return FormatJSON
	}
	return FormatPretty
}

// ResolveLogFormat applies the user's flag on top of auto-detection.
// userFlag should be one of: "auto", "pretty", "json", or empty.
func ResolveLogFormat(autoDetected LogFormat, userFlag string) LogFormat {
	switch userFlag {
	case "pretty":
		return FormatPretty
	case "json":
		return FormatJSON
	default:
		return autoDetected
	}
}
