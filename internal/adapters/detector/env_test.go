package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pinset/internal/adapters/detector"
)

func TestResolveLogFormat(t *testing.T) {
	tests := []struct {
		name     string
		detected detector.LogFormat
		flag     string
		want     detector.LogFormat
	}{
		{"flag pretty wins", detector.FormatJSON, "pretty", detector.FormatPretty},
		{"flag json wins", detector.FormatPretty, "json", detector.FormatJSON},
		{"auto keeps detection", detector.FormatJSON, "auto", detector.FormatJSON},
		{"empty keeps detection", detector.FormatPretty, "", detector.FormatPretty},
		{"unknown keeps detection", detector.FormatPretty, "yaml", detector.FormatPretty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detector.ResolveLogFormat(tt.detected, tt.flag))
		})
	}
}

func TestDetectLogFormat_CI(t *testing.T) {
	t.Setenv("CI", "true")
	assert.Equal(t, detector.FormatJSON, detector.DetectLogFormat())
}
