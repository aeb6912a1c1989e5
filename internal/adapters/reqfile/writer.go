package reqfile

import (
	"os"
	"strings"

	"go.trai.ch/pinset/internal/core/domain"
	"go.trai.ch/pinset/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestWriter = (*Writer)(nil)

// Writer renders manifests in canonical form.
type Writer struct{}

// NewWriter creates a new manifest writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Format renders a manifest in canonical form: one declaration per line,
// authored order, normalized spacing around specifiers and markers.
func (w *Writer) Format(m *domain.Manifest) string {
	var b strings.Builder
	for i := range m.Requirements {
		b.WriteString(m.Requirements[i].String())
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteFile rewrites a manifest file in canonical form.
// Comments and include lines do not survive the rewrite.
func (w *Writer) WriteFile(path string, m *domain.Manifest) error {
	//nolint:gosec // Path is the manifest the caller already read
	if err := os.WriteFile(path, []byte(w.Format(m)), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write manifest"), "path", path)
	}
	return nil
}
