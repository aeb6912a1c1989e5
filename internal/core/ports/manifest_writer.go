package ports

import "go.trai.ch/pinset/internal/core/domain"

// ManifestWriter defines the interface for rendering manifests back to disk.
//
//go:generate mockgen -source=manifest_writer.go -destination=mocks/mock_manifest_writer.go -package=mocks
type ManifestWriter interface {
	// Format renders the manifest in canonical form.
	Format(m *domain.Manifest) string

	// WriteFile rewrites the manifest file at path in canonical form.
	WriteFile(path string, m *domain.Manifest) error
}
