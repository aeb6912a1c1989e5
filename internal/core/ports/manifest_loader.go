// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/pinset/internal/core/domain"

// ManifestLoader defines the interface for loading requirement manifests.
//
//go:generate mockgen -source=manifest_loader.go -destination=mocks/mock_manifest_loader.go -package=mocks
type ManifestLoader interface {
	// Load parses the manifest at path, following -r includes, and returns
	// the merged declaration list in authored order.
	Load(path string) (*domain.Manifest, error)
}
