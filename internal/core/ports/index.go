package ports

import (
	"context"

	"go.trai.ch/pinset/internal/core/domain"
)

// PackageIndex defines the interface for querying a package index.
//
//go:generate mockgen -source=index.go -destination=mocks/mock_index.go -package=mocks
type PackageIndex interface {
	// Versions returns every known release of the named package.
	// The order is unspecified; callers sort as needed.
	Versions(ctx context.Context, name string) ([]*domain.Version, error)

	// Metadata returns the release metadata for an exact version,
	// including its requires_dist declaration lines.
	Metadata(ctx context.Context, name, version string) (*domain.ReleaseMetadata, error)
}
