package ports

import "go.trai.ch/pinset/internal/core/domain"

// ConfigLoader defines the interface for loading project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads pinset.yaml from the given working directory.
	// A missing file yields the built-in defaults, not an error.
	Load(cwd string) (*domain.Config, error)
}
