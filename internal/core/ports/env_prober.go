package ports

import "go.trai.ch/pinset/internal/core/domain"

// EnvProber defines the interface for deriving the marker environment.
//
//go:generate mockgen -source=env_prober.go -destination=mocks/mock_env_prober.go -package=mocks
type EnvProber interface {
	// Probe returns the marker environment for the host, with the given
	// overrides applied on top.
	Probe(overrides map[string]string) domain.Environment
}
