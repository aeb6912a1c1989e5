package lockstore

import "go.trai.ch/pinset/internal/core/domain"

// lockfileDTO is the YAML schema of the lockfile.
type lockfileDTO struct {
	Version  int               `yaml:"version"`
	Digest   string            `yaml:"digest"`
	Packages map[string]pinDTO `yaml:"packages"`
}

type pinDTO struct {
	Version     string `yaml:"version"`
	Requirement string `yaml:"requirement"`
	Manifest    string `yaml:"manifest"`
	Line        int    `yaml:"line"`
}

func (d *lockfileDTO) toDomain() *domain.Lockfile {
	packages := make(map[string]domain.LockedPackage, len(d.Packages))
	for name, pin := range d.Packages {
		packages[name] = domain.LockedPackage{
			Version:     pin.Version,
			Requirement: pin.Requirement,
			Manifest:    pin.Manifest,
			Line:        pin.Line,
		}
	}
	return &domain.Lockfile{
		Version:  d.Version,
		Digest:   d.Digest,
		Packages: packages,
	}
}

func fromDomain(lock *domain.Lockfile) *lockfileDTO {
	packages := make(map[string]pinDTO, len(lock.Packages))
	for name, pin := range lock.Packages {
		packages[name] = pinDTO{
			Version:     pin.Version,
			Requirement: pin.Requirement,
			Manifest:    pin.Manifest,
			Line:        pin.Line,
		}
	}
	return &lockfileDTO{
		Version:  lock.Version,
		Digest:   lock.Digest,
		Packages: packages,
	}
}
