// Package config provides the configuration loader for pinset.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/pinset/internal/core/domain"
	"go.trai.ch/pinset/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads pinset.yaml from the given working directory.
// A missing file yields the built-in defaults.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	path := filepath.Join(cwd, domain.ConfigFileName)

	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the user's cwd
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var pinfile Pinfile
	if err := yaml.Unmarshal(data, &pinfile); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}

	return l.toDomain(&pinfile), nil
}

// toDomain maps the DTO onto domain.Config, filling defaults for anything
// the file leaves unset.
func (l *Loader) toDomain(pinfile *Pinfile) *domain.Config {
	cfg := domain.DefaultConfig()

	if len(pinfile.Manifests) > 0 {
		cfg.Manifests = pinfile.Manifests
	}
	if pinfile.Index.URL != "" {
		cfg.IndexURL = pinfile.Index.URL
	}
	if pinfile.Index.Cache != "" {
		cfg.CacheDir = pinfile.Index.Cache
	}
	if pinfile.Index.Parallelism > 0 {
		cfg.Parallelism = pinfile.Index.Parallelism
	}

	if len(pinfile.Environment) > 0 {
		cfg.Environment = make(map[string]string, len(pinfile.Environment))
		for key, value := range pinfile.Environment {
			if !domain.IsMarkerVariable(key) {
				l.logger.Warn("ignoring unknown marker variable in config: " + key)
				continue
			}
			cfg.Environment[key] = value
		}
	}

	return cfg
}
