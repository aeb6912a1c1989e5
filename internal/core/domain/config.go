package domain

// DefaultIndexURL is the package index queried when none is configured.
const DefaultIndexURL = "https://pypi.org/pypi"

// DefaultParallelism bounds concurrent index requests during resolution.
const DefaultParallelism = 8

// Config is the project configuration loaded from pinset.yaml.
type Config struct {
	// Manifests are the manifest files to operate on, relative to the
	// config file. Defaults to [requirements.txt].
	Manifests []string

	// IndexURL is the base URL of the package index.
	IndexURL string

	// CacheDir overrides the index cache location.
	CacheDir string

	// Parallelism bounds concurrent index requests.
	Parallelism int

	// Environment overrides marker variables on top of the host probe,
	// e.g. pinning python_version to the interpreter the project targets.
	Environment map[string]string
}

// DefaultConfig returns the configuration used when no pinset.yaml exists.
func DefaultConfig() *Config {
	return &Config{
		Manifests:   []string{DefaultManifestName},
		IndexURL:    DefaultIndexURL,
		CacheDir:    DefaultIndexCachePath(),
		Parallelism: DefaultParallelism,
	}
}
