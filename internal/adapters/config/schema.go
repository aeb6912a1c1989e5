package config

// Pinfile represents the structure of the pinset.yaml configuration file.
type Pinfile struct {
	Version     string            `yaml:"version"`
	Manifests   []string          `yaml:"manifests"`
	Index       IndexDTO          `yaml:"index"`
	Environment map[string]string `yaml:"environment"`
}

// IndexDTO represents the package index settings in the configuration.
type IndexDTO struct {
	URL         string `yaml:"url"`
	Cache       string `yaml:"cache"`
	Parallelism int    `yaml:"parallelism"`
}
