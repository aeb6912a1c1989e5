package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pinset/internal/adapters/config"
	"go.trai.ch/pinset/internal/core/domain"
	"go.trai.ch/pinset/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	log := mocks.NewMockLogger(gomock.NewController(t))
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return config.NewLoader(log)
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	path := filepath.Join(dir, domain.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoader_Load_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := newLoader(t).Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, []string{domain.DefaultManifestName}, cfg.Manifests)
	assert.Equal(t, domain.DefaultIndexURL, cfg.IndexURL)
	assert.Equal(t, domain.DefaultIndexCachePath(), cfg.CacheDir)
	assert.Equal(t, domain.DefaultParallelism, cfg.Parallelism)
	assert.Empty(t, cfg.Environment)
}

func TestLoader_Load_FullFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
version: "1"
manifests:
  - requirements.txt
  - requirements-dev.txt
index:
  url: https://mirror.example.org/pypi
  cache: /tmp/pinset-cache
  parallelism: 4
environment:
  sys_platform: linux
  python_version: "3.12"
`)

	cfg, err := newLoader(t).Load(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"requirements.txt", "requirements-dev.txt"}, cfg.Manifests)
	assert.Equal(t, "https://mirror.example.org/pypi", cfg.IndexURL)
	assert.Equal(t, "/tmp/pinset-cache", cfg.CacheDir)
	assert.Equal(t, 4, cfg.Parallelism)
	assert.Equal(t, map[string]string{
		"sys_platform":   "linux",
		"python_version": "3.12",
	}, cfg.Environment)
}

func TestLoader_Load_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "manifests:\n  - deps.txt\n")

	cfg, err := newLoader(t).Load(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"deps.txt"}, cfg.Manifests)
	assert.Equal(t, domain.DefaultIndexURL, cfg.IndexURL)
	assert.Equal(t, domain.DefaultParallelism, cfg.Parallelism)
}

func TestLoader_Load_UnknownMarkerVariableIsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
environment:
  sys_platform: darwin
  favourite_color: blue
`)

	log := mocks.NewMockLogger(gomock.NewController(t))
	log.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, "favourite_color")
	})

	cfg, err := config.NewLoader(log).Load(dir)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"sys_platform": "darwin"}, cfg.Environment)
}

func TestLoader_Load_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "manifests: [unterminated\n")

	_, err := newLoader(t).Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}
