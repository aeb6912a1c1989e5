// Package index implements the PackageIndex port against the PyPI JSON API.
package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/pinset/internal/core/domain"
	"go.trai.ch/zerr"
)

const httpClientTimeout = 30 * time.Second

var errCacheMiss = errors.New("cache miss")

// Client implements ports.PackageIndex using the JSON API with local caching.
type Client struct {
	baseURL    string
	cacheDir   string
	httpClient *http.Client
}

// NewClient creates a new PackageIndex client for the given configuration.
func NewClient(cfg *domain.Config) (*Client, error) {
	baseURL := cfg.IndexURL
	if baseURL == "" {
		baseURL = domain.DefaultIndexURL
	}
	cacheDir := cfg.CacheDir
	if cacheDir == "" {
		cacheDir = domain.DefaultIndexCachePath()
	}
	return newClientWithClient(baseURL, cacheDir, &http.Client{
		Timeout: httpClientTimeout,
	})
}

// newClientWithClient creates a Client with a custom http client and cache path (used for testing).
func newClientWithClient(baseURL, cacheDir string, client *http.Client) (*Client, error) {
	cleanPath := filepath.Clean(cacheDir)
	if err := os.MkdirAll(cleanPath, domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, domain.ErrCacheCreateFailed.Error())
	}

	return &Client{
		baseURL:    baseURL,
		cacheDir:   cleanPath,
		httpClient: client,
	}, nil
}

// Versions returns every known release of the named package.
// It checks the cache first, then queries the index if needed.
func (c *Client) Versions(ctx context.Context, name string) ([]*domain.Version, error) {
	canonical := domain.CanonicalName(name)

	cachePath := c.cachePath(canonical)
	if entry, err := loadCache[versionsEntry](cachePath); err == nil {
		return parseVersions(entry.Versions), nil
	}

	resp, err := c.queryProject(ctx, canonical)
	if err != nil {
		return nil, err
	}

	raw := make([]string, 0, len(resp.Releases))
	for v := range resp.Releases {
		raw = append(raw, v)
	}

	if err := c.saveCache(cachePath, versionsEntry{
		Name:      canonical,
		Versions:  raw,
		Timestamp: time.Now(),
	}); err != nil {
		// A cache write failure only costs a future network round trip.
		_ = err
	}

	return parseVersions(raw), nil
}

// Metadata returns the release metadata for an exact version.
func (c *Client) Metadata(ctx context.Context, name, version string) (*domain.ReleaseMetadata, error) {
	canonical := domain.CanonicalName(name)

	cachePath := c.cachePath(canonical + "@" + version)
	if entry, err := loadCache[metadataEntry](cachePath); err == nil {
		return &domain.ReleaseMetadata{
			Name:         entry.Name,
			Version:      entry.Version,
			RequiresDist: entry.RequiresDist,
		}, nil
	}

	resp, err := c.queryRelease(ctx, canonical, version)
	if err != nil {
		return nil, err
	}

	meta := &domain.ReleaseMetadata{
		Name:         canonical,
		Version:      version,
		RequiresDist: resp.Info.RequiresDist,
	}

	if err := c.saveCache(cachePath, metadataEntry{
		Name:         meta.Name,
		Version:      meta.Version,
		RequiresDist: meta.RequiresDist,
		Timestamp:    time.Now(),
	}); err != nil {
		_ = err
	}

	return meta, nil
}

// parseVersions drops strings the version grammar does not cover,
// such as legacy date-based uploads.
func parseVersions(raw []string) []*domain.Version {
	versions := make([]*domain.Version, 0, len(raw))
	for _, s := range raw {
		v, err := domain.ParseVersion(s)
		if err != nil {
			continue
		}
		versions = append(versions, v)
	}
	return versions
}

// cachePath returns the file path for the cache entry.
func (c *Client) cachePath(key string) string {
	hash := fmt.Sprintf("%016x", xxhash.Sum64String(key))
	return filepath.Join(c.cacheDir, hash+".json")
}

// loadCache attempts to load a cached index response.
func loadCache[T any](path string) (*T, error) {
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errCacheMiss
		}
		return nil, err
	}

	var entry T
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, errCacheMiss
	}
	return &entry, nil
}

// saveCache writes a cache entry atomically by writing to a temp file and renaming it.
func (c *Client) saveCache(path string, entry any) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, "index-cache-*.json")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// queryProject fetches the project listing, which enumerates releases.
func (c *Client) queryProject(ctx context.Context, name string) (*projectResponse, error) {
	endpoint := fmt.Sprintf("%s/%s/json", c.baseURL, url.PathEscape(name))

	body, err := c.get(ctx, endpoint, name)
	if err != nil {
		return nil, err
	}

	var resp projectResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrIndexUnavailable.Error()), "package", name)
	}
	return &resp, nil
}

// queryRelease fetches the metadata for one exact release.
func (c *Client) queryRelease(ctx context.Context, name, version string) (*releaseResponse, error) {
	endpoint := fmt.Sprintf("%s/%s/%s/json", c.baseURL, url.PathEscape(name), url.PathEscape(version))

	body, err := c.get(ctx, endpoint, name)
	if err != nil {
		return nil, err
	}

	var resp releaseResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		unavailableErr := zerr.With(zerr.Wrap(err, domain.ErrIndexUnavailable.Error()), "package", name)
		return nil, zerr.With(unavailableErr, "version", version)
	}
	return &resp, nil
}

func (c *Client) get(ctx context.Context, endpoint, name string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrIndexUnavailable.Error())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrIndexUnavailable.Error()), "package", name)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownPackage, "index has no such project"), "package", name)
	}
	if resp.StatusCode != http.StatusOK {
		unavailableErr := zerr.With(zerr.Wrap(domain.ErrIndexUnavailable, "unexpected index response"),
			"status_code", resp.StatusCode)
		return nil, zerr.With(unavailableErr, "package", name)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrIndexUnavailable.Error()), "package", name)
	}
	return body, nil
}
