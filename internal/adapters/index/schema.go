package index

import (
	"encoding/json"
	"time"
)

// projectResponse is the wire format of the project endpoint.
// Only the release map is read; file entries under each release are ignored.
type projectResponse struct {
	Releases map[string][]json.RawMessage `json:"releases"`
}

// releaseResponse is the wire format of the single-release endpoint.
type releaseResponse struct {
	Info releaseInfo `json:"info"`
}

type releaseInfo struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	RequiresDist []string `json:"requires_dist"`
}

// versionsEntry is the on-disk cache format for a project listing.
type versionsEntry struct {
	Name      string    `json:"name"`
	Versions  []string  `json:"versions"`
	Timestamp time.Time `json:"timestamp"`
}

// metadataEntry is the on-disk cache format for one release's metadata.
type metadataEntry struct {
	Name         string    `json:"name"`
	Version      string    `json:"version"`
	RequiresDist []string  `json:"requires_dist"`
	Timestamp    time.Time `json:"timestamp"`
}
