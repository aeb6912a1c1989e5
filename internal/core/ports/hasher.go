package ports

// Hasher defines the interface for computing manifest content digests.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// DigestFiles computes a single stable digest over the given files.
	// The digest covers file paths and contents; order of the input slice
	// does not affect the result.
	DigestFiles(paths []string) (string, error)
}
