package domain

// ReleaseMetadata is what the package index knows about one exact release.
type ReleaseMetadata struct {
	// Name is the canonical package name.
	Name string

	// Version is the exact release version.
	Version string

	// RequiresDist holds the release's dependency declaration lines,
	// in the same grammar as manifest lines (markers included).
	RequiresDist []string
}
