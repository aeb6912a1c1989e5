package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidVersion is returned when a version string does not parse.
	ErrInvalidVersion = zerr.New("invalid version")

	// ErrInvalidSpecifier is returned when a version specifier clause does not parse.
	ErrInvalidSpecifier = zerr.New("invalid version specifier")

	// ErrInvalidMarker is returned when an environment marker expression does not parse.
	ErrInvalidMarker = zerr.New("invalid environment marker")

	// ErrUnknownMarkerVariable is returned when a marker references a variable
	// outside the recognized set.
	ErrUnknownMarkerVariable = zerr.New("unknown marker variable")

	// ErrEmptyRequirementName is returned when a declaration has no package name.
	ErrEmptyRequirementName = zerr.New("empty requirement name")

	// ErrInvalidRequirement is returned when a requirement line does not parse.
	ErrInvalidRequirement = zerr.New("invalid requirement")

	// ErrDuplicateRequirement is returned when a canonical name is declared twice.
	ErrDuplicateRequirement = zerr.New("duplicate requirement")

	// ErrMissingDependency is returned when a graph edge points at a package
	// that is not a node.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when the dependency graph contains a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrPackageAlreadyExists is returned when a package is added to the graph twice.
	ErrPackageAlreadyExists = zerr.New("package already exists")

	// ErrNoSatisfyingVersion is returned when no known release matches a specifier set.
	ErrNoSatisfyingVersion = zerr.New("no satisfying version")

	// ErrUnknownPackage is returned when the index has no releases for a name.
	ErrUnknownPackage = zerr.New("unknown package")

	// ErrIndexUnavailable is returned when the package index cannot be reached.
	ErrIndexUnavailable = zerr.New("package index unavailable")

	// ErrLockDigestMismatch is returned when the lockfile was produced from
	// different manifest content than what is on disk.
	ErrLockDigestMismatch = zerr.New("lockfile digest mismatch")

	// ErrLockfileNotFound is returned when no lockfile exists yet.
	ErrLockfileNotFound = zerr.New("lockfile not found")

	// ErrLockfileVersion is returned when the lockfile format version is unsupported.
	ErrLockfileVersion = zerr.New("unsupported lockfile version")

	// ErrManifestNotFound is returned when a manifest path does not exist.
	ErrManifestNotFound = zerr.New("manifest not found")

	// ErrIncludeCycle is returned when -r include lines form a cycle.
	ErrIncludeCycle = zerr.New("include cycle")

	// ErrCheckFailed signals that diagnostics were reported; the CLI maps it
	// to a non-zero exit without logging it as an internal failure.
	ErrCheckFailed = zerr.New("check failed")

	// ErrStoreReadFailed is returned when the lock store cannot read state.
	ErrStoreReadFailed = zerr.New("failed to read lock store")

	// ErrStoreWriteFailed is returned when the lock store cannot persist state.
	ErrStoreWriteFailed = zerr.New("failed to write lock store")

	// ErrCacheCreateFailed is returned when the index cache directory cannot be created.
	ErrCacheCreateFailed = zerr.New("failed to create index cache")
)
