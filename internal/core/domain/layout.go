package domain

import "path/filepath"

const (
	// PinsetDirName is the name of the internal workspace directory.
	PinsetDirName = ".pinset"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// IndexDirName is the name of the package index cache directory.
	IndexDirName = "index"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "pinset.yaml"

	// LockFileName is the name of the lockfile.
	LockFileName = "pinset.lock.yaml"

	// DefaultManifestName is the manifest checked when none are configured.
	DefaultManifestName = "requirements.txt"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultPinsetPath returns the default root directory for pinset metadata.
func DefaultPinsetPath() string {
	return PinsetDirName
}

// DefaultIndexCachePath returns the default path for the index cache.
// It joins .pinset, cache, and index.
func DefaultIndexCachePath() string {
	return filepath.Join(PinsetDirName, CacheDirName, IndexDirName)
}
