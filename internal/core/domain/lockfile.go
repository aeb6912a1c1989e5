package domain

import "slices"

// LockfileFormatVersion is the lockfile schema version this build writes.
const LockfileFormatVersion = 1

// LockedPackage is a single exact pin recorded in the lockfile.
type LockedPackage struct {
	// Version is the resolved exact version string.
	Version string

	// Requirement is the canonical declaration the pin satisfies.
	Requirement string

	// Manifest is the file the declaration came from.
	Manifest string

	// Line is the declaration's line number in that file.
	Line int
}

// Lockfile is a reproducible snapshot of resolved manifest pins.
type Lockfile struct {
	// Version is the lockfile format version, for future schema migrations.
	Version int

	// Digest is the content digest of the manifests the pins were resolved
	// from. A digest mismatch means the lockfile is stale.
	Digest string

	// Packages maps canonical package names to their pins.
	Packages map[string]LockedPackage
}

// DriftKind classifies a difference between a lockfile and a manifest.
type DriftKind string

const (
	// DriftAdded means the manifest declares a package the lockfile lacks.
	DriftAdded DriftKind = "added"
	// DriftRemoved means the lockfile pins a package no longer declared.
	DriftRemoved DriftKind = "removed"
	// DriftChanged means the locked version no longer satisfies the declaration.
	DriftChanged DriftKind = "changed"
)

// Drift is a single difference between lockfile and manifest.
type Drift struct {
	Kind    DriftKind
	Name    string
	Locked  string // locked version, empty for DriftAdded
	Wanted  string // current specifier set, empty for DriftRemoved
	Invalid bool   // the locked version fails to parse against the manifest
}

// Diff compares the lockfile against the applicable declarations of a
// manifest and returns the drift in deterministic (manifest, then lockfile)
// order. A nil result means the lockfile still covers the manifest.
func (l *Lockfile) Diff(m *Manifest, env Environment) []Drift {
	var drift []Drift
	declared := make(map[string]bool)

	for _, r := range m.Applicable(env) {
		name := r.Canonical.String()
		declared[name] = true

		locked, ok := l.Packages[name]
		if !ok {
			drift = append(drift, Drift{
				Kind:   DriftAdded,
				Name:   name,
				Wanted: r.Specifiers.String(),
			})
			continue
		}

		v, err := ParseVersion(locked.Version)
		if err != nil {
			drift = append(drift, Drift{
				Kind:    DriftChanged,
				Name:    name,
				Locked:  locked.Version,
				Wanted:  r.Specifiers.String(),
				Invalid: true,
			})
			continue
		}
		if !r.Specifiers.Match(v) {
			drift = append(drift, Drift{
				Kind:   DriftChanged,
				Name:   name,
				Locked: locked.Version,
				Wanted: r.Specifiers.String(),
			})
		}
	}

	for _, name := range sortedKeys(l.Packages) {
		if !declared[name] {
			drift = append(drift, Drift{
				Kind:   DriftRemoved,
				Name:   name,
				Locked: l.Packages[name].Version,
			})
		}
	}

	return drift
}

func sortedKeys(m map[string]LockedPackage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
