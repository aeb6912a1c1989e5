package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pinset/internal/core/domain"
)

func lockWith(pins map[string]string) *domain.Lockfile {
	packages := make(map[string]domain.LockedPackage, len(pins))
	for name, version := range pins {
		packages[name] = domain.LockedPackage{Version: version}
	}
	return &domain.Lockfile{
		Version:  domain.LockfileFormatVersion,
		Digest:   "0011223344556677",
		Packages: packages,
	}
}

func manifestWith(t *testing.T, specs map[string]string) *domain.Manifest {
	t.Helper()
	m := &domain.Manifest{}
	for name, spec := range specs {
		r, err := domain.NewRequirement(name)
		require.NoError(t, err)
		r.Specifiers = mustSet(t, spec)
		m.Add(r)
	}
	return m
}

func TestLockfile_Diff_Clean(t *testing.T) {
	lock := lockWith(map[string]string{"pytest": "7.4.0", "fasteners": "0.19"})
	m := manifestWith(t, map[string]string{"pytest": "==7.4.0", "fasteners": ""})

	assert.Empty(t, lock.Diff(m, cpythonEnv()))
}

func TestLockfile_Diff_AddedRemovedChanged(t *testing.T) {
	lock := lockWith(map[string]string{
		"pytest":   "7.4.0",
		"obsolete": "1.0",
	})
	m := manifestWith(t, map[string]string{
		"pytest":   "==8.0.0", // locked pin no longer satisfies
		"paramiko": "==3.4.0", // not locked yet
	})

	drift := lock.Diff(m, cpythonEnv())
	require.Len(t, drift, 3)

	byName := make(map[string]domain.Drift, len(drift))
	for _, d := range drift {
		byName[d.Name] = d
	}

	assert.Equal(t, domain.DriftChanged, byName["pytest"].Kind)
	assert.Equal(t, "7.4.0", byName["pytest"].Locked)
	assert.Equal(t, domain.DriftAdded, byName["paramiko"].Kind)
	assert.Equal(t, domain.DriftRemoved, byName["obsolete"].Kind)
}

func TestLockfile_Diff_SkipsInapplicable(t *testing.T) {
	m := manifestWith(t, map[string]string{"pywin32": "==306"})
	marker, err := domain.ParseMarker(`sys_platform == 'win32'`)
	require.NoError(t, err)
	m.Requirements[0].Marker = marker

	lock := lockWith(map[string]string{})
	assert.Empty(t, lock.Diff(m, cpythonEnv()), "marker-excluded declarations are not drift")
}

func TestLockfile_Diff_UnparseableLockedVersion(t *testing.T) {
	lock := lockWith(map[string]string{"pytest": "not-a-version"})
	m := manifestWith(t, map[string]string{"pytest": ">=7"})

	drift := lock.Diff(m, cpythonEnv())
	require.Len(t, drift, 1)
	assert.Equal(t, domain.DriftChanged, drift[0].Kind)
	assert.True(t, drift[0].Invalid)
}
