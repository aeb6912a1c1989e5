package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pinset/internal/adapters/fs"
)

func TestHasher_DigestFiles_OrderIndependent(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("pytest==7.4.0\n"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("fasteners\n"), 0o600))

	h := fs.NewHasher()
	d1, err := h.DigestFiles([]string{a, b})
	require.NoError(t, err)
	d2, err := h.DigestFiles([]string{b, a})
	require.NoError(t, err)

	assert.Equal(t, d1, d2)
	assert.Len(t, d1, 16)
}

func TestHasher_DigestFiles_ContentSensitive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(path, []byte("pytest==7.4.0\n"), 0o600))

	h := fs.NewHasher()
	before, err := h.DigestFiles([]string{path})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("pytest==8.0.0\n"), 0o600))
	after, err := h.DigestFiles([]string{path})
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
}

func TestHasher_DigestFiles_MissingFile(t *testing.T) {
	h := fs.NewHasher()
	_, err := h.DigestFiles([]string{filepath.Join(t.TempDir(), "nope.txt")})
	require.Error(t, err)
}
