// Package lockstore implements the LockStore port using a YAML file at the workspace root.
package lockstore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/pinset/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Store implements ports.LockStore using a single file per workspace.
type Store struct{}

// NewStore creates a new LockStore.
func NewStore() (*Store, error) {
	return &Store{}, nil
}

// Read loads the lockfile from the given workspace root.
func (s *Store) Read(root string) (*domain.Lockfile, error) {
	path := filepath.Join(root, domain.LockFileName)
	//nolint:gosec // Path is constructed from the workspace root
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrLockfileNotFound, "nothing locked yet"), "path", path)
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	var dto lockfileDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	if dto.Version != domain.LockfileFormatVersion {
		return nil, zerr.With(zerr.Wrap(domain.ErrLockfileVersion, "regenerate the lockfile"), "found", dto.Version)
	}

	return dto.toDomain(), nil
}

// Write persists the lockfile atomically under the given workspace root.
func (s *Store) Write(root string, lock *domain.Lockfile) error {
	data, err := yaml.Marshal(fromDomain(lock))
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	path := filepath.Join(root, domain.LockFileName)
	if err := atomicWriteFile(path, data); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return nil
}

// atomicWriteFile writes data to a file atomically by writing to a temp file and renaming it.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, "lock-*.yaml")
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
