package ports

import "go.trai.ch/pinset/internal/core/domain"

// LockStore defines the interface for reading and writing the lockfile.
//
//go:generate mockgen -source=lock_store.go -destination=mocks/mock_lock_store.go -package=mocks
type LockStore interface {
	// Read loads the lockfile from the given workspace root.
	// Returns ErrLockfileNotFound if none exists.
	Read(root string) (*domain.Lockfile, error)

	// Write persists the lockfile atomically under the given workspace root.
	Write(root string, lock *domain.Lockfile) error
}
