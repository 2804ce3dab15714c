package driven

import (
	"context"
	"errors"
	"time"

	"github.com/ericfisherdev/profile-manager/internal/domain/model"
)

var (
	// ErrProfileNotFound is returned when no profile with the requested name exists.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrProfileExists is returned by Create when the profile name is already taken.
	ErrProfileExists = errors.New("profile already exists")
)

// ProfileStore defines the driven port for profile persistence.
type ProfileStore interface {
	// Create inserts a new profile and returns it with its assigned ID.
	// Returns ErrProfileExists if the name is already taken; the store is
	// left unchanged in that case.
	Create(ctx context.Context, p model.Profile) (model.Profile, error)

	// GetByName returns the named profile, or ErrProfileNotFound.
	GetByName(ctx context.Context, name string) (*model.Profile, error)

	// ListAll returns every profile in creation order. A fresh call
	// re-queries the store.
	ListAll(ctx context.Context) ([]model.Profile, error)

	// GetActive returns the currently active profile, or nil when none is.
	GetActive(ctx context.Context) (*model.Profile, error)

	// SetActive marks the named profile active, clears whichever profile
	// previously held the flag, and stamps last_activated_at, all in one
	// transaction. Returns ErrProfileNotFound if the name is absent.
	SetActive(ctx context.Context, name string, at time.Time) error

	// ClearActive clears the active flag and returns the profile that held
	// it, or nil when no profile was active.
	ClearActive(ctx context.Context) (*model.Profile, error)

	// Delete removes the named profile. Returns ErrProfileNotFound if it is
	// absent. Deleting the active profile leaves the store with no active
	// profile; no replacement is chosen.
	Delete(ctx context.Context, name string) error
}
