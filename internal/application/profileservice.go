// Package application holds the activation engine that orchestrates profile
// mutations as repository-plus-audit sequences.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ericfisherdev/profile-manager/internal/domain/model"
	"github.com/ericfisherdev/profile-manager/internal/domain/port/driven"
)

// ErrMissingField is returned by Add when a required field is empty. The CLI
// collects missing values interactively before calling the engine, so hitting
// this means the caller skipped collection.
var ErrMissingField = errors.New("missing required profile field")

// AddProfileRequest carries a fully-populated profile to create. Whoever
// builds the request (interactive prompt, flags) is responsible for filling
// every field; the engine performs no interactive I/O.
type AddProfileRequest struct {
	Name      string
	Kind      string
	AccessKey string
	SecretKey string
	Region    string
}

// ProfileService is the activation engine over the profile store and the
// audit trail. Every successful mutation appends exactly one audit event;
// a failed repository call appends none.
type ProfileService struct {
	profiles driven.ProfileStore
	audit    driven.AuditStore
	logger   *slog.Logger
	now      func() time.Time
}

// NewProfileService creates a new ProfileService with the required dependencies.
func NewProfileService(profiles driven.ProfileStore, audit driven.AuditStore, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		audit:    audit,
		logger:   logger,
		now:      time.Now,
	}
}

// Add creates a new profile from the request and records CREATE_PROFILE.
func (s *ProfileService) Add(ctx context.Context, req AddProfileRequest) (model.Profile, error) {
	for field, value := range map[string]string{
		"name":   req.Name,
		"kind":   req.Kind,
		"key":    req.AccessKey,
		"secret": req.SecretKey,
		"region": req.Region,
	} {
		if value == "" {
			return model.Profile{}, fmt.Errorf("%w: %s", ErrMissingField, field)
		}
	}

	createdAt := s.now()
	profile, err := s.profiles.Create(ctx, model.Profile{
		Name:      req.Name,
		Kind:      req.Kind,
		AccessKey: req.AccessKey,
		SecretKey: req.SecretKey,
		Region:    req.Region,
		CreatedAt: createdAt,
	})
	if err != nil {
		return model.Profile{}, err
	}

	if err := s.record(ctx, createdAt, profile.Name, profile.Kind, model.ActionCreateProfile); err != nil {
		return model.Profile{}, err
	}

	s.logger.Debug("profile created", "name", profile.Name, "kind", profile.Kind)
	return profile, nil
}

// Remove deletes the named profile and records REMOVE_PROFILE. If the removed
// profile was active, no replacement is activated; the store is left with zero
// active profiles.
func (s *ProfileService) Remove(ctx context.Context, name string) error {
	profile, err := s.profiles.GetByName(ctx, name)
	if err != nil {
		return err
	}

	if err := s.profiles.Delete(ctx, name); err != nil {
		return err
	}

	if err := s.record(ctx, s.now(), profile.Name, profile.Kind, model.ActionRemoveProfile); err != nil {
		return err
	}

	s.logger.Debug("profile removed", "name", name, "was_active", profile.IsActive)
	return nil
}

// Activate marks the named profile as the single active one and records
// ACTIVATE_PROFILE. Returns the activated profile.
func (s *ProfileService) Activate(ctx context.Context, name string) (model.Profile, error) {
	at := s.now()
	if err := s.profiles.SetActive(ctx, name, at); err != nil {
		return model.Profile{}, err
	}

	profile, err := s.profiles.GetByName(ctx, name)
	if err != nil {
		return model.Profile{}, err
	}

	if err := s.record(ctx, at, profile.Name, profile.Kind, model.ActionActivateProfile); err != nil {
		return model.Profile{}, err
	}

	s.logger.Debug("profile activated", "name", name)
	return *profile, nil
}

// Deactivate clears the active flag and records DEACTIVATE_PROFILE against
// whichever profile held it. When no profile is active it is a no-op: nil is
// returned and no event is recorded, so repeated calls are safe.
func (s *ProfileService) Deactivate(ctx context.Context) (*model.Profile, error) {
	cleared, err := s.profiles.ClearActive(ctx)
	if err != nil {
		return nil, err
	}
	if cleared == nil {
		return nil, nil
	}

	if err := s.record(ctx, s.now(), cleared.Name, cleared.Kind, model.ActionDeactivateProfile); err != nil {
		return nil, err
	}

	s.logger.Debug("profile deactivated", "name", cleared.Name)
	return cleared, nil
}

// List returns every profile in creation order. The active profile, if any,
// carries IsActive = true.
func (s *ProfileService) List(ctx context.Context) ([]model.Profile, error) {
	return s.profiles.ListAll(ctx)
}

// Active returns the currently active profile, or nil when none is.
func (s *ProfileService) Active(ctx context.Context) (*model.Profile, error) {
	return s.profiles.GetActive(ctx)
}

// History returns the full audit trail in append order.
func (s *ProfileService) History(ctx context.Context) ([]model.AuditEvent, error) {
	return s.audit.ListAll(ctx)
}

func (s *ProfileService) record(ctx context.Context, at time.Time, name, kind string, action model.AuditAction) error {
	return s.audit.Record(ctx, model.AuditEvent{
		OccurredAt:  at,
		ProfileName: name,
		Kind:        kind,
		Action:      action,
	})
}
