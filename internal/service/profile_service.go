package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/GTDGit/inventory_api/internal/models"
	"github.com/GTDGit/inventory_api/internal/utils"
)

// ProfileService reads and edits the signed-in owner's profile.
type ProfileService struct {
	profiles ProfileStore
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profiles ProfileStore) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// Get returns the profile of ownerID.
func (s *ProfileService) Get(ctx context.Context, ownerID string) (*models.Profile, error) {
	p, err := s.profiles.GetByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: get profile: %v", utils.ErrStore, err)
	}
	if p == nil {
		return nil, utils.ErrProfileNotFound
	}
	return p, nil
}

// Update applies patch to the profile of ownerID.
func (s *ProfileService) Update(ctx context.Context, ownerID string, patch *models.ProfilePatch) (*models.Profile, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", utils.ErrValidation)
		}
		patch.Name = &name
	}

	p, err := s.profiles.Update(ctx, ownerID, patch)
	if errors.Is(err, utils.ErrProfileNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: update profile: %v", utils.ErrStore, err)
	}
	return p, nil
}
