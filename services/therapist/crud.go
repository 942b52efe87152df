package therapist

import (
	"fmt"

	"mendwell/models"
	"mendwell/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegisterTherapist creates a therapist profile for a platform user. A user
// can own at most one profile.
func (s *DefaultTherapistService) RegisterTherapist(therapist *models.Therapist) (*models.Therapist, error) {
	if therapist.UserID == "" {
		return nil, fmt.Errorf("an owning user id is required")
	}
	if therapist.Name == "" {
		return nil, fmt.Errorf("a display name is required")
	}

	exists, err := s.Repo.ExistsForUser(therapist.UserID)
	if err != nil {
		utils.GetLogger().Error("RegisterTherapist: ownership probe failed", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if exists {
		return nil, fmt.Errorf("this account already has a therapist profile")
	}

	therapist.ID = uuid.New().String()
	therapist.FollowerCount = 0
	therapist.Verified = false
	therapist.VerificationStatus = models.VerificationNone

	if err := s.Repo.Create(therapist); err != nil {
		utils.GetLogger().Error("RegisterTherapist: failed to create profile", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	return therapist, nil
}

// UpdateTherapist replaces the profile after checking that the caller owns it.
// Counters and verification state are preserved.
func (s *DefaultTherapistService) UpdateTherapist(userID string, therapist *models.Therapist) (*models.Therapist, error) {
	current, err := s.Repo.GetByID(therapist.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch therapist: %w", err)
	}
	if current == nil {
		return nil, fmt.Errorf("therapist with id %s not found", therapist.ID)
	}
	if current.UserID != userID {
		return nil, fmt.Errorf("only the profile owner can update it")
	}

	therapist.UserID = current.UserID
	therapist.FollowerCount = current.FollowerCount
	therapist.Rating = current.Rating
	therapist.Verified = current.Verified
	therapist.VerificationStatus = current.VerificationStatus
	therapist.VerificationDocument = current.VerificationDocument
	therapist.CreatedAt = current.CreatedAt

	if err := s.Repo.Update(therapist); err != nil {
		utils.GetLogger().Error("UpdateTherapist: failed to update profile", zap.String("id", therapist.ID), zap.Error(err))
		return nil, fmt.Errorf("profile update failed, please try again")
	}
	return therapist, nil
}

// GetTherapistByID retrieves a therapist profile.
func (s *DefaultTherapistService) GetTherapistByID(id string) (*models.Therapist, error) {
	therapist, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch therapist: %w", err)
	}
	if therapist == nil {
		return nil, fmt.Errorf("therapist with id %s not found", id)
	}
	return therapist, nil
}

// GetTherapistByUserID retrieves the profile owned by a platform user.
func (s *DefaultTherapistService) GetTherapistByUserID(userID string) (*models.Therapist, error) {
	therapist, err := s.Repo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch therapist: %w", err)
	}
	if therapist == nil {
		return nil, fmt.Errorf("no therapist profile for user %s", userID)
	}
	return therapist, nil
}

// ListTherapists returns profiles matching the query filters.
func (s *DefaultTherapistService) ListTherapists(query models.TherapistQuery) ([]models.Therapist, error) {
	return s.Repo.List(query)
}

// DeleteTherapist removes the profile after checking ownership.
func (s *DefaultTherapistService) DeleteTherapist(userID, id string) error {
	current, err := s.Repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to fetch therapist: %w", err)
	}
	if current == nil {
		return fmt.Errorf("therapist with id %s not found", id)
	}
	if current.UserID != userID {
		return fmt.Errorf("only the profile owner can delete it")
	}
	return s.Repo.Delete(id)
}
