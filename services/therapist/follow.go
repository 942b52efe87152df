package therapist

import (
	"fmt"

	"mendwell/models"
	"mendwell/utils"

	"go.uber.org/zap"
)

// Follow records that the user follows the therapist. Repeated calls are
// idempotent; the counter only moves when the edge actually changes.
func (s *DefaultTherapistService) Follow(userID, therapistID string) error {
	if _, err := s.GetTherapistByID(therapistID); err != nil {
		return err
	}

	created, err := s.Follows.Follow(userID, therapistID)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}
	if err := s.Repo.IncrementFollowers(therapistID, 1); err != nil {
		utils.GetLogger().Warn("Follow: counter update failed", zap.String("therapistID", therapistID), zap.Error(err))
	}
	return nil
}

// Unfollow removes the follow edge.
func (s *DefaultTherapistService) Unfollow(userID, therapistID string) error {
	removed, err := s.Follows.Unfollow(userID, therapistID)
	if err != nil {
		return err
	}
	if !removed {
		return nil
	}
	if err := s.Repo.IncrementFollowers(therapistID, -1); err != nil {
		utils.GetLogger().Warn("Unfollow: counter update failed", zap.String("therapistID", therapistID), zap.Error(err))
	}
	return nil
}

// IsFollowing reports whether the user follows the therapist.
func (s *DefaultTherapistService) IsFollowing(userID, therapistID string) (bool, error) {
	return s.Follows.IsFollowing(userID, therapistID)
}

// ListFollowed returns the therapist profiles the user follows. Profiles
// deleted since the follow was recorded are skipped.
func (s *DefaultTherapistService) ListFollowed(userID string) ([]models.Therapist, error) {
	ids, err := s.Follows.ListFollowedIDs(userID)
	if err != nil {
		return nil, err
	}

	therapists := make([]models.Therapist, 0, len(ids))
	for _, id := range ids {
		therapist, err := s.Repo.GetByID(id)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch followed therapist %s: %w", id, err)
		}
		if therapist == nil {
			continue
		}
		therapists = append(therapists, *therapist)
	}
	return therapists, nil
}
