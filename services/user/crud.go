package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mendwell/models"
	"mendwell/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// GetUserByID retrieves a user profile by id.
func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	userRec, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if userRec == nil {
		return nil, fmt.Errorf("user with id %s not found", userID)
	}
	return userRec, nil
}

// GetUserByEmail retrieves a user profile by email.
func (s *DefaultUserService) GetUserByEmail(email string) (*models.User, error) {
	userRec, err := s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if userRec == nil {
		return nil, fmt.Errorf("user with email %s not found", email)
	}
	return userRec, nil
}

// UpdateUser applies the non-empty fields of the request to the profile and
// returns the updated document.
func (s *DefaultUserService) UpdateUser(req models.UserUpdateRequest) (*models.User, error) {
	set := bson.M{"updated_at": time.Now()}
	if req.Nickname != "" {
		set["nickname"] = req.Nickname
	}
	if req.ProfileImage != "" {
		set["profile_image"] = req.ProfileImage
	}
	if req.Preferences != nil {
		set["preferences"] = req.Preferences
	}
	if req.EmailUpdates != nil {
		set["email_updates"] = *req.EmailUpdates
	}
	if req.FCMToken != "" {
		set["fcm_token"] = req.FCMToken
	}

	if err := s.Repo.UpdateWithDocument(req.ID, bson.M{"$set": set}); err != nil {
		utils.GetLogger().Error("UpdateUser: failed to apply update", zap.String("userID", req.ID), zap.Error(err))
		return nil, fmt.Errorf("profile update failed, please try again")
	}
	return s.GetUserByID(req.ID)
}

// DeleteUser removes the account, its open session, and its cached role.
func (s *DefaultUserService) DeleteUser(userID string) error {
	userRec, err := s.Repo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("failed to fetch user: %w", err)
	}
	if userRec == nil {
		return fmt.Errorf("user with id %s not found", userID)
	}

	if err := s.clearSession(userRec); err != nil {
		utils.GetLogger().Warn("DeleteUser: failed to clear session", zap.String("userID", userID), zap.Error(err))
	}
	if s.Roles != nil {
		s.Roles.Invalidate(context.Background(), userID)
	}
	return s.Repo.Delete(userID)
}

// GetNotificationSettings returns the user's settings, falling back to the
// defaults when no row exists yet.
func (s *DefaultUserService) GetNotificationSettings(userID string) (*models.NotificationSettings, error) {
	settings, err := s.Repo.GetNotificationSettings(userID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		defaults := models.DefaultNotificationSettings(userID)
		return &defaults, nil
	}
	return settings, nil
}

// UpdateNotificationSettings upserts the user's settings row.
func (s *DefaultUserService) UpdateNotificationSettings(settings models.NotificationSettings) (*models.NotificationSettings, error) {
	if settings.UserID == "" {
		return nil, fmt.Errorf("a user id is required")
	}
	if err := s.Repo.SaveNotificationSettings(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}
