package user

import (
	"fmt"
	"strings"
	"time"

	"mendwell/models"
	"mendwell/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// AuthenticateSocial signs a user in with a verified OAuth identity. An
// existing account with the same email is linked to the provider; otherwise
// a fresh account is created without a password.
func (s *DefaultUserService) AuthenticateSocial(profile SocialProfile) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(profile.Email))
	if email == "" {
		return nil, fmt.Errorf("the %s account did not expose an email address", profile.Provider)
	}

	userRec, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("AuthenticateSocial: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	if userRec == nil {
		userRec = &models.User{
			ID:           uuid.New().String(),
			Email:        email,
			Nickname:     profile.Nickname,
			ProfileImage: profile.ProfileImage,
			UserType:     models.UserTypeUser,
			Status:       models.StatusActive,
			AuthProvider: profile.Provider,
		}
		if userRec.Nickname == "" {
			userRec.Nickname = strings.SplitN(email, "@", 2)[0]
		}
		if err := s.Repo.Create(userRec); err != nil {
			utils.GetLogger().Error("AuthenticateSocial: failed to create user", zap.Error(err))
			return nil, fmt.Errorf("authentication failed, please try again")
		}

		settings := models.DefaultNotificationSettings(userRec.ID)
		settings.UpdatedAt = time.Now()
		if err := s.Repo.SaveNotificationSettings(&settings); err != nil {
			utils.GetLogger().Warn("AuthenticateSocial: failed to seed notification settings", zap.String("userID", userRec.ID), zap.Error(err))
		}
		return s.issueSession(userRec, true)
	}

	if userRec.Status == models.StatusBanned {
		return nil, AccountBannedError{UserID: userRec.ID}
	}

	// Link the provider and backfill profile data the account is missing.
	set := bson.M{"updated_at": time.Now()}
	if userRec.AuthProvider != profile.Provider {
		set["auth_provider"] = profile.Provider
		userRec.AuthProvider = profile.Provider
	}
	if userRec.ProfileImage == "" && profile.ProfileImage != "" {
		set["profile_image"] = profile.ProfileImage
		userRec.ProfileImage = profile.ProfileImage
	}
	if len(set) > 1 {
		if err := s.Repo.UpdateWithDocument(userRec.ID, bson.M{"$set": set}); err != nil {
			utils.GetLogger().Warn("AuthenticateSocial: failed to link provider", zap.String("userID", userRec.ID), zap.Error(err))
		}
	}

	return s.issueSession(userRec, false)
}
