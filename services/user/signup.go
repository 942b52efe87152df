package user

import (
	"fmt"
	"strings"
	"time"

	"mendwell/models"
	"mendwell/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a password-based account and opens its first session.
func (s *DefaultUserService) Register(user *models.User) (*AuthResponse, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if !emailRegexp.MatchString(user.Email) {
		return nil, fmt.Errorf("a valid email address is required")
	}
	if err := VerifyPasswordComplexity(user.Password); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByEmail(user.Email)
	if err != nil {
		utils.GetLogger().Error("Register: failed to check for existing email", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, EmailTakenError{Email: user.Email}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Register: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	user.ID = uuid.New().String()
	user.PasswordHash = string(hashed)
	user.Password = ""
	user.Status = models.StatusActive
	user.AuthProvider = "password"
	if user.UserType == "" {
		user.UserType = models.UserTypeUser
	}
	if user.Nickname == "" {
		user.Nickname = strings.SplitN(user.Email, "@", 2)[0]
	}

	if err := s.Repo.Create(user); err != nil {
		utils.GetLogger().Error("Register: failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	settings := models.DefaultNotificationSettings(user.ID)
	settings.Marketing = user.EmailUpdates
	settings.UpdatedAt = time.Now()
	if err := s.Repo.SaveNotificationSettings(&settings); err != nil {
		utils.GetLogger().Warn("Register: failed to seed notification settings", zap.String("userID", user.ID), zap.Error(err))
	}

	return s.issueSession(user, true)
}
