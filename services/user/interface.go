package user

import (
	"context"
	"time"

	userRepo "mendwell/database/repository/user"
	"mendwell/models"
)

// tokenTTL bounds both the JWT lifetime and the auth cache entry.
const tokenTTL = 72 * time.Hour

type UserService interface {
	// Registration and sessions
	Register(user *models.User) (*AuthResponse, error)
	Authenticate(email, password string) (*AuthResponse, error)
	AuthenticateSocial(profile SocialProfile) (*AuthResponse, error)
	SignOut(userID string) error

	// Profile management
	GetUserByID(userID string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(req models.UserUpdateRequest) (*models.User, error)
	UpdatePassword(userID, currentPassword, newPassword string) error
	DeleteUser(userID string) error

	// Moderation
	BanUser(userID string) error
	UnbanUser(userID string) error

	// Notification preferences
	GetNotificationSettings(userID string) (*models.NotificationSettings, error)
	UpdateNotificationSettings(settings models.NotificationSettings) (*models.NotificationSettings, error)
}

// RoleInvalidator drops a principal's cached role when their session ends.
// Satisfied by the role resolver.
type RoleInvalidator interface {
	Invalidate(ctx context.Context, userID string)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo  userRepo.UserRepository
	Roles RoleInvalidator
}

// AuthResponse is returned by every sign-in path.
type AuthResponse struct {
	ID           string `json:"id"`
	Token        string `json:"token"`
	Email        string `json:"email,omitempty"`
	Nickname     string `json:"nickname,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
	UserType     string `json:"userType,omitempty"`
	FirstSignup  bool   `json:"firstSignup,omitempty"`
}

// SocialProfile is the normalized identity extracted from an OAuth provider
// token. Provider is "google" or "kakao".
type SocialProfile struct {
	Provider     string
	Subject      string
	Email        string
	Nickname     string
	ProfileImage string
}
