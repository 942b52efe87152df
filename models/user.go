package models

import "time"

// UserType values stored on a profile document.
const (
	UserTypeUser      = "user"
	UserTypeCustomer  = "customer"
	UserTypeTherapist = "therapist"
	UserTypeStore     = "store"
)

// Account status values.
const (
	StatusActive = "active"
	StatusBanned = "banned"
)

// User is a platform profile. Every principal (plain user, therapist owner,
// store owner) has one. UserType is a hint only; the role resolver is
// authoritative.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	Nickname     string    `bson:"nickname" json:"nickname"`
	UserType     string    `bson:"user_type" json:"user_type"`
	ProfileImage string    `bson:"profile_image,omitempty" json:"profileImage,omitempty"`
	Preferences  []string  `bson:"preferences,omitempty" json:"preferences,omitempty"`
	Status       string    `bson:"status" json:"status"`
	AuthProvider string    `bson:"auth_provider" json:"authProvider"` // "password", "google", "kakao"
	FCMToken     string    `bson:"fcm_token,omitempty" json:"-"`
	EmailUpdates bool      `bson:"email_updates" json:"emailUpdates"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`

	Password     string `bson:"-" json:"password,omitempty"`
	PasswordHash string `bson:"password_hash" json:"-"`
	TokenHash    string `bson:"token_hash,omitempty" json:"-"`
}

// UserUpdateRequest carries the mutable profile fields.
type UserUpdateRequest struct {
	ID           string   `json:"id"`
	Nickname     string   `json:"nickname,omitempty"`
	ProfileImage string   `json:"profileImage,omitempty"`
	Preferences  []string `json:"preferences,omitempty"`
	EmailUpdates *bool    `json:"emailUpdates,omitempty"`
	FCMToken     string   `json:"fcmToken,omitempty"`
}

// NotificationSettings gates which push categories a user receives.
type NotificationSettings struct {
	UserID    string    `bson:"user_id" json:"userId"`
	Messages  bool      `bson:"messages" json:"messages"`
	Bookings  bool      `bson:"bookings" json:"bookings"`
	Marketing bool      `bson:"marketing" json:"marketing"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// DefaultNotificationSettings is applied when a user has no settings row.
func DefaultNotificationSettings(userID string) NotificationSettings {
	return NotificationSettings{
		UserID:   userID,
		Messages: true,
		Bookings: true,
	}
}
