package userRepo

import (
	"mendwell/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines persistence operations for profiles and their
// notification settings.
type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	UpdateWithDocument(id string, update bson.M) error
	Delete(id string) error
	GetByID(id string) (*models.User, error)
	GetByIDWithProjection(id string, projection bson.M) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByEmailWithProjection(email string, projection bson.M) (*models.User, error)
	GetByTokenHash(tokenHash string) (*models.User, error)

	GetNotificationSettings(userID string) (*models.NotificationSettings, error)
	SaveNotificationSettings(settings *models.NotificationSettings) error
}
