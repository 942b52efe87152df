package therapistRepo

import (
	"mendwell/models"

	"go.mongodb.org/mongo-driver/bson"
)

// TherapistRepository defines persistence operations for therapist profiles.
type TherapistRepository interface {
	Create(therapist *models.Therapist) error
	Update(therapist *models.Therapist) error
	UpdateWithDocument(id string, update bson.M) error
	Delete(id string) error
	GetByID(id string) (*models.Therapist, error)
	GetByUserID(userID string) (*models.Therapist, error)
	ExistsForUser(userID string) (bool, error)
	List(query models.TherapistQuery) ([]models.Therapist, error)
	IncrementFollowers(id string, delta int) error
	SetVerification(id string, status string, document string) error
}
