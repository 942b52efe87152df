package therapist

import (
	"time"

	therapistRepo "mendwell/database/repository/therapist"
	"mendwell/models"
)

type TherapistService interface {
	// Profile management
	RegisterTherapist(therapist *models.Therapist) (*models.Therapist, error)
	UpdateTherapist(userID string, therapist *models.Therapist) (*models.Therapist, error)
	GetTherapistByID(id string) (*models.Therapist, error)
	GetTherapistByUserID(userID string) (*models.Therapist, error)
	ListTherapists(query models.TherapistQuery) ([]models.Therapist, error)
	DeleteTherapist(userID, id string) error

	// Availability
	AvailableDates(therapistID string, from time.Time, days int) ([]string, error)
	AvailableSlots(therapistID, date string) ([]string, error)

	// Following
	Follow(userID, therapistID string) error
	Unfollow(userID, therapistID string) error
	IsFollowing(userID, therapistID string) (bool, error)
	ListFollowed(userID string) ([]models.Therapist, error)

	// Verification
	SubmitVerification(userID, documentURL string) error
	ReviewVerification(therapistID string, approve bool) error
}

// DefaultTherapistService is the production implementation.
type DefaultTherapistService struct {
	Repo    therapistRepo.TherapistRepository
	Follows therapistRepo.FollowRepository
}
