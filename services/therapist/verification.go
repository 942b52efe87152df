package therapist

import (
	"fmt"

	"mendwell/models"
)

// SubmitVerification attaches a credential document to the caller's profile
// and moves it into review.
func (s *DefaultTherapistService) SubmitVerification(userID, documentURL string) error {
	if documentURL == "" {
		return fmt.Errorf("a credential document is required")
	}
	therapist, err := s.GetTherapistByUserID(userID)
	if err != nil {
		return err
	}
	if therapist.VerificationStatus == models.VerificationApproved {
		return fmt.Errorf("this profile is already verified")
	}
	return s.Repo.SetVerification(therapist.ID, models.VerificationPending, documentURL)
}

// ReviewVerification resolves a pending review. Approval flips the public
// verified badge.
func (s *DefaultTherapistService) ReviewVerification(therapistID string, approve bool) error {
	therapist, err := s.GetTherapistByID(therapistID)
	if err != nil {
		return err
	}
	if therapist.VerificationStatus != models.VerificationPending {
		return fmt.Errorf("therapist %s has no pending verification", therapistID)
	}
	status := models.VerificationRejected
	if approve {
		status = models.VerificationApproved
	}
	return s.Repo.SetVerification(therapistID, status, "")
}
