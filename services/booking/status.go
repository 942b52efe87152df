package booking

import (
	"fmt"

	"mendwell/models"
	"mendwell/utils"

	"go.uber.org/zap"
)

// allowedTransitions is the booking state machine.
var allowedTransitions = map[string]map[string]bool{
	models.BookingPending: {
		models.BookingConfirmed: true,
		models.BookingCancelled: true,
	},
	models.BookingConfirmed: {
		models.BookingCompleted: true,
		models.BookingCancelled: true,
	},
}

// ConfirmBooking accepts a pending booking. Only the therapist may confirm.
func (s *DefaultBookingService) ConfirmBooking(actorID, bookingID string) (*models.Booking, error) {
	return s.transition(actorID, bookingID, models.BookingConfirmed, false)
}

// CancelBooking cancels a booking. Either party may cancel; the reminder is
// dropped alongside.
func (s *DefaultBookingService) CancelBooking(actorID, bookingID string) (*models.Booking, error) {
	booking, err := s.transition(actorID, bookingID, models.BookingCancelled, true)
	if err != nil {
		return nil, err
	}
	if s.Scheduler != nil {
		if err := s.Scheduler.CancelReminder(bookingID); err != nil {
			utils.GetLogger().Warn("failed to drop booking reminder", zap.String("bookingID", bookingID), zap.Error(err))
		}
	}
	return booking, nil
}

// CompleteBooking closes out a confirmed booking. Only the therapist may
// complete.
func (s *DefaultBookingService) CompleteBooking(actorID, bookingID string) (*models.Booking, error) {
	return s.transition(actorID, bookingID, models.BookingCompleted, false)
}

func (s *DefaultBookingService) transition(actorID, bookingID, target string, userMayAct bool) (*models.Booking, error) {
	booking, err := s.GetBookingByID(bookingID)
	if err != nil {
		return nil, err
	}
	if !allowedTransitions[booking.Status][target] {
		return nil, fmt.Errorf("a %s booking cannot become %s", booking.Status, target)
	}

	therapist, err := s.Therapists.GetByID(booking.TherapistID)
	if err != nil {
		utils.GetLogger().Error("transition: failed to fetch therapist", zap.Error(err))
		return nil, fmt.Errorf("booking update failed, please try again")
	}

	isTherapist := therapist != nil && therapist.UserID == actorID
	isBooker := booking.UserID == actorID
	if !isTherapist && !(userMayAct && isBooker) {
		return nil, fmt.Errorf("you are not allowed to update this booking")
	}

	if err := s.Repo.UpdateStatus(bookingID, target); err != nil {
		return nil, fmt.Errorf("booking update failed: %w", err)
	}
	booking.Status = target

	if s.Notifier != nil {
		// Tell the party that did not act.
		recipient := booking.UserID
		if isBooker && therapist != nil {
			recipient = therapist.UserID
		}
		s.Notifier.NotifyBooking(recipient, "Booking "+target,
			fmt.Sprintf("Your session at %s on %s is now %s", booking.Slot, booking.Date, target))
	}
	return booking, nil
}
