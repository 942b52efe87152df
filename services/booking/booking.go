// Package booking creates and manages therapy sessions, validating every
// request against the therapist's resolved schedule.
package booking

import (
	"fmt"
	"time"

	"mendwell/models"
	"mendwell/services/schedule"
	"mendwell/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// reminderLead is how far ahead of the session the reminder fires.
const reminderLead = 24 * time.Hour

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreateBooking validates the requested slot against the therapist's
// schedule and existing bookings, then creates a pending booking and
// schedules its reminder.
func (s *DefaultBookingService) CreateBooking(userID string, req models.BookingRequest) (*models.Booking, error) {
	therapist, err := s.Therapists.GetByID(req.TherapistID)
	if err != nil {
		utils.GetLogger().Error("CreateBooking: failed to fetch therapist", zap.Error(err))
		return nil, fmt.Errorf("booking failed, please try again")
	}
	if therapist == nil {
		return nil, fmt.Errorf("therapist with id %s not found", req.TherapistID)
	}

	startAt, err := ComposeStartTime(req.SelectedDate, req.SelectedTime)
	if err != nil {
		return nil, err
	}
	if !startAt.After(s.now()) {
		return nil, fmt.Errorf("the selected slot is in the past")
	}

	resolved := schedule.Resolve(therapist.Schedule)
	if !slotOffered(resolved, req.SelectedDate, startAt) {
		return nil, fmt.Errorf("the therapist is not available at %s on %s", req.SelectedTime, req.SelectedDate)
	}

	taken, err := s.Repo.ExistsAt(req.TherapistID, startAt)
	if err != nil {
		utils.GetLogger().Error("CreateBooking: conflict check failed", zap.Error(err))
		return nil, fmt.Errorf("booking failed, please try again")
	}
	if taken {
		return nil, fmt.Errorf("this slot has already been booked")
	}

	booking := &models.Booking{
		ID:            uuid.New().String(),
		UserID:        userID,
		TherapistID:   req.TherapistID,
		ServiceName:   req.ServiceName,
		StartAt:       startAt,
		Date:          req.SelectedDate,
		Slot:          req.SelectedTime,
		Price:         req.Price,
		Location:      req.Location,
		MeetingMethod: req.MeetingMethod,
		Status:        models.BookingPending,
		Note:          req.Note,
	}
	if err := s.Repo.Create(booking); err != nil {
		utils.GetLogger().Error("CreateBooking: failed to create booking", zap.Error(err))
		return nil, fmt.Errorf("booking failed, please try again")
	}

	s.scheduleReminder(booking)
	if s.Notifier != nil {
		s.Notifier.NotifyBooking(therapist.UserID, "New booking request",
			fmt.Sprintf("%s on %s", req.SelectedTime, req.SelectedDate))
	}
	return booking, nil
}

// slotOffered checks that the schedule opens the date at all and that the
// slot's start time is one the schedule expands to on it. An hours range
// expands for any date, so the date gate has to come first.
func slotOffered(resolved schedule.Schedule, date string, startAt time.Time) bool {
	if !schedule.DateAvailable(resolved, date) {
		return false
	}
	start := startAt.Format("15:04")
	for _, slot := range schedule.SlotsFor(resolved, date, schedule.DefaultIncrement) {
		if slot == start {
			return true
		}
	}
	return false
}

func (s *DefaultBookingService) scheduleReminder(booking *models.Booking) {
	if s.Scheduler == nil {
		return
	}
	fireAt := booking.StartAt.Add(-reminderLead)
	if !fireAt.After(s.now()) {
		return
	}
	payload := models.ReminderPayload{
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		TherapistID: booking.TherapistID,
		Title:       "Upcoming session",
		Body:        fmt.Sprintf("Your session at %s on %s is tomorrow", booking.Slot, booking.Date),
		FireDate:    fireAt.Format(time.RFC3339),
	}
	if err := s.Scheduler.ScheduleReminder(payload, fireAt); err != nil {
		utils.GetLogger().Warn("failed to schedule booking reminder", zap.String("bookingID", booking.ID), zap.Error(err))
	}
}

// GetBookingByID retrieves a booking.
func (s *DefaultBookingService) GetBookingByID(id string) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking with id %s not found", id)
	}
	return booking, nil
}

// ListUserBookings returns the bookings made by a user, newest first.
func (s *DefaultBookingService) ListUserBookings(userID string) ([]models.Booking, error) {
	return s.Repo.ListByUser(userID)
}

// ListTherapistBookings returns the bookings on a therapist's calendar.
func (s *DefaultBookingService) ListTherapistBookings(therapistID string) ([]models.Booking, error) {
	return s.Repo.ListByTherapist(therapistID)
}
