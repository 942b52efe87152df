package booking

import (
	"time"

	bookingRepo "mendwell/database/repository/booking"
	"mendwell/models"
)

// TherapistSource provides the therapist documents bookings are validated
// against. Satisfied by the therapist repository.
type TherapistSource interface {
	GetByID(id string) (*models.Therapist, error)
}

// ReminderScheduler enqueues the reminder that fires ahead of a session.
// Satisfied by the task queue client.
type ReminderScheduler interface {
	ScheduleReminder(payload models.ReminderPayload, at time.Time) error
	CancelReminder(bookingID string) error
}

// Notifier pushes booking lifecycle notifications. Satisfied by the
// notification service.
type Notifier interface {
	NotifyBooking(userID, title, body string)
}

type BookingService interface {
	CreateBooking(userID string, req models.BookingRequest) (*models.Booking, error)
	GetBookingByID(id string) (*models.Booking, error)
	ListUserBookings(userID string) ([]models.Booking, error)
	ListTherapistBookings(therapistID string) ([]models.Booking, error)
	ConfirmBooking(actorID, bookingID string) (*models.Booking, error)
	CancelBooking(actorID, bookingID string) (*models.Booking, error)
	CompleteBooking(actorID, bookingID string) (*models.Booking, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo       bookingRepo.BookingRepository
	Therapists TherapistSource
	Scheduler  ReminderScheduler
	Notifier   Notifier

	// Now is swappable for tests.
	Now func() time.Time
}
