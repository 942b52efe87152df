package booking

import (
	"strings"
	"testing"
	"time"

	"mendwell/models"
)

type fakeBookingRepo struct {
	bookings map[string]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepo) Create(b *models.Booking) error {
	r.bookings[b.ID] = b
	return nil
}

func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) UpdateStatus(id, status string) error {
	r.bookings[id].Status = status
	return nil
}

func (r *fakeBookingRepo) ListByUser(userID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByTherapist(therapistID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.TherapistID == therapistID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ExistsAt(therapistID string, startAt time.Time) (bool, error) {
	for _, b := range r.bookings {
		if b.TherapistID == therapistID && b.StartAt.Equal(startAt) && b.Status != models.BookingCancelled {
			return true, nil
		}
	}
	return false, nil
}

type fakeTherapists struct {
	therapist *models.Therapist
}

func (f *fakeTherapists) GetByID(string) (*models.Therapist, error) {
	return f.therapist, nil
}

type fakeScheduler struct {
	scheduled []models.ReminderPayload
	fireAt    time.Time
	cancelled []string
}

func (f *fakeScheduler) ScheduleReminder(payload models.ReminderPayload, at time.Time) error {
	f.scheduled = append(f.scheduled, payload)
	f.fireAt = at
	return nil
}

func (f *fakeScheduler) CancelReminder(bookingID string) error {
	f.cancelled = append(f.cancelled, bookingID)
	return nil
}

func mondayTherapist() *models.Therapist {
	return &models.Therapist{
		ID:     "t1",
		UserID: "owner",
		Name:   "Dr. Yoon",
		Schedule: models.RawSchedule{
			Availability: []string{"Monday"},
			WorkingHours: map[string]any{"start": "10:00", "end": "18:00"},
		},
	}
}

func newTestService(repo *fakeBookingRepo, scheduler *fakeScheduler) *DefaultBookingService {
	return &DefaultBookingService{
		Repo:       repo,
		Therapists: &fakeTherapists{therapist: mondayTherapist()},
		Scheduler:  scheduler,
		Now: func() time.Time {
			return time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
		},
	}
}

func TestCreateBooking(t *testing.T) {
	repo := newFakeBookingRepo()
	scheduler := &fakeScheduler{}
	svc := newTestService(repo, scheduler)

	// 2024-06-10 is a Monday.
	booking, err := svc.CreateBooking("u1", models.BookingRequest{
		TherapistID:  "t1",
		SelectedDate: "2024-06-10",
		SelectedTime: "10:00 - 11:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Status != models.BookingPending {
		t.Fatalf("expected pending, got %q", booking.Status)
	}
	want := time.Date(2024, 6, 10, 10, 0, 0, 0, time.Local)
	if !booking.StartAt.Equal(want) {
		t.Fatalf("expected start %v, got %v", want, booking.StartAt)
	}

	if len(scheduler.scheduled) != 1 {
		t.Fatalf("expected one scheduled reminder, got %d", len(scheduler.scheduled))
	}
	if wantFire := want.Add(-24 * time.Hour); !scheduler.fireAt.Equal(wantFire) {
		t.Fatalf("expected reminder at %v, got %v", wantFire, scheduler.fireAt)
	}
}

func TestCreateBookingRejectsUnofferedSlot(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &fakeScheduler{})

	cases := []struct {
		name string
		date string
		slot string
	}{
		{"outside working hours", "2024-06-10", "09:00 - 10:00"},
		{"day not in availability", "2024-06-11", "10:00 - 11:00"}, // a Tuesday
		{"past date", "2024-05-01", "10:00 - 11:00"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := svc.CreateBooking("u1", models.BookingRequest{
				TherapistID:  "t1",
				SelectedDate: c.date,
				SelectedTime: c.slot,
			})
			if err == nil {
				t.Fatal("expected rejection")
			}
		})
	}
}

func TestCreateBookingRejectsConflict(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, &fakeScheduler{})
	req := models.BookingRequest{
		TherapistID:  "t1",
		SelectedDate: "2024-06-10",
		SelectedTime: "10:00 - 11:00",
	}

	if _, err := svc.CreateBooking("u1", req); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if _, err := svc.CreateBooking("u2", req); err == nil || !strings.Contains(err.Error(), "already been booked") {
		t.Fatalf("expected conflict rejection, got %v", err)
	}
}

func TestBookingTransitions(t *testing.T) {
	repo := newFakeBookingRepo()
	scheduler := &fakeScheduler{}
	svc := newTestService(repo, scheduler)

	booking, err := svc.CreateBooking("u1", models.BookingRequest{
		TherapistID:  "t1",
		SelectedDate: "2024-06-10",
		SelectedTime: "11:00 - 12:00",
	})
	if err != nil {
		t.Fatalf("setup booking failed: %v", err)
	}

	// Only the therapist may confirm.
	if _, err := svc.ConfirmBooking("u1", booking.ID); err == nil {
		t.Fatal("booker must not be able to confirm")
	}
	confirmed, err := svc.ConfirmBooking("owner", booking.ID)
	if err != nil {
		t.Fatalf("therapist confirm failed: %v", err)
	}
	if confirmed.Status != models.BookingConfirmed {
		t.Fatalf("expected confirmed, got %q", confirmed.Status)
	}

	// A confirmed booking cannot be confirmed again.
	if _, err := svc.ConfirmBooking("owner", booking.ID); err == nil {
		t.Fatal("expected transition rejection")
	}

	// The booker may cancel, and the reminder is dropped.
	cancelled, err := svc.CancelBooking("u1", booking.ID)
	if err != nil {
		t.Fatalf("booker cancel failed: %v", err)
	}
	if cancelled.Status != models.BookingCancelled {
		t.Fatalf("expected cancelled, got %q", cancelled.Status)
	}
	if len(scheduler.cancelled) != 1 || scheduler.cancelled[0] != booking.ID {
		t.Fatalf("expected reminder cancellation for %s, got %v", booking.ID, scheduler.cancelled)
	}

	// Nothing comes after cancelled.
	if _, err := svc.CompleteBooking("owner", booking.ID); err == nil {
		t.Fatal("expected terminal-state rejection")
	}
}
