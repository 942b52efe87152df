package models

import "time"

// Booking status values. Allowed transitions:
// pending -> confirmed | cancelled, confirmed -> completed | cancelled.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// Booking links a user and a therapist for one session.
type Booking struct {
	ID            string    `bson:"id" json:"id"`
	UserID        string    `bson:"user_id" json:"userId"`
	TherapistID   string    `bson:"therapist_id" json:"therapistId"`
	ServiceName   string    `bson:"service_name,omitempty" json:"serviceName,omitempty"`
	StartAt       time.Time `bson:"start_at" json:"startAt"`
	Date          string    `bson:"date" json:"date"`  // "2006-01-02", as selected
	Slot          string    `bson:"slot" json:"slot"`  // "10:00 - 11:00", as selected
	Price         float64   `bson:"price" json:"price"`
	Location      string    `bson:"location,omitempty" json:"location,omitempty"`
	MeetingMethod string    `bson:"meeting_method,omitempty" json:"meetingMethod,omitempty"`
	Status        string    `bson:"status" json:"status"`
	Note          string    `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updatedAt"`
}

// BookingRequest is the payload for creating a booking. SelectedTime is the
// slot label shown to the user ("10:00 - 11:00").
type BookingRequest struct {
	TherapistID   string  `json:"therapistId" binding:"required"`
	SelectedDate  string  `json:"selectedDate" binding:"required"`
	SelectedTime  string  `json:"selectedTime" binding:"required"`
	ServiceName   string  `json:"serviceName,omitempty"`
	Price         float64 `json:"price,omitempty"`
	Location      string  `json:"location,omitempty"`
	MeetingMethod string  `json:"meetingMethod,omitempty"`
	Note          string  `json:"note,omitempty"`
}
