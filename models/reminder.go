package models

// ReminderPayload is the asynq task body for a scheduled booking reminder.
type ReminderPayload struct {
	BookingID   string `json:"bookingId"`
	UserID      string `json:"userId"`
	TherapistID string `json:"therapistId"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	FireDate    string `json:"fireDate"`
}

// PublishPayload is the asynq task body for publishing a scheduled blog post.
type PublishPayload struct {
	PostID string `json:"postId"`
}
