package models

import "time"

// Verification status values for therapists.
const (
	VerificationNone     = "none"
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

// ServiceOffering is a single bookable service on a therapist profile.
type ServiceOffering struct {
	Name        string  `bson:"name" json:"name"`
	Price       float64 `bson:"price" json:"price"`
	DurationMin int     `bson:"duration_min" json:"durationMin"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
}

// Therapist is a bookable practitioner profile, owned by a platform user.
type Therapist struct {
	ID             string            `bson:"id" json:"id"`
	UserID         string            `bson:"user_id" json:"userId"`
	Name           string            `bson:"name" json:"name"`
	Title          string            `bson:"title,omitempty" json:"title,omitempty"`
	Bio            string            `bson:"bio,omitempty" json:"bio,omitempty"`
	Specialties    []string          `bson:"specialties,omitempty" json:"specialties,omitempty"`
	Services       []ServiceOffering `bson:"services,omitempty" json:"services,omitempty"`
	GalleryImages  []string          `bson:"gallery_images,omitempty" json:"galleryImages,omitempty"`
	Location       string            `bson:"location,omitempty" json:"location,omitempty"`
	MeetingMethods []string          `bson:"meeting_methods,omitempty" json:"meetingMethods,omitempty"` // "visit", "video", "chat"
	SessionPrice   float64           `bson:"session_price,omitempty" json:"sessionPrice,omitempty"`
	FollowerCount  int               `bson:"follower_count" json:"followerCount"`
	Rating         float64           `bson:"rating,omitempty" json:"rating,omitempty"`

	Schedule RawSchedule `bson:",inline" json:"schedule"`

	Verified             bool   `bson:"verified" json:"verified"`
	VerificationStatus   string `bson:"verification_status" json:"verificationStatus"`
	VerificationDocument string `bson:"verification_document,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// TherapistQuery narrows therapist listings.
type TherapistQuery struct {
	Keyword   string `form:"q"`
	Specialty string `form:"specialty"`
	Method    string `form:"method"`
	Verified  *bool  `form:"verified"`
	Limit     int64  `form:"limit"`
	Offset    int64  `form:"offset"`
}
