package models

import "time"

// Store is a merchant account with its own admin area. Store ownership is
// the highest-priority signal when resolving a principal's role.
type Store struct {
	ID          string    `bson:"id" json:"id"`
	OwnerID     string    `bson:"owner_id" json:"ownerId"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	LogoImage   string    `bson:"logo_image,omitempty" json:"logoImage,omitempty"`
	Address     string    `bson:"address,omitempty" json:"address,omitempty"`
	Phone       string    `bson:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}
