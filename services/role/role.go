// Package role resolves whether a principal acts as a store owner, a
// therapist, or a plain user. It probes the authoritative collections in
// priority order, with a Redis read-through cache in front.
package role

// Role is the resolved principal kind.
type Role string

const (
	// Unknown means resolution has not completed.
	Unknown Role = ""
	// User is the default for any authenticated principal.
	User Role = "user"
	// Customer marks a first-time signup that matched nothing.
	Customer Role = "customer"
	// Therapist means a therapist row exists for the principal.
	Therapist Role = "therapist"
	// Store means a store row exists for the principal.
	Store Role = "store"
)

// StoreProbe checks store ownership. Satisfied by the store repository.
type StoreProbe interface {
	OwnerExists(ownerID string) (bool, error)
}

// TherapistProbe checks therapist membership. Satisfied by the therapist
// repository.
type TherapistProbe interface {
	ExistsForUser(userID string) (bool, error)
}

// ProfileProbe reads the profile's user_type hint. Satisfied by a thin
// adapter over the user repository.
type ProfileProbe interface {
	UserType(userID string) (string, error)
}

// ProfileProbeFunc adapts a plain function to the ProfileProbe interface.
type ProfileProbeFunc func(userID string) (string, error)

// UserType implements ProfileProbe.
func (f ProfileProbeFunc) UserType(userID string) (string, error) {
	return f(userID)
}
