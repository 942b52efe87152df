package handlers

import (
	userRepo "mendwell/database/repository/user"
	"mendwell/services/role"
)

// HandlerBundle groups every handler plus the dependencies the route
// middleware needs, so route registration takes a single argument.
type HandlerBundle struct {
	UserRepo userRepo.UserRepository
	Resolver *role.Resolver

	Auth       *AuthHandler
	Users      *UserHandler
	Therapists *TherapistHandler
	Stores     *StoreHandler
	Bookings   *BookingHandler
	Chat       *ChatHandler
	Blog       *BlogHandler
	Uploads    *UploadHandler
}
