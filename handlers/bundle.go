package handlers

import (
	userRepo "quadras/database/repository/user"
)

// HandlerBundle groups every handler plus the shared repositories the
// middleware needs, so route registration takes a single argument.
type HandlerBundle struct {
	Auth     *AuthHandler
	Users    *UserHandler
	Arenas   *ArenaHandler
	Courts   *CourtHandler
	Bookings *BookingHandler
	Payments *PaymentHandler
	Storage  *StorageHandler
	Admin    *AdminHandler

	UserRepo userRepo.UserRepository
}
