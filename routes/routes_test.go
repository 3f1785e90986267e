package routes

import (
	"testing"

	"quadras/handlers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// TestRegisterRoutesContract pins the externally documented paths so handler
// refactors cannot silently move an endpoint.
func TestRegisterRoutesContract(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, &handlers.HandlerBundle{
		Auth:     &handlers.AuthHandler{},
		Users:    &handlers.UserHandler{},
		Arenas:   &handlers.ArenaHandler{},
		Courts:   &handlers.CourtHandler{},
		Bookings: &handlers.BookingHandler{},
		Payments: &handlers.PaymentHandler{},
		Storage:  &handlers.StorageHandler{},
		Admin:    &handlers.AdminHandler{},
	})

	registered := make(map[string]bool)
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"POST /api/auth/register",
		"POST /api/auth/login",
		"POST /api/auth/verify-email/:token",
		"POST /api/auth/forgot-password",
		"POST /api/auth/reset-password/:token",

		"GET /api/users/me",

		"GET /api/arenas",
		"GET /api/arenas/:id",
		"GET /api/arenas/:id/courts",
		"GET /api/courts",
		"GET /api/courts/:id",
		"GET /api/courts/:id/availability",

		"POST /api/bookings",
		"GET /api/bookings/user/me",
		"GET /api/bookings/:id",
		"PUT /api/bookings/:id/status",
		"POST /api/bookings/:id/cancel",
		"GET /api/bookings/:id/payment-status",

		"POST /api/payments",
		"GET /api/payments/:id",
		"POST /api/payments/webhook",

		"GET /api/admin/users",
		"GET /api/admin/users/:id",
		"PUT /api/admin/users/:id",
		"GET /api/admin/arenas",
		"POST /api/admin/arenas",
		"GET /api/admin/arenas/:id",
		"PUT /api/admin/arenas/:id",
		"DELETE /api/admin/arenas/:id",
		"GET /api/admin/bookings",
		"PUT /api/admin/bookings/:id/status",
		"GET /api/admin/settings",
		"PUT /api/admin/settings",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
}
