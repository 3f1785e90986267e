package handlers

import (
	"errors"
	"net/http"

	arenaSvc "quadras/services/arena"
	bookingSvc "quadras/services/booking"
	courtSvc "quadras/services/court"
	paymentSvc "quadras/services/payment"
	userSvc "quadras/services/user"
	"quadras/utils"

	"github.com/gin-gonic/gin"
)

// statusOf maps service errors onto HTTP status codes. Anything unmapped is
// an internal error.
func statusOf(err error) int {
	switch {
	case errors.Is(err, bookingSvc.ErrBookingNotFound),
		errors.Is(err, bookingSvc.ErrCourtNotFound),
		errors.Is(err, paymentSvc.ErrBookingNotFound),
		errors.Is(err, paymentSvc.ErrPaymentNotFound),
		errors.Is(err, arenaSvc.ErrArenaNotFound),
		errors.Is(err, arenaSvc.ErrBookingNotFound),
		errors.Is(err, arenaSvc.ErrServiceNotFound),
		errors.Is(err, courtSvc.ErrCourtNotFound),
		errors.Is(err, courtSvc.ErrArenaNotFound),
		errors.Is(err, courtSvc.ErrServiceNotFound),
		errors.Is(err, userSvc.ErrUserNotFound):
		return http.StatusNotFound

	case errors.Is(err, bookingSvc.ErrNotPermitted),
		errors.Is(err, paymentSvc.ErrNotPermitted),
		errors.Is(err, arenaSvc.ErrNotPermitted),
		errors.Is(err, courtSvc.ErrNotPermitted),
		errors.Is(err, userSvc.ErrNotPermitted):
		return http.StatusForbidden

	case errors.Is(err, bookingSvc.ErrSlotConflict),
		errors.Is(err, paymentSvc.ErrDuplicatePayment),
		errors.Is(err, paymentSvc.ErrPaymentInFlight),
		errors.Is(err, userSvc.ErrEmailTaken),
		errors.Is(err, userSvc.ErrUsernameTaken),
		errors.Is(err, arenaSvc.ErrAlreadyReviewed):
		return http.StatusConflict

	case errors.Is(err, userSvc.ErrInvalidCredentials),
		errors.Is(err, userSvc.ErrAccountDisabled):
		return http.StatusUnauthorized

	case errors.Is(err, bookingSvc.ErrInvalidTimeslot),
		errors.Is(err, bookingSvc.ErrInvalidTransition),
		errors.Is(err, bookingSvc.ErrBelowMinimumHours),
		errors.Is(err, bookingSvc.ErrTooSoon),
		errors.Is(err, bookingSvc.ErrTooFarAhead),
		errors.Is(err, bookingSvc.ErrTooManyActive),
		errors.Is(err, bookingSvc.ErrUnknownExtra),
		errors.Is(err, bookingSvc.ErrOutsideHours),
		errors.Is(err, bookingSvc.ErrCourtUnavailable),
		errors.Is(err, bookingSvc.ErrArenaInactive),
		errors.Is(err, paymentSvc.ErrNotPayable),
		errors.Is(err, paymentSvc.ErrPaymentNotRequired),
		errors.Is(err, paymentSvc.ErrAmountMismatch),
		errors.Is(err, paymentSvc.ErrDeadlinePassed),
		errors.Is(err, paymentSvc.ErrCardDataRequired),
		errors.Is(err, arenaSvc.ErrInvalidRating),
		errors.Is(err, arenaSvc.ErrNotCompleted),
		errors.Is(err, userSvc.ErrInvalidToken):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// fail writes a service error as a JSON response.
func fail(c *gin.Context, err error) {
	status := statusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	utils.JSONError(c, status, message, "")
}

// badRequest writes a binding/parsing failure.
func badRequest(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
}
