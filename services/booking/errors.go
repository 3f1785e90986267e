package booking

import "errors"

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrCourtNotFound     = errors.New("court not found")
	ErrCourtUnavailable  = errors.New("court is not available for booking")
	ErrArenaInactive     = errors.New("arena is not active")
	ErrInvalidTimeslot   = errors.New("invalid timeslot")
	ErrBelowMinimumHours = errors.New("booking is shorter than the court minimum")
	ErrTooSoon           = errors.New("booking start is below the minimum advance window")
	ErrTooFarAhead       = errors.New("booking start is beyond the maximum advance window")
	ErrSlotConflict      = errors.New("requested time conflicts with an existing booking")
	ErrTooManyActive     = errors.New("active booking limit reached")
	ErrUnknownExtra      = errors.New("unknown extra service")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrNotPermitted      = errors.New("not permitted")
	ErrOutsideHours      = errors.New("requested time is outside arena business hours")
)
