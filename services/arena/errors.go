package arena

import "errors"

var (
	ErrArenaNotFound   = errors.New("arena not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrServiceNotFound = errors.New("extra service not found")
	ErrNotPermitted    = errors.New("not permitted")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrAlreadyReviewed = errors.New("booking already has a review")
	ErrNotCompleted    = errors.New("only completed bookings can be reviewed")
)
