package booking

import "quadras/models"

// allowedTransitions is the booking state machine. Cancelled and completed
// are terminal.
var allowedTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.StatusPending:        {models.StatusConfirmed, models.StatusCancelled},
	models.StatusWaitingPayment: {models.StatusPending, models.StatusCancelled},
	models.StatusConfirmed:      {models.StatusCompleted, models.StatusCancelled},
	models.StatusCancelled:      {},
	models.StatusCompleted:      {},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to models.BookingStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status has no outgoing transitions.
func IsTerminal(status models.BookingStatus) bool {
	return len(allowedTransitions[status]) == 0
}
