package payment

import "errors"

var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrNotPermitted       = errors.New("not permitted")
	ErrNotPayable         = errors.New("booking is not awaiting payment")
	ErrPaymentNotRequired = errors.New("booking does not require advance payment")
	ErrAmountMismatch     = errors.New("amount does not match the booking total")
	ErrDeadlinePassed     = errors.New("payment deadline has passed")
	ErrDuplicatePayment   = errors.New("booking already has an open payment")
	ErrPaymentInFlight    = errors.New("another payment attempt is in progress")
	ErrCardDataRequired   = errors.New("card data is required for credit card payments")
)
