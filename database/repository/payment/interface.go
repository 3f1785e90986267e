package paymentRepo

import (
	"quadras/models"

	"go.mongodb.org/mongo-driver/bson"
)

// PaymentRepository defines persistence operations for payments.
type PaymentRepository interface {
	Create(payment *models.Payment) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	GetByID(id string) (*models.Payment, error)
	GetByGatewayID(gatewayID string) (*models.Payment, error)
	// GetOpenForBooking returns a pending or approved payment on the booking,
	// or nil when none exists.
	GetOpenForBooking(bookingID string) (*models.Payment, error)
	// GetLatestForBooking returns the most recent payment on the booking
	// regardless of status, or nil when none exists.
	GetLatestForBooking(bookingID string) (*models.Payment, error)
	ListForArena(arenaID string, page, perPage int) ([]models.Payment, int64, error)
}
