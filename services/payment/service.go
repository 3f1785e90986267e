package payment

import (
	"fmt"
	"time"

	arenaRepo "quadras/database/repository/arena"
	bookingRepo "quadras/database/repository/booking"
	paymentRepo "quadras/database/repository/payment"
	userRepo "quadras/database/repository/user"
	"quadras/models"
	"quadras/services/notification"
	"quadras/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// inflightTTL bounds how long a payment attempt may hold the per-booking lock.
const inflightTTL = 30 * time.Second

// PaymentService coordinates charges against bookings: creation with amount
// and deadline checks, reads, and gateway webhook settlement.
type PaymentService interface {
	Create(actor models.Actor, req *models.PaymentCreate) (*models.Payment, error)
	Get(actor models.Actor, id string) (*models.Payment, error)
	HandleWebhook(hook *models.GatewayWebhook) error
}

// DefaultPaymentService is the standard PaymentService implementation.
type DefaultPaymentService struct {
	Payments paymentRepo.PaymentRepository
	Bookings bookingRepo.BookingRepository
	Arenas   arenaRepo.ArenaRepository
	Users    userRepo.UserRepository
	Gateway  Gateway
	Locker   Locker
	Notifier notification.Notifier

	Now func() time.Time
}

func (s *DefaultPaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create charges a booking. The amount must match the booking total exactly
// and only one open payment may exist per booking at a time.
func (s *DefaultPaymentService) Create(actor models.Actor, req *models.PaymentCreate) (*models.Payment, error) {
	b, err := s.Bookings.GetByID(req.BookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	if !actor.IsAdmin() && actor.ID != b.UserID {
		return nil, ErrNotPermitted
	}
	if !b.RequiresPayment {
		return nil, ErrPaymentNotRequired
	}
	if b.Status != models.StatusWaitingPayment && b.Status != models.StatusPending {
		return nil, ErrNotPayable
	}

	now := s.now()
	if b.PaymentDeadline != nil && now.After(*b.PaymentDeadline) {
		return nil, ErrDeadlinePassed
	}
	if !decimal.NewFromFloat(req.Amount).Equal(decimal.NewFromFloat(b.TotalAmount)) {
		return nil, fmt.Errorf("%w: got %.2f, booking total is %.2f",
			ErrAmountMismatch, req.Amount, b.TotalAmount)
	}

	if s.Locker != nil {
		acquired, err := s.Locker.Acquire(b.ID, inflightTTL)
		if err != nil {
			return nil, err
		}
		if !acquired {
			return nil, ErrPaymentInFlight
		}
		defer s.Locker.Release(b.ID)
	}

	open, err := s.Payments.GetOpenForBooking(b.ID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, ErrDuplicatePayment
	}

	p := &models.Payment{
		ID:            uuid.NewString(),
		BookingID:     b.ID,
		UserID:        b.UserID,
		ArenaID:       b.ArenaID,
		PaymentMethod: req.PaymentMethod,
		Amount:        req.Amount,
		Status:        models.PaymentPending,
	}

	switch req.PaymentMethod {
	case models.MethodPix:
		charge, err := s.Gateway.CreatePixCharge(req.Amount, b.ID)
		if err != nil {
			return nil, err
		}
		p.GatewayID = charge.GatewayID
		p.PixQRCode = charge.PixQRCode
		p.PixCopyPaste = charge.PixCopyPaste
		p.ExpiresAt = charge.ExpiresAt

	case models.MethodCreditCard:
		if req.CardData == nil || req.CardData.Token == "" {
			return nil, ErrCardDataRequired
		}
		charge, err := s.Gateway.ChargeCard(req.Amount, req.CardData, b.ID)
		if err != nil {
			return nil, err
		}
		p.GatewayID = charge.GatewayID
		p.CreditCardLast4 = charge.Last4
		p.Status = charge.Status
		if p.Status == models.PaymentApproved {
			p.PaymentDate = &now
		}

	case models.MethodOnSite:
		// Recorded for the arena's ledger; settled at the counter.

	default:
		return nil, fmt.Errorf("unknown payment method %q", req.PaymentMethod)
	}

	if err := s.Payments.Create(p); err != nil {
		return nil, err
	}

	if p.Status == models.PaymentApproved {
		s.settle(p, b)
	}

	s.attachBooking(p, b)
	return p, nil
}

// Get returns a payment visible to the paying user, the arena owner or an
// admin.
func (s *DefaultPaymentService) Get(actor models.Actor, id string) (*models.Payment, error) {
	p, err := s.Payments.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}
	if !actor.IsAdmin() && actor.ID != p.UserID {
		arena, err := s.Arenas.GetByID(p.ArenaID)
		if err != nil {
			return nil, err
		}
		if arena == nil || arena.OwnerID != actor.ID {
			return nil, ErrNotPermitted
		}
	}
	s.attachBooking(p, nil)
	return p, nil
}

// HandleWebhook applies a gateway status callback. Unknown charges and stale
// updates are logged and ignored so the gateway does not retry forever.
func (s *DefaultPaymentService) HandleWebhook(hook *models.GatewayWebhook) error {
	logger := utils.GetLogger()

	p, err := s.Payments.GetByGatewayID(hook.Data.ID)
	if err != nil {
		return err
	}
	if p == nil {
		logger.Warn("webhook for unknown charge", zap.String("gateway_id", hook.Data.ID))
		return nil
	}

	status := mapGatewayStatus(hook.Data.Status)
	if status == "" {
		logger.Warn("webhook with unknown status",
			zap.String("gateway_id", hook.Data.ID),
			zap.String("status", hook.Data.Status))
		return nil
	}
	if p.Status == status {
		return nil
	}

	updateDoc := bson.M{"status": status}
	if status == models.PaymentApproved {
		now := s.now()
		p.PaymentDate = &now
		updateDoc["payment_date"] = now
	}
	if err := s.Payments.UpdateSetDocument(p.ID, updateDoc); err != nil {
		return err
	}
	p.Status = status

	if status == models.PaymentApproved {
		b, err := s.Bookings.GetByID(p.BookingID)
		if err != nil || b == nil {
			logger.Error("approved payment for missing booking",
				zap.String("payment_id", p.ID), zap.Error(err))
			return nil
		}
		s.settle(p, b)
	}
	return nil
}

// mapGatewayStatus translates the gateway's vocabulary into ours. Gateway
// cancellations land as rejections.
func mapGatewayStatus(status string) models.PaymentStatus {
	switch status {
	case "approved":
		return models.PaymentApproved
	case "rejected", "cancelled":
		return models.PaymentRejected
	case "refunded":
		return models.PaymentRefunded
	case "pending":
		return models.PaymentPending
	}
	return ""
}

// settle moves a paid booking out of waiting_payment and tells the customer.
func (s *DefaultPaymentService) settle(p *models.Payment, b *models.Booking) {
	logger := utils.GetLogger()

	if b.Status == models.StatusWaitingPayment {
		if err := s.Bookings.UpdateSetDocument(b.ID, bson.M{"status": models.StatusPending}); err != nil {
			logger.Error("failed to release paid booking",
				zap.String("booking_id", b.ID), zap.Error(err))
		} else {
			b.Status = models.StatusPending
		}
	}

	if s.Notifier == nil {
		return
	}
	user, err := s.Users.GetByIDWithProjection(b.UserID, nil)
	if err != nil || user == nil {
		return
	}
	payload := models.NotificationPayload{
		Event:     models.EventPaymentApproved,
		Email:     user.Email,
		Phone:     user.Phone,
		Recipient: user.FullName(),
		Date:      b.DateStr(),
		Time:      b.TimeStr(),
		Amount:    p.Amount,
		Method:    string(p.PaymentMethod),
		BookingID: b.ID,
	}
	if arena, _ := s.Arenas.GetByID(b.ArenaID); arena != nil {
		payload.ArenaName = arena.Name
	}
	if err := s.Notifier.Notify(payload); err != nil {
		logger.Warn("payment notification enqueue failed",
			zap.String("booking_id", b.ID), zap.Error(err))
	}
}

// attachBooking decorates a payment with its booking summary.
func (s *DefaultPaymentService) attachBooking(p *models.Payment, b *models.Booking) {
	if b == nil {
		b, _ = s.Bookings.GetByID(p.BookingID)
	}
	if b == nil {
		return
	}
	p.Booking = &models.BookingRef{
		ID:          b.ID,
		Status:      b.Status,
		TotalAmount: b.TotalAmount,
	}
}
