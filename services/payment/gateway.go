package payment

import (
	"encoding/base64"
	"fmt"
	"time"

	"quadras/config"
	"quadras/models"
	"quadras/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// Charge is the gateway's answer to a charge attempt.
type Charge struct {
	GatewayID    string
	Status       models.PaymentStatus
	PixQRCode    string
	PixCopyPaste string
	Last4        string
	ExpiresAt    *time.Time
}

// Gateway abstracts the payment processor behind the two charge legs.
type Gateway interface {
	CreatePixCharge(amount float64, bookingID string) (*Charge, error)
	ChargeCard(amount float64, card *models.CardData, bookingID string) (*Charge, error)
}

// pixCharge builds a pending PIX charge against the configured receiving
// key. The copy/paste payload doubles as QR content; clients render it.
func pixCharge(amount float64, bookingID string) *Charge {
	expires := time.Now().Add(utils.PixChargeTTL)
	payload := fmt.Sprintf("00020126PIX|%s|%s|%.2f|%s",
		config.AppConfig.PixKey, bookingID, amount, expires.Format(time.RFC3339))
	return &Charge{
		GatewayID:    "pix_" + uuid.NewString(),
		Status:       models.PaymentPending,
		PixQRCode:    base64.StdEncoding.EncodeToString([]byte(payload)),
		PixCopyPaste: payload,
		ExpiresAt:    &expires,
	}
}

// SimulatedGateway approves cards locally and issues PIX charges that are
// settled by webhook. It backs development and test environments.
type SimulatedGateway struct{}

func (SimulatedGateway) CreatePixCharge(amount float64, bookingID string) (*Charge, error) {
	return pixCharge(amount, bookingID), nil
}

func (SimulatedGateway) ChargeCard(_ float64, card *models.CardData, _ string) (*Charge, error) {
	return &Charge{
		GatewayID: "sim_" + uuid.NewString(),
		Status:    models.PaymentApproved,
		Last4:     card.Last4,
	}, nil
}

// StripeGateway charges cards through Stripe PaymentIntents. PIX runs on the
// same local leg as SimulatedGateway since the Stripe account is card-only.
type StripeGateway struct{}

func (StripeGateway) CreatePixCharge(amount float64, bookingID string) (*Charge, error) {
	return pixCharge(amount, bookingID), nil
}

func (StripeGateway) ChargeCard(amount float64, card *models.CardData, bookingID string) (*Charge, error) {
	cents := decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(cents),
		Currency:      stripe.String(string(stripe.CurrencyBRL)),
		PaymentMethod: stripe.String(card.Token),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.AddMetadata("booking_id", bookingID)

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe charge failed: %w", err)
	}

	status := models.PaymentPending
	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded:
		status = models.PaymentApproved
	case stripe.PaymentIntentStatusCanceled:
		status = models.PaymentRejected
	}

	utils.GetLogger().Info("stripe payment intent created",
		zap.String("intent_id", intent.ID),
		zap.String("status", string(intent.Status)))

	return &Charge{
		GatewayID: intent.ID,
		Status:    status,
		Last4:     card.Last4,
	}, nil
}

// NewGateway picks the processor from configuration: Stripe when a key is
// set, the simulated gateway otherwise.
func NewGateway() Gateway {
	if config.AppConfig.StripeKey != "" {
		return StripeGateway{}
	}
	return SimulatedGateway{}
}
