package models

import "time"

// CourtType is the playing-surface category.
type CourtType string

const (
	CourtSoccer          CourtType = "soccer"
	CourtFutsal          CourtType = "futsal"
	CourtSociety         CourtType = "society"
	CourtTennis          CourtType = "tennis"
	CourtBeachTennis     CourtType = "beach_tennis"
	CourtVolleyball      CourtType = "volleyball"
	CourtFutevolei       CourtType = "futevolei"
	CourtBeachVolleyball CourtType = "beach_volleyball"
	CourtBasketball      CourtType = "basketball"
	CourtPaddle          CourtType = "paddle"
	CourtSquash          CourtType = "squash"
	CourtRacquetball     CourtType = "racquetball"
	CourtBadminton       CourtType = "badminton"
	CourtMultisport      CourtType = "multisport"
	CourtOther           CourtType = "other"
)

// Court is a single bookable playing surface.
type Court struct {
	ID                  string    `bson:"id" json:"id"`
	ArenaID             string    `bson:"arena_id" json:"arena_id"`
	Name                string    `bson:"name" json:"name"`
	Type                CourtType `bson:"type" json:"type"`
	Description         string    `bson:"description" json:"description"`
	Photos              []string  `bson:"photos" json:"photos"`
	PricePerHour        float64   `bson:"price_per_hour" json:"price_per_hour"`
	DiscountedPrice     float64   `bson:"discounted_price,omitempty" json:"discounted_price,omitempty"`
	MinimumBookingHours float64   `bson:"minimum_booking_hours" json:"minimum_booking_hours"`
	Characteristics     []string  `bson:"characteristics" json:"characteristics"`
	ExtraServices       []string  `bson:"extra_services" json:"extra_services"` // extra-service catalogue IDs
	IsAvailable         bool      `bson:"is_available" json:"is_available"`
	// AdvancePaymentRequired overrides the arena default when set.
	AdvancePaymentRequired *bool     `bson:"advance_payment_required,omitempty" json:"advance_payment_required,omitempty"`
	CreatedAt              time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt              time.Time `bson:"updated_at" json:"updated_at"`
}

// EffectiveRate returns the hourly rate a booking pays: the discounted price
// when present and actually lower than the list price, the list price otherwise.
func (c *Court) EffectiveRate() float64 {
	if c.DiscountedPrice > 0 && c.DiscountedPrice < c.PricePerHour {
		return c.DiscountedPrice
	}
	return c.PricePerHour
}

// CourtUpdate carries optional court changes.
type CourtUpdate struct {
	Name                   *string    `json:"name,omitempty"`
	Type                   *CourtType `json:"type,omitempty"`
	Description            *string    `json:"description,omitempty"`
	Photos                 *[]string  `json:"photos,omitempty"`
	PricePerHour           *float64   `json:"price_per_hour,omitempty"`
	DiscountedPrice        *float64   `json:"discounted_price,omitempty"`
	MinimumBookingHours    *float64   `json:"minimum_booking_hours,omitempty"`
	Characteristics        *[]string  `json:"characteristics,omitempty"`
	ExtraServices          *[]string  `json:"extra_services,omitempty"`
	IsAvailable            *bool      `json:"is_available,omitempty"`
	AdvancePaymentRequired *bool      `json:"advance_payment_required,omitempty"`
}

// CourtFilter is the query surface of GET /courts.
type CourtFilter struct {
	ArenaID      string
	Type         string
	City         string
	State        string
	Neighborhood string
	MinPrice     *float64
	MaxPrice     *float64
	SortBy       string // price_asc, price_desc, rating
	Page         int
	ItemsPerPage int
}

// ExtraService is a catalogue entry an arena offers alongside courts
// (ball rental, vests, referee and the like).
type ExtraService struct {
	ID              string    `bson:"id" json:"id"`
	ArenaID         string    `bson:"arena_id" json:"arena_id"`
	Name            string    `bson:"name" json:"name"`
	Description     string    `bson:"description,omitempty" json:"description,omitempty"`
	Price           float64   `bson:"price" json:"price"`
	DiscountedPrice float64   `bson:"discounted_price,omitempty" json:"discounted_price,omitempty"`
	Active          bool      `bson:"active" json:"active"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// EffectiveRate mirrors Court pricing: discounted price wins when lower.
func (s *ExtraService) EffectiveRate() float64 {
	if s.DiscountedPrice > 0 && s.DiscountedPrice < s.Price {
		return s.DiscountedPrice
	}
	return s.Price
}
