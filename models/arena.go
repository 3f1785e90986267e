package models

import "time"

// Coordinates is a geographic point on the arena address.
type Coordinates struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// Address locates an arena.
type Address struct {
	Street       string      `bson:"street" json:"street"`
	Number       string      `bson:"number" json:"number"`
	Complement   string      `bson:"complement,omitempty" json:"complement,omitempty"`
	Neighborhood string      `bson:"neighborhood" json:"neighborhood"`
	City         string      `bson:"city" json:"city"`
	State        string      `bson:"state" json:"state"`
	Zipcode      string      `bson:"zipcode" json:"zipcode"`
	Coordinates  Coordinates `bson:"coordinates" json:"coordinates"`
}

// HourRange is a contiguous opening window, "HH:MM" wall-clock, start < end.
type HourRange struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// WeeklySchedule holds opening windows per weekday.
type WeeklySchedule struct {
	Monday    []HourRange `bson:"monday" json:"monday"`
	Tuesday   []HourRange `bson:"tuesday" json:"tuesday"`
	Wednesday []HourRange `bson:"wednesday" json:"wednesday"`
	Thursday  []HourRange `bson:"thursday" json:"thursday"`
	Friday    []HourRange `bson:"friday" json:"friday"`
	Saturday  []HourRange `bson:"saturday" json:"saturday"`
	Sunday    []HourRange `bson:"sunday" json:"sunday"`
}

// ForWeekday returns the opening windows for a weekday, Monday-origin (0 = Monday).
func (w WeeklySchedule) ForWeekday(weekday int) []HourRange {
	switch weekday {
	case 0:
		return w.Monday
	case 1:
		return w.Tuesday
	case 2:
		return w.Wednesday
	case 3:
		return w.Thursday
	case 4:
		return w.Friday
	case 5:
		return w.Saturday
	case 6:
		return w.Sunday
	}
	return nil
}

// Arena is a venue holding one or more courts.
type Arena struct {
	ID                     string         `bson:"id" json:"id"`
	OwnerID                string         `bson:"owner_id" json:"owner_id"`
	Name                   string         `bson:"name" json:"name"`
	Description            string         `bson:"description" json:"description"`
	Address                Address        `bson:"address" json:"address"`
	Phone                  string         `bson:"phone" json:"phone"`
	Email                  string         `bson:"email" json:"email"`
	LogoURL                string         `bson:"logo_url,omitempty" json:"logo_url,omitempty"`
	Photos                 []string       `bson:"photos" json:"photos"`
	Amenities              []string       `bson:"amenities" json:"amenities"`
	BusinessHours          WeeklySchedule `bson:"business_hours" json:"business_hours"`
	CancellationPolicy     string         `bson:"cancellation_policy" json:"cancellation_policy"`
	AdvancePaymentRequired bool           `bson:"advance_payment_required" json:"advance_payment_required"`
	PaymentDeadlineHours   int            `bson:"payment_deadline_hours,omitempty" json:"payment_deadline_hours,omitempty"`
	Rating                 float64        `bson:"rating" json:"rating"`
	RatingCount            int            `bson:"rating_count" json:"rating_count"`
	Active                 bool           `bson:"active" json:"active"`
	CreatedAt              time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt              time.Time      `bson:"updated_at" json:"updated_at"`
}

// ArenaUpdate carries optional arena changes for PUT /admin/arenas.
type ArenaUpdate struct {
	Name                   *string         `json:"name,omitempty"`
	Description            *string         `json:"description,omitempty"`
	Address                *Address        `json:"address,omitempty"`
	Phone                  *string         `json:"phone,omitempty"`
	Email                  *string         `json:"email,omitempty"`
	LogoURL                *string         `json:"logo_url,omitempty"`
	Photos                 *[]string       `json:"photos,omitempty"`
	Amenities              *[]string       `json:"amenities,omitempty"`
	BusinessHours          *WeeklySchedule `json:"business_hours,omitempty"`
	CancellationPolicy     *string         `json:"cancellation_policy,omitempty"`
	AdvancePaymentRequired *bool           `json:"advance_payment_required,omitempty"`
	PaymentDeadlineHours   *int            `json:"payment_deadline_hours,omitempty"`
	Active                 *bool           `json:"active,omitempty"`
}

// ArenaFilter is the query surface of GET /arenas.
type ArenaFilter struct {
	Name         string
	City         string
	State        string
	Neighborhood string
	Active       *bool
	Page         int
	ItemsPerPage int
}
