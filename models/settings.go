package models

import "time"

// PlatformSettings is the single admin-managed settings document.
type PlatformSettings struct {
	ID                     string    `bson:"id" json:"id"`
	PlatformFeePercent     float64   `bson:"platform_fee_percent" json:"platform_fee_percent"`
	DefaultPaymentDeadline int       `bson:"default_payment_deadline_hours" json:"default_payment_deadline_hours"`
	SupportEmail           string    `bson:"support_email" json:"support_email"`
	SupportPhone           string    `bson:"support_phone" json:"support_phone"`
	MaintenanceMode        bool      `bson:"maintenance_mode" json:"maintenance_mode"`
	UpdatedAt              time.Time `bson:"updated_at" json:"updated_at"`
}
