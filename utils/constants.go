// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = time.Hour

// AccessTokenDuration is the lifetime of issued access tokens.
const AccessTokenDuration = 7 * 24 * time.Hour

// Booking window rules.
const (
	// MinBookingAdvance is the minimum lead time before a slot starts.
	MinBookingAdvance = 2 * time.Hour
	// MaxBookingAdvanceDays is how far ahead a slot may be booked.
	MaxBookingAdvanceDays = 60
	// MaxActiveBookingsPerUser caps pending/waiting_payment/confirmed bookings.
	MaxActiveBookingsPerUser = 10
)

// PixChargeTTL is how long an issued PIX charge stays payable.
const PixChargeTTL = 24 * time.Hour

// Pagination defaults.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)
