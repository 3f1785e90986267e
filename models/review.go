package models

import "time"

// Review is a customer rating of an arena, tied to a completed booking.
type Review struct {
	ID        string    `bson:"id" json:"id"`
	ArenaID   string    `bson:"arena_id" json:"arena_id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	BookingID string    `bson:"booking_id,omitempty" json:"booking_id,omitempty"`
	Rating    int       `bson:"rating" json:"rating"` // 1..5
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`

	User *UserRef `bson:"-" json:"user,omitempty"`
}

// ReviewCreate is the POST /reviews payload.
type ReviewCreate struct {
	ArenaID   string `json:"arena_id" binding:"required"`
	BookingID string `json:"booking_id,omitempty"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment,omitempty"`
}
