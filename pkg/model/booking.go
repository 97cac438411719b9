package model

import "time"

// Booking reserves a one-hour slot in a campus room. Bookings are created or
// deleted, never edited in place.
type Booking struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Room      string    `json:"room" bson:"room" validate:"required,campus_room"`
	Date      string    `json:"date" bson:"date" validate:"required,calendar_date"`
	Time      string    `json:"time" bson:"time" validate:"required,time_of_day"`
	EventName string    `json:"event_name" bson:"event_name" validate:"required,min=2,max=120"`
	UserID    string    `json:"user_id" bson:"user_id" validate:"required,max=128"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// BookingRequest is the client payload; the owner comes from the token.
type BookingRequest struct {
	Room      string `json:"room"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	EventName string `json:"event_name"`
}

// Availability answers a preview check for one proposed slot.
type Availability struct {
	Room          string `json:"room"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Available     bool   `json:"available"`
	ConflictsWith string `json:"conflicts_with,omitempty"`
}
