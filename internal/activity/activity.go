// Package activity defines the campus activity feed: what happened, to
// which resource, and by whom. Services publish activities to Kafka and the
// notifier consumes them.
package activity

import (
	"time"
)

type Type string

const (
	BookingCreated   Type = "booking.created"
	BookingDeleted   Type = "booking.deleted"
	EventCreated     Type = "event.created"
	LostFoundCreated Type = "lost_found.created"
	LostFoundDeleted Type = "lost_found.deleted"
)

const SchemaVersion = "1"

func (t Type) Valid() bool {
	switch t {
	case BookingCreated, BookingDeleted, EventCreated, LostFoundCreated, LostFoundDeleted:
		return true
	default:
		return false
	}
}

// Activity is the message payload. Subject is a short human description
// (event name, event title, item name); Room is set for bookings only.
type Activity struct {
	Type       Type      `json:"type"`
	ResourceID string    `json:"resource_id"`
	ActorID    string    `json:"actor_id"`
	Subject    string    `json:"subject"`
	Room       string    `json:"room,omitempty"`
	Date       string    `json:"date,omitempty"`
	Time       string    `json:"time,omitempty"`
	Location   string    `json:"location,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PartitionKey keeps every activity for one room and day on one partition,
// so consumers see bookings for a slot in order.
func (a Activity) PartitionKey() string {
	if a.Room != "" {
		return a.Room + "|" + a.Date
	}
	return a.ResourceID
}
