// Package notifier turns activity messages into user-facing notifications.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"campusconnect/internal/activity"
	"campusconnect/pkg/kafka"
	"campusconnect/pkg/logger"
)

type Notification struct {
	EventID       string        `json:"event_id"`
	CorrelationID string        `json:"correlation_id,omitempty"`
	Type          activity.Type `json:"type"`
	Audience      string        `json:"audience"`
	Title         string        `json:"title"`
	Body          string        `json:"body"`
}

// Sink delivers a rendered notification. A returned error is retried by the
// consumer unless it is a permanent kafka error.
type Sink interface {
	Deliver(ctx context.Context, n Notification) error
}

// LogSink writes notifications to the structured log.
type LogSink struct {
	log *logger.Logger
}

func NewLogSink(log *logger.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Deliver(_ context.Context, n Notification) error {
	s.log.Info("Notification",
		"event_id", n.EventID,
		"correlation_id", n.CorrelationID,
		"type", n.Type,
		"audience", n.Audience,
		"title", n.Title,
		"body", n.Body,
	)
	return nil
}

type Notifier struct {
	sink Sink
	log  *logger.Logger
}

func New(sink Sink, log *logger.Logger) *Notifier {
	return &Notifier{sink: sink, log: log}
}

// Handle is a kafka.MessageHandler.
func (n *Notifier) Handle(ctx context.Context, msg kafka.Message) error {
	var a activity.Activity
	if err := msg.DecodeValue(&a); err != nil {
		return err
	}
	if !a.Type.Valid() {
		return kafka.NewPermanentError(fmt.Sprintf("unknown activity type %q", a.Type), nil)
	}

	note := Render(a)
	note.EventID = msg.GetEventID()
	note.CorrelationID = msg.GetCorrelationID()

	if err := n.sink.Deliver(ctx, note); err != nil {
		var kerr *kafka.KafkaError
		if errors.As(err, &kerr) {
			return err
		}
		return kafka.NewTransientError("notification delivery failed", err)
	}
	return nil
}

// Render builds the notification text for a. Booking notices go to everyone
// following the room; the rest go to the whole campus.
func Render(a activity.Activity) Notification {
	n := Notification{Type: a.Type, Audience: "campus"}

	switch a.Type {
	case activity.BookingCreated:
		n.Audience = "room:" + a.Room
		n.Title = "Room booked"
		n.Body = fmt.Sprintf("%s booked %s on %s at %s", quoted(a.Subject), a.Room, a.Date, a.Time)
	case activity.BookingDeleted:
		n.Audience = "room:" + a.Room
		n.Title = "Booking cancelled"
		n.Body = fmt.Sprintf("%s is free on %s at %s (%s cancelled)", a.Room, a.Date, a.Time, quoted(a.Subject))
	case activity.EventCreated:
		n.Title = "New campus event"
		n.Body = joinNonEmpty(quoted(a.Subject), a.Date+" "+a.Time, a.Location)
	case activity.LostFoundCreated:
		n.Title = "Lost and found"
		n.Body = joinNonEmpty(quoted(a.Subject), a.Location, a.Date)
	case activity.LostFoundDeleted:
		n.Title = "Lost and found item resolved"
		n.Body = quoted(a.Subject) + " has been removed from the board"
	}
	return n
}

func quoted(s string) string {
	return `"` + s + `"`
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, strings.TrimSpace(p))
		}
	}
	return strings.Join(kept, ", ")
}
