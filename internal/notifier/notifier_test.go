package notifier

import (
	"context"
	"errors"
	"testing"

	"campusconnect/internal/activity"
	"campusconnect/pkg/kafka"
	"campusconnect/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	delivered []Notification
	err       error
}

func (s *recordingSink) Deliver(_ context.Context, n Notification) error {
	if s.err != nil {
		return s.err
	}
	s.delivered = append(s.delivered, n)
	return nil
}

func message(t *testing.T, a activity.Activity) kafka.Message {
	t.Helper()
	msg, err := kafka.NewMessage().
		WithKey(a.PartitionKey()).
		WithValue(a).
		WithEventType(string(a.Type)).
		WithCorrelationID("req-42").
		Build()
	require.NoError(t, err)
	return msg
}

func TestHandle_BookingCreated(t *testing.T) {
	sink := &recordingSink{}
	n := New(sink, logger.Discard())

	msg := message(t, activity.Activity{
		Type:       activity.BookingCreated,
		ResourceID: "b1",
		Subject:    "Chess club",
		Room:       "Red Hall",
		Date:       "2025-03-10",
		Time:       "10:00",
	})

	require.NoError(t, n.Handle(context.Background(), msg))
	require.Len(t, sink.delivered, 1)

	got := sink.delivered[0]
	assert.Equal(t, "room:Red Hall", got.Audience)
	assert.Equal(t, `"Chess club" booked Red Hall on 2025-03-10 at 10:00`, got.Body)
	assert.Equal(t, msg.GetEventID(), got.EventID)
	assert.NotEmpty(t, got.EventID)
	assert.Equal(t, "req-42", got.CorrelationID)
}

func TestHandle_MalformedPayloadIsPermanent(t *testing.T) {
	n := New(&recordingSink{}, logger.Discard())

	err := n.Handle(context.Background(), kafka.Message{Value: []byte("{not json")})
	assert.Equal(t, kafka.ErrorTypePermanent, kafka.ClassifyError(err))
	assert.False(t, kafka.ShouldRetry(err, 0, 3))
}

func TestHandle_UnknownTypeIsPermanent(t *testing.T) {
	n := New(&recordingSink{}, logger.Discard())

	err := n.Handle(context.Background(), kafka.Message{Value: []byte(`{"type":"booking.exploded"}`)})
	assert.Equal(t, kafka.ErrorTypePermanent, kafka.ClassifyError(err))
}

func TestHandle_SinkFailureIsRetried(t *testing.T) {
	n := New(&recordingSink{err: errors.New("smtp unavailable")}, logger.Discard())

	err := n.Handle(context.Background(), message(t, activity.Activity{Type: activity.EventCreated, Subject: "Talk"}))
	assert.Equal(t, kafka.ErrorTypeTransient, kafka.ClassifyError(err))
	assert.True(t, kafka.ShouldRetry(err, 0, 3))
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		activity activity.Activity
		audience string
		body     string
	}{
		{
			name:     "booking deleted",
			activity: activity.Activity{Type: activity.BookingDeleted, Subject: "Debate", Room: "Blue Hall", Date: "2025-03-10", Time: "14:00"},
			audience: "room:Blue Hall",
			body:     `Blue Hall is free on 2025-03-10 at 14:00 ("Debate" cancelled)`,
		},
		{
			name:     "event created",
			activity: activity.Activity{Type: activity.EventCreated, Subject: "Hackathon", Date: "2025-04-12", Time: "09:00", Location: "Red Hall"},
			audience: "campus",
			body:     `"Hackathon", 2025-04-12 09:00, Red Hall`,
		},
		{
			name:     "lost item without location",
			activity: activity.Activity{Type: activity.LostFoundCreated, Subject: "Keys", Date: "2025-03-01"},
			audience: "campus",
			body:     `"Keys", 2025-03-01`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.activity)
			assert.Equal(t, tt.audience, got.Audience)
			assert.Equal(t, tt.body, got.Body)
			assert.NotEmpty(t, got.Title)
		})
	}
}
