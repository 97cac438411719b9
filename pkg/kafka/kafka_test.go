package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"campusconnect/pkg/logger"

	"github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func header(m kafka.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

type fakeReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []int64
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.queue) == 0 {
		r.mu.Unlock()
		r.cancel()
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	m := r.queue[0]
	r.queue = r.queue[1:]
	r.mu.Unlock()
	return m, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error { return nil }

func TestRetryCount(t *testing.T) {
	msg := Message{Headers: map[string]string{}}
	if got := msg.GetRetryCount(); got != 0 {
		t.Fatalf("GetRetryCount() = %d, want 0", got)
	}

	for i := 0; i < 12; i++ {
		msg.IncrementRetryCount()
	}
	if got := msg.GetRetryCount(); got != 12 {
		t.Fatalf("GetRetryCount() = %d, want 12", got)
	}
	if msg.Headers[HeaderRetryCount] != "12" {
		t.Errorf("header = %q", msg.Headers[HeaderRetryCount])
	}

	msg.Headers[HeaderRetryCount] = "garbage"
	if got := msg.GetRetryCount(); got != 0 {
		t.Errorf("malformed header should read as 0, got %d", got)
	}

	var empty Message
	empty.IncrementRetryCount()
	if empty.GetRetryCount() != 1 {
		t.Error("IncrementRetryCount should initialise headers")
	}
}

func TestMessageBuilder(t *testing.T) {
	msg, err := NewMessage().
		WithKey("Red Hall|2025-03-14").
		WithValue(map[string]string{"room": "Red Hall"}).
		WithEventType("booking.created").
		WithSource("bookings").
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if msg.GetEventID() == "" || msg.Headers[HeaderTimestamp] == "" {
		t.Error("Build() should fill event id and timestamp")
	}

	var decoded map[string]string
	if err := msg.DecodeValue(&decoded); err != nil || decoded["room"] != "Red Hall" {
		t.Errorf("DecodeValue() = %v, %v", decoded, err)
	}

	_, err = NewMessage().WithKey("k").WithValue(make(chan int)).Build()
	if !errors.Is(err, ErrInvalidMessage) {
		t.Errorf("unencodable value: err = %v", err)
	}

	bad := Message{Value: []byte("{")}
	if err := bad.DecodeValue(&decoded); ClassifyError(err) != ErrorTypePermanent {
		t.Errorf("malformed payload should be permanent, got %v", err)
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"nil", nil, ErrorTypeUnknown},
		{"explicit transient", NewTransientError("mongo busy", errors.New("x")), ErrorTypeTransient},
		{"explicit permanent", NewPermanentError("bad", nil), ErrorTypePermanent},
		{"wrapped transient", fmt.Errorf("handler: %w", NewTransientError("t", nil)), ErrorTypeTransient},
		{"deadline", context.DeadlineExceeded, ErrorTypeTransient},
		{"connection refused", errors.New("dial tcp: Connection Refused"), ErrorTypeTransient},
		{"unknown topic", errors.New("Unknown Topic Or Partition"), ErrorTypePermanent},
		{"unclassified", errors.New("something odd"), ErrorTypePermanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyError(tt.err); got != tt.want {
				t.Errorf("ClassifyError() = %v, want %v", got, tt.want)
			}
		})
	}

	if ShouldRetry(NewTransientError("t", nil), 3, 3) {
		t.Error("ShouldRetry past max retries")
	}
	if !ShouldRetry(NewTransientError("t", nil), 0, 3) {
		t.Error("transient error under max should retry")
	}
}

func TestProducer_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, nil, "campus.bookings", "", logger.Discard())

	var seenTopic string
	p.Use(func(ctx context.Context, msg Message, next func(context.Context, Message) error) error {
		seenTopic = msg.Topic
		return next(ctx, msg)
	})

	if err := p.Publish(context.Background(), Message{Value: []byte("x")}); !errors.Is(err, ErrEmptyKey) {
		t.Fatalf("empty key: err = %v", err)
	}
	if err := p.Publish(context.Background(), Message{Key: "k"}); !errors.Is(err, ErrEmptyValue) {
		t.Fatalf("empty value: err = %v", err)
	}

	msg, _ := NewMessage().WithKey("k").WithRawValue([]byte(`{}`)).Build()
	if err := p.Publish(context.Background(), msg); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if len(w.messages) != 1 || seenTopic != "campus.bookings" {
		t.Fatalf("written = %d, middleware topic = %q", len(w.messages), seenTopic)
	}

	_ = p.Close()
	if err := p.Publish(context.Background(), msg); !errors.Is(err, ErrProducerClosed) {
		t.Errorf("after Close: err = %v", err)
	}
	if !w.closed {
		t.Error("Close should close the writer")
	}
}

func TestProducer_FallsBackToDLQ(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	dlq := &fakeWriter{}
	p := newProducer(w, dlq, "campus.events", "campus.dlq", logger.Discard())

	msg, _ := NewMessage().WithKey("k").WithRawValue([]byte(`{}`)).Build()
	if err := p.Publish(context.Background(), msg); err == nil {
		t.Fatal("Publish() should still report the original failure")
	}
	if len(dlq.messages) != 1 {
		t.Fatalf("dlq messages = %d", len(dlq.messages))
	}
	if got := header(dlq.messages[0], HeaderOriginalTopic); got != "campus.events" {
		t.Errorf("original-topic header = %q", got)
	}
	if _, ok := msg.Headers[HeaderDLQError]; ok {
		t.Error("caller's message headers must not be mutated")
	}
}

func TestConsumer_RetriesThenDLQ(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{
		cancel: cancel,
		queue: []kafka.Message{
			{Offset: 1, Key: []byte("ok"), Value: []byte(`{}`)},
			{Offset: 2, Key: []byte("flaky"), Value: []byte(`{}`)},
			{Offset: 3, Key: []byte("broken"), Value: []byte(`{}`)},
		},
	}
	dlq := &fakeWriter{}

	attempts := map[string]int{}
	handler := func(_ context.Context, msg Message) error {
		attempts[msg.Key]++
		switch msg.Key {
		case "flaky":
			if attempts[msg.Key] < 3 {
				return NewTransientError("temporarily unavailable", nil)
			}
			return nil
		case "broken":
			return NewPermanentError("schema mismatch", nil)
		}
		return nil
	}

	c := newConsumer(reader, dlq, "campus.bookings", "campus-notifier", "campus.dlq", handler, logger.Discard())
	c.maxRetries = 3
	c.retryBackoff = time.Millisecond

	err := c.Start(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Start() = %v, want context.Canceled", err)
	}

	if attempts["ok"] != 1 || attempts["flaky"] != 3 || attempts["broken"] != 1 {
		t.Errorf("attempts = %v", attempts)
	}
	if len(reader.committed) != 3 {
		t.Errorf("committed = %v, want all three offsets", reader.committed)
	}
	if len(dlq.messages) != 1 || string(dlq.messages[0].Key) != "broken" {
		t.Fatalf("dlq = %+v", dlq.messages)
	}
	if got := header(dlq.messages[0], HeaderDLQGroup); got != "campus-notifier" {
		t.Errorf("dlq group header = %q", got)
	}

	if err := c.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := c.Start(context.Background()); !errors.Is(err, ErrConsumerClosed) {
		t.Errorf("Start after Close = %v", err)
	}
}
