package activity

import (
	"context"
	"fmt"
	"time"

	"campusconnect/pkg/kafka"
	"campusconnect/pkg/logger"
	"campusconnect/pkg/middleware"
)

type Publisher interface {
	Publish(ctx context.Context, a Activity) error
	Close() error
}

type messagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

// KafkaPublisher writes activities to one topic.
type KafkaPublisher struct {
	producer messagePublisher
	source   string
	log      *logger.Logger
}

func NewKafkaPublisher(producer messagePublisher, source string, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, source: source, log: log}
}

func (p *KafkaPublisher) Publish(ctx context.Context, a Activity) error {
	if !a.Type.Valid() {
		return fmt.Errorf("%w: unknown activity type %q", kafka.ErrInvalidMessage, a.Type)
	}
	if a.OccurredAt.IsZero() {
		a.OccurredAt = time.Now().UTC()
	}

	msg, err := kafka.NewMessage().
		WithKey(a.PartitionKey()).
		WithValue(a).
		WithEventType(string(a.Type)).
		WithCorrelationID(middleware.RequestID(ctx)).
		WithSchemaVersion(SchemaVersion).
		WithSource(p.source).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build activity message: %w", err)
	}

	return p.producer.Publish(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// NopPublisher drops activities. Used when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Activity) error { return nil }
func (NopPublisher) Close() error                            { return nil }

// Notify publishes a on a context detached from the caller's cancellation
// and bounded by timeout. A failure is logged and swallowed so the request
// that triggered it still succeeds.
func Notify(ctx context.Context, p Publisher, log *logger.Logger, a Activity, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := p.Publish(ctx, a); err != nil {
		log.Warn("Failed to publish activity",
			"type", a.Type,
			"resource_id", a.ResourceID,
			"error", err,
		)
	}
}
