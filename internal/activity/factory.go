package activity

import (
	"fmt"

	"campusconnect/pkg/config"
	"campusconnect/pkg/kafka"
	kafkaconfig "campusconnect/pkg/kafka/config"
	kafkamiddleware "campusconnect/pkg/kafka/middleware"
	"campusconnect/pkg/logger"
)

// NewPublisher returns a Kafka-backed publisher for topic when Kafka is
// enabled, and a NopPublisher otherwise.
func NewPublisher(cfg *config.Config, topic string, metrics *kafkamiddleware.Metrics) (Publisher, error) {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, activities will not be published", "topic", topic)
		return NopPublisher{}, nil
	}

	kcfg, err := kafkaconfig.Load()
	if err != nil {
		return nil, err
	}
	kcfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kcfg, topic, cfg.KafkaDLQTopic, cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create producer for %s: %w", topic, err)
	}
	if kcfg.EnableMiddleware {
		producer.Use(kafkamiddleware.LoggingProducerMiddleware(producerLogger(cfg.Log, topic)))
		if metrics != nil {
			producer.Use(metrics.ProducerMiddleware())
		}
	}

	return NewKafkaPublisher(producer, cfg.ServiceName, cfg.Log), nil
}

func producerLogger(log *logger.Logger, topic string) *logger.Logger {
	return log.With("component", "producer", "topic", topic)
}
