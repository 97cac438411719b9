package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"campusconnect/internal/notifier"
	"campusconnect/pkg/config"
	"campusconnect/pkg/kafka"
	kafkaconfig "campusconnect/pkg/kafka/config"
	kafkamiddleware "campusconnect/pkg/kafka/middleware"
)

const ServiceName = "notifier"

func main() {
	cfg := config.Load(ServiceName)

	kcfg, err := kafkaconfig.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kcfg.LogConfiguration(cfg.Log)

	n := notifier.New(notifier.NewLogSink(cfg.Log.With("component", "sink")), cfg.Log)
	metrics := kafkamiddleware.NewMetrics()

	topics := []string{cfg.KafkaBookingsTopic, cfg.KafkaEventsTopic}
	consumers := make([]*kafka.Consumer, 0, len(topics))
	for _, topic := range topics {
		consumer, err := kafka.NewConsumer(kcfg, topic, cfg.KafkaNotifierGroup, cfg.KafkaDLQTopic, n.Handle, cfg.Log)
		if err != nil {
			cfg.Log.Fatal("Failed to create consumer", "topic", topic, "error", err)
		}
		if kcfg.EnableMiddleware {
			consumer.Use(kafkamiddleware.LoggingConsumerMiddleware(cfg.Log.With("component", "consumer", "topic", topic)))
			consumer.Use(metrics.ConsumerMiddleware())
		}
		consumers = append(consumers, consumer)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	for i, consumer := range consumers {
		wg.Add(1)
		go func(topic string, c *kafka.Consumer) {
			defer wg.Done()
			cfg.Log.Info("Consumer started", "topic", topic, "group_id", cfg.KafkaNotifierGroup)
			if err := c.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				cfg.Log.Error("Consumer stopped", "topic", topic, "error", err)
			}
		}(topics[i], consumer)
	}

	<-ctx.Done()
	cfg.Log.Info("Shutdown signal received, stopping consumers")
	wg.Wait()

	for i, consumer := range consumers {
		if err := consumer.Close(); err != nil {
			cfg.Log.Error("Failed to close consumer", "topic", topics[i], "error", err)
		}
	}
	metrics.Log(cfg.Log)
	cfg.Log.Info("Notifier stopped")
}
