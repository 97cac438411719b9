package main

import (
	"campusconnect/internal/activity"
	"campusconnect/internal/events/handler"
	"campusconnect/internal/events/repository"
	"campusconnect/internal/events/service"
	"campusconnect/internal/events/validator"
	"campusconnect/pkg/app"
	"campusconnect/pkg/auth"
	"campusconnect/pkg/config"
	kafkamiddleware "campusconnect/pkg/kafka/middleware"
)

const ServiceName = "events"

func main() {
	cfg := config.Load(ServiceName)
	if err := cfg.RequireAuth(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.SetMongo()

	cfg.Log.Info("Starting Events service")
	metrics := kafkamiddleware.NewMetrics()
	publisher, err := activity.NewPublisher(cfg, cfg.KafkaEventsTopic, metrics)
	if err != nil {
		cfg.Log.Fatal("Failed to create activity publisher", "error", err)
	}

	eventService := service.NewEventService(
		repository.NewMongoEventRepository(cfg),
		validator.NewEventValidator(cfg.Log),
		publisher,
		cfg,
	)
	cfg.Log.Info("Event service initialized", "database", cfg.MongoDatabaseName)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewEventHandler(eventService, cfg.Log),
		auth.NewVerifier(cfg.AuthJWTSecret, cfg.AuthJWTIssuer),
	)
	serverApp.OnShutdown(func() error {
		metrics.Log(cfg.Log)
		return publisher.Close()
	})
	serverApp.Run()
}
