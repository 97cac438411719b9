package main

import (
	"campusconnect/internal/activity"
	"campusconnect/internal/lostfound/handler"
	"campusconnect/internal/lostfound/repository"
	"campusconnect/internal/lostfound/service"
	"campusconnect/internal/lostfound/validator"
	"campusconnect/pkg/app"
	"campusconnect/pkg/auth"
	"campusconnect/pkg/config"
)

const ServiceName = "lost-found"

func main() {
	cfg := config.Load(ServiceName)
	if err := cfg.RequireAuth(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.SetMongo()

	cfg.Log.Info("Starting Lost and Found service")
	// Lost and found activity shares the events topic with campus events.
	publisher, err := activity.NewPublisher(cfg, cfg.KafkaEventsTopic, nil)
	if err != nil {
		cfg.Log.Fatal("Failed to create activity publisher", "error", err)
	}

	itemService := service.NewItemService(
		repository.NewMongoItemRepository(cfg),
		validator.NewItemValidator(cfg.Log),
		publisher,
		cfg,
	)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewItemHandler(itemService, cfg.Log),
		auth.NewVerifier(cfg.AuthJWTSecret, cfg.AuthJWTIssuer),
	)
	serverApp.OnShutdown(publisher.Close)
	serverApp.Run()
}
