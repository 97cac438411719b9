package main

import (
	"campusconnect/internal/activity"
	"campusconnect/internal/bookings/handler"
	"campusconnect/internal/bookings/repository"
	"campusconnect/internal/bookings/service"
	"campusconnect/internal/bookings/validator"
	"campusconnect/pkg/app"
	"campusconnect/pkg/auth"
	"campusconnect/pkg/config"
	kafkamiddleware "campusconnect/pkg/kafka/middleware"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	if err := cfg.RequireAuth(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.SetMongo()

	cfg.Log.Info("Starting Bookings service")
	metrics := kafkamiddleware.NewMetrics()
	publisher, err := activity.NewPublisher(cfg, cfg.KafkaBookingsTopic, metrics)
	if err != nil {
		cfg.Log.Fatal("Failed to create activity publisher", "error", err)
	}

	bookingService := initServices(cfg, publisher)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewBookingHandler(bookingService, cfg.Log),
		auth.NewVerifier(cfg.AuthJWTSecret, cfg.AuthJWTIssuer),
	)
	serverApp.OnShutdown(func() error {
		metrics.Log(cfg.Log)
		return publisher.Close()
	})
	serverApp.Run()
}

func initServices(cfg *config.Config, publisher activity.Publisher) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.Log, cfg.Rooms)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	lockRepo := repository.NewBookingLockRepository(cfg)
	reserver := repository.NewSlotReserver(bookingRepo, lockRepo, cfg.BookingLockTTL, cfg.Log)
	bookingService := service.NewBookingService(
		bookingRepo,
		reserver,
		bookingValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName, "rooms", len(cfg.Rooms))
	return bookingService
}
