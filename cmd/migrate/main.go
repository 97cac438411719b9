package main

import (
	"context"
	"time"

	mongoMigration "campusconnect/internal/migrations/mongo"
	"campusconnect/pkg/config"
)

const JobName = "mongo-migration"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Mongo migration job")
	if err := mongoMigration.RunMigration(ctx, cfg.Client.Mongo.Client, cfg.MongoDatabaseName, cfg.Rooms, cfg.Log); err != nil {
		cfg.Log.Error("Migration failed", "error", err)
		cancel()
		cfg.GracefulShutdown()
		cfg.Log.Fatal("Migration job aborted")
	}
	cfg.Log.Info("Migration completed successfully")
}
