package mongo

import (
	"context"
	"fmt"
	"sort"

	bookingsrepo "campusconnect/internal/bookings/repository"
	eventsrepo "campusconnect/internal/events/repository"
	lostfoundrepo "campusconnect/internal/lostfound/repository"
	"campusconnect/internal/migrations/mongo/validators"
	"campusconnect/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// The unique index backs up the slot check for exact duplicates.
	BookingsIndexes = []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "room", Value: 1},
				{Key: "date", Value: 1},
				{Key: "time", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "date", Value: 1},
			{Key: "time", Value: 1},
		}},
	}

	// Locks are reaped by the TTL monitor as soon as expires_at passes.
	BookingLocksIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}

	EventsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}},
	}

	LostFoundIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}
)

type CollectionDef struct {
	Indexes   []mongo.IndexModel
	Validator bson.M
}

// Collections describes every collection the services rely on.
func Collections(rooms []string) map[string]CollectionDef {
	return map[string]CollectionDef{
		bookingsrepo.CollectionName: {
			Indexes:   BookingsIndexes,
			Validator: validators.Booking(rooms),
		},
		bookingsrepo.LockCollectionName: {
			Indexes:   BookingLocksIndexes,
			Validator: validators.BookingLockValidator,
		},
		eventsrepo.CollectionName: {
			Indexes:   EventsIndexes,
			Validator: validators.EventValidator,
		},
		lostfoundrepo.CollectionName: {
			Indexes:   LostFoundIndexes,
			Validator: validators.LostFoundValidator,
		},
	}
}

func RunMigration(ctx context.Context, client *mongo.Client, dbName string, rooms []string, log *logger.Logger) error {
	db := client.Database(dbName)
	log.Info("Running Mongo migrations", "database", dbName)

	collections := Collections(rooms)
	names := make([]string, 0, len(collections))
	for name := range collections {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		def := collections[name]
		if err := ensureCollection(ctx, db, name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	log.Info("All migrations applied successfully", "collections", len(names))
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "indexes", len(models))
	return nil
}
