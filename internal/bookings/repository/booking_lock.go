package repository

import (
	"context"
	"fmt"
	"time"

	bookingserrors "campusconnect/internal/bookings/errors"
	"campusconnect/pkg/config"
	"campusconnect/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const LockCollectionName = "Booking_locks"

// BookingLockRepository manages advisory locks over (room, date) partitions.
// Expired locks are removed by the TTL index on expires_at.
type BookingLockRepository interface {
	Acquire(ctx context.Context, lock *model.BookingLock) error
	Release(ctx context.Context, lockID, token string) error
}

type mongoBookingLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewBookingLockRepository(cfg *config.Config) BookingLockRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoBookingLockRepository{
		cfg:        cfg,
		collection: db.Collection(LockCollectionName),
	}
}

// LockID derives the lock _id for a partition. The date goes first and is
// fixed width, and "|" never appears in a date, so distinct partitions never
// share an id whatever the room is called.
func LockID(room, date string) string {
	return fmt.Sprintf("booking_lock|%s|%s", date, room)
}

// Acquire inserts the lock document. A live holder surfaces as
// ErrPartitionLocked. A holder whose lock has expired but not yet been reaped
// by the TTL monitor is taken over.
func (r *mongoBookingLockRepository) Acquire(ctx context.Context, lock *model.BookingLock) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	lock.CreatedAt = time.Now().UTC()

	_, err := r.collection.InsertOne(ctx, lock)
	if err == nil {
		return nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to acquire booking lock: %w", err)
	}

	result, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": lock.ID, "expires_at": bson.M{"$lte": lock.CreatedAt}},
		lock,
	)
	if err != nil {
		return fmt.Errorf("failed to take over expired booking lock: %w", err)
	}
	if result.MatchedCount == 0 {
		return bookingserrors.ErrPartitionLocked
	}
	return nil
}

// Release deletes the lock only while it still carries token. A lock that
// expired and was taken over by another request is left alone.
func (r *mongoBookingLockRepository) Release(ctx context.Context, lockID, token string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID, "token": token}); err != nil {
		return fmt.Errorf("failed to release booking lock: %w", err)
	}
	return nil
}
