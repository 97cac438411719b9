package repository

import (
	"context"
	"fmt"
	"time"

	bookingserrors "campusconnect/internal/bookings/errors"
	"campusconnect/pkg/logger"
	"campusconnect/pkg/model"
	"campusconnect/pkg/slot"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// The transaction deadline sits this fraction of the TTL before the lock
// expires, leaving room for the commit to land while the lock is still held.
const lockMarginDivisor = 5

// SlotReserver creates a booking only if its slot is still free. The check
// and the insert happen under one (room, date) lock and one transaction so
// two concurrent requests cannot both pass the check.
type SlotReserver interface {
	ReserveIfAvailable(ctx context.Context, booking *model.Booking) error
}

type slotReserver struct {
	bookings BookingRepository
	locks    BookingLockRepository
	lockTTL  time.Duration
	log      *logger.Logger
}

func NewSlotReserver(bookings BookingRepository, locks BookingLockRepository, lockTTL time.Duration, log *logger.Logger) SlotReserver {
	return &slotReserver{
		bookings: bookings,
		locks:    locks,
		lockTTL:  lockTTL,
		log:      log,
	}
}

// ReserveIfAvailable returns ErrPartitionLocked when another request holds
// the partition, a *SlotConflictError when the slot is taken, and
// ErrCreateFailed when the insert itself fails.
func (r *slotReserver) ReserveIfAvailable(ctx context.Context, booking *model.Booking) error {
	proposed, err := slot.ParseTimeOfDay(booking.Time)
	if err != nil {
		return err
	}

	lock := &model.BookingLock{
		ID:        LockID(booking.Room, booking.Date),
		Room:      booking.Room,
		Date:      booking.Date,
		Owner:     booking.UserID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().UTC().Add(r.lockTTL),
	}
	if err := r.locks.Acquire(ctx, lock); err != nil {
		return err
	}
	defer r.release(ctx, lock)

	// Past the lock expiry another request may take the partition over, so
	// the check and insert must finish before it.
	txCtx, cancel := context.WithDeadline(ctx, lock.ExpiresAt.Add(-r.lockTTL/lockMarginDivisor))
	defer cancel()

	return r.bookings.ExecuteTransaction(txCtx, func(sessCtx mongo.SessionContext) error {
		existing, err := r.bookings.ListTimesByRoomAndDate(sessCtx, booking.Room, booking.Date)
		if err != nil {
			return fmt.Errorf("%w: %w", bookingserrors.ErrCreateFailed, err)
		}

		if conflict, found := slot.FirstConflict(proposed, existing); found {
			return &bookingserrors.SlotConflictError{
				Room:          booking.Room,
				Date:          booking.Date,
				ConflictsWith: conflict.String(),
			}
		}

		return r.bookings.Create(sessCtx, booking)
	})
}

func (r *slotReserver) release(ctx context.Context, lock *model.BookingLock) {
	if err := r.locks.Release(context.WithoutCancel(ctx), lock.ID, lock.Token); err != nil {
		r.log.Warn("Failed to release booking lock; it will expire via TTL",
			"lock_id", lock.ID,
			"error", err,
		)
	}
}
