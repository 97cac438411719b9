package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrSlotTaken means the proposed start is within one slot of an
	// existing booking for the same room and date.
	ErrSlotTaken = errors.New("booking time conflicts with existing booking")

	// ErrPartitionLocked means another request holds the advisory lock for
	// the same room and date.
	ErrPartitionLocked = errors.New("room and date are locked by another request")

	ErrCreateFailed = errors.New("failed to store booking")

	ErrMalformedTime = errors.New("stored booking time is malformed")
)

// SlotConflictError carries the start time that blocked a reservation.
type SlotConflictError struct {
	Room          string
	Date          string
	ConflictsWith string
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("%s: %s on %s at %s", ErrSlotTaken, e.Room, e.Date, e.ConflictsWith)
}

func (e *SlotConflictError) Is(target error) bool {
	return target == ErrSlotTaken
}
