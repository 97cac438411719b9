package service

import (
	"context"
	"errors"
	"slices"
	"sync"

	"campusconnect/internal/activity"
	bookingserrors "campusconnect/internal/bookings/errors"
	"campusconnect/internal/bookings/repository"
	"campusconnect/internal/bookings/validator"
	"campusconnect/pkg/auth"
	"campusconnect/pkg/config"
	apperrors "campusconnect/pkg/errors"
	"campusconnect/pkg/model"
	"campusconnect/pkg/sanitizer"
	"campusconnect/pkg/slot"
	"campusconnect/pkg/validation"
)

const (
	ConflictMessage     = "This room is already booked for this time slot (±1 hour). Please choose another time."
	StoreFailureMessage = "Failed to create booking. Please try again."
	LockedMessage       = "This room is currently being booked by someone else. Please try again in a moment."
)

type BookingService interface {
	Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	ListMine(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	DaySchedule(ctx context.Context, room, date string) ([]*model.Booking, error)
	CheckAvailability(ctx context.Context, room, date, clock string) (*model.Availability, error)
	Delete(ctx context.Context, id string) error
	Rooms() []string
}

type bookingService struct {
	repo      repository.BookingRepository
	reserver  repository.SlotReserver
	validator *validator.BookingValidator
	publisher activity.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	reserver repository.SlotReserver,
	validator *validator.BookingValidator,
	publisher activity.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		reserver:  reserver,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	user, ok := auth.CurrentUser(ctx)
	if !ok {
		return nil, apperrors.Unauthorized("You must be signed in to book a room")
	}

	booking := &model.Booking{
		Room:      s.canonicalRoom(req.Room),
		Date:      sanitizer.SanitizeDate(req.Date),
		Time:      sanitizer.SanitizeClock(req.Time),
		EventName: sanitizer.SanitizeTitle(req.EventName),
		UserID:    user.ID,
	}
	if err := s.validate(booking); err != nil {
		return nil, err
	}

	if err := s.reserver.ReserveIfAvailable(ctx, booking); err != nil {
		return nil, s.mapReserveError(booking, err)
	}

	s.cfg.Log.Info("Booking created",
		"booking_id", booking.ID,
		"room", booking.Room,
		"date", booking.Date,
		"time", booking.Time,
		"user_id", booking.UserID,
	)

	activity.Notify(ctx, s.publisher, s.cfg.Log, activity.Activity{
		Type:       activity.BookingCreated,
		ResourceID: booking.ID,
		ActorID:    user.ID,
		Subject:    booking.EventName,
		Room:       booking.Room,
		Date:       booking.Date,
		Time:       booking.Time,
	}, s.cfg.WriteTimeout)

	return booking, nil
}

func (s *bookingService) mapReserveError(booking *model.Booking, err error) error {
	var conflict *bookingserrors.SlotConflictError
	switch {
	case errors.As(err, &conflict):
		s.cfg.Log.Info("Booking rejected: slot taken",
			"room", booking.Room,
			"date", booking.Date,
			"time", booking.Time,
			"conflicts_with", conflict.ConflictsWith,
		)
		return apperrors.Conflict(ConflictMessage).WithDetails(map[string]any{
			"conflicts_with": conflict.ConflictsWith,
		})
	case errors.Is(err, bookingserrors.ErrPartitionLocked):
		return apperrors.Conflict(LockedMessage)
	default:
		s.cfg.Log.Error("Failed to create booking",
			"room", booking.Room,
			"date", booking.Date,
			"time", booking.Time,
			"error", err,
		)
		return apperrors.Internal(StoreFailureMessage, err)
	}
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(id, err)
	}
	return booking, nil
}

// ListMine returns the caller's bookings ordered by date then time.
func (s *bookingService) ListMine(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	user, ok := auth.CurrentUser(ctx)
	if !ok {
		return nil, 0, apperrors.Unauthorized("You must be signed in to view your bookings")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var (
		bookings []*model.Booking
		count    int64
		countErr error
		findErr  error
		wg       sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		count, countErr = s.repo.CountByUser(ctx, user.ID)
	}()
	go func() {
		defer wg.Done()
		bookings, findErr = s.repo.FindByUser(ctx, user.ID, limit, offset)
	}()
	wg.Wait()

	if countErr != nil {
		return nil, 0, apperrors.Internal("Failed to count bookings", countErr)
	}
	if findErr != nil {
		return nil, 0, apperrors.Internal("Failed to retrieve bookings", findErr)
	}

	return bookings, count, nil
}

// DaySchedule lists every booking for one room on one date ordered by time.
func (s *bookingService) DaySchedule(ctx context.Context, room, date string) ([]*model.Booking, error) {
	canonical, ok := sanitizer.CanonicalRoom(s.cfg.Rooms, room)
	if !ok {
		return nil, apperrors.InvalidInput("Unknown room")
	}
	date = sanitizer.SanitizeDate(date)
	if _, err := validation.ParseDate(date); err != nil {
		return nil, apperrors.InvalidInput("date must be in YYYY-MM-DD format")
	}

	bookings, err := s.repo.FindByRoomAndDate(ctx, canonical, date)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

// CheckAvailability previews the slot check without reserving anything. The
// answer can be stale by the time the caller books.
func (s *bookingService) CheckAvailability(ctx context.Context, room, date, clock string) (*model.Availability, error) {
	canonical, ok := sanitizer.CanonicalRoom(s.cfg.Rooms, room)
	if !ok {
		return nil, apperrors.InvalidInput("Unknown room")
	}
	date = sanitizer.SanitizeDate(date)
	if _, err := validation.ParseDate(date); err != nil {
		return nil, apperrors.InvalidInput("date must be in YYYY-MM-DD format")
	}
	proposed, err := slot.ParseTimeOfDay(sanitizer.SanitizeClock(clock))
	if err != nil {
		return nil, apperrors.InvalidInput("time must be in HH:MM format")
	}

	existing, err := s.repo.ListTimesByRoomAndDate(ctx, canonical, date)
	if err != nil {
		return nil, apperrors.Internal("Failed to check availability", err)
	}

	result := &model.Availability{
		Room:      canonical,
		Date:      date,
		Time:      proposed.String(),
		Available: true,
	}
	if conflict, found := slot.FirstConflict(proposed, existing); found {
		result.Available = false
		result.ConflictsWith = conflict.String()
	}
	return result, nil
}

// Delete removes a booking owned by the caller.
func (s *bookingService) Delete(ctx context.Context, id string) error {
	user, ok := auth.CurrentUser(ctx)
	if !ok {
		return apperrors.Unauthorized("You must be signed in to cancel a booking")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapLookupError(id, err)
	}
	if booking.UserID != user.ID {
		return apperrors.Forbidden("You can only cancel your own bookings")
	}

	if err := s.repo.DeleteOwned(ctx, id, user.ID); err != nil {
		return mapLookupError(id, err)
	}

	s.cfg.Log.Info("Booking deleted",
		"booking_id", id,
		"room", booking.Room,
		"date", booking.Date,
		"time", booking.Time,
	)

	activity.Notify(ctx, s.publisher, s.cfg.Log, activity.Activity{
		Type:       activity.BookingDeleted,
		ResourceID: id,
		ActorID:    user.ID,
		Subject:    booking.EventName,
		Room:       booking.Room,
		Date:       booking.Date,
		Time:       booking.Time,
	}, s.cfg.WriteTimeout)

	return nil
}

func (s *bookingService) Rooms() []string {
	return slices.Clone(s.cfg.Rooms)
}

// canonicalRoom maps a loosely typed room to its configured spelling. An
// unknown room is passed through trimmed so validation reports it.
func (s *bookingService) canonicalRoom(room string) string {
	if canonical, ok := sanitizer.CanonicalRoom(s.cfg.Rooms, room); ok {
		return canonical
	}
	return sanitizer.TrimAndNormalize(room)
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			return apperrors.Validation("Invalid booking", verrs.Details())
		}
		return apperrors.Validation("Invalid booking", map[string]any{"error": err.Error()})
	}
	return nil
}

func mapLookupError(id string, err error) error {
	switch {
	case errors.Is(err, bookingserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid booking ID format")
	case errors.Is(err, bookingserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Booking", id)
	default:
		return apperrors.Internal("Failed to retrieve booking", err)
	}
}
