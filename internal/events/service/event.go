package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"campusconnect/internal/activity"
	"campusconnect/internal/events/calendar"
	eventserrors "campusconnect/internal/events/errors"
	"campusconnect/internal/events/repository"
	"campusconnect/internal/events/validator"
	"campusconnect/pkg/auth"
	"campusconnect/pkg/config"
	apperrors "campusconnect/pkg/errors"
	"campusconnect/pkg/model"
	"campusconnect/pkg/sanitizer"
	"campusconnect/pkg/validation"
)

type EventService interface {
	Create(ctx context.Context, req *model.EventRequest) (*model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Event, int64, error)
	GetByDate(ctx context.Context, date string) ([]*model.Event, error)
	Calendar(ctx context.Context, year, month int) (*calendar.Grid, error)
}

type eventService struct {
	repo      repository.EventRepository
	validator *validator.EventValidator
	publisher activity.Publisher
	cfg       *config.Config
	now       func() time.Time
}

func NewEventService(
	repo repository.EventRepository,
	validator *validator.EventValidator,
	publisher activity.Publisher,
	cfg *config.Config,
) EventService {
	return &eventService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *eventService) Create(ctx context.Context, req *model.EventRequest) (*model.Event, error) {
	user, ok := auth.CurrentUser(ctx)
	if !ok {
		return nil, apperrors.Unauthorized("You must be signed in to post an event")
	}

	event := &model.Event{
		Title:       sanitizer.SanitizeTitle(req.Title),
		Description: sanitizer.SanitizeDescription(req.Description),
		Date:        sanitizer.SanitizeDate(req.Date),
		Time:        sanitizer.SanitizeClock(req.Time),
		Location:    sanitizer.SanitizeTitle(req.Location),
		CreatedBy:   user.ID,
	}
	if err := s.validator.Validate(event); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			return nil, apperrors.Validation("Invalid event", verrs.Details())
		}
		return nil, apperrors.Validation("Invalid event", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, event); err != nil {
		s.cfg.Log.Error("Failed to create event", "title", event.Title, "date", event.Date, "error", err)
		return nil, apperrors.Internal("Failed to create event. Please try again.", err)
	}

	s.cfg.Log.Info("Event created",
		"event_id", event.ID,
		"date", event.Date,
		"time", event.Time,
		"created_by", event.CreatedBy,
	)

	activity.Notify(ctx, s.publisher, s.cfg.Log, activity.Activity{
		Type:       activity.EventCreated,
		ResourceID: event.ID,
		ActorID:    user.ID,
		Subject:    event.Title,
		Date:       event.Date,
		Time:       event.Time,
		Location:   event.Location,
	}, s.cfg.WriteTimeout)

	return event, nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*model.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, eventserrors.ErrInvalidID):
			return nil, apperrors.InvalidInput("Invalid event ID format")
		case errors.Is(err, eventserrors.ErrNotFound):
			return nil, apperrors.NotFoundWithID("Event", id)
		default:
			return nil, apperrors.Internal("Failed to retrieve event", err)
		}
	}
	return event, nil
}

func (s *eventService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Event, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var (
		events   []*model.Event
		count    int64
		countErr error
		findErr  error
		wg       sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		count, countErr = s.repo.Count(ctx)
	}()
	go func() {
		defer wg.Done()
		events, findErr = s.repo.FindAll(ctx, limit, offset)
	}()
	wg.Wait()

	if countErr != nil {
		return nil, 0, apperrors.Internal("Failed to count events", countErr)
	}
	if findErr != nil {
		return nil, 0, apperrors.Internal("Failed to retrieve events", findErr)
	}

	return events, count, nil
}

func (s *eventService) GetByDate(ctx context.Context, date string) ([]*model.Event, error) {
	date = sanitizer.SanitizeDate(date)
	if _, err := validation.ParseDate(date); err != nil {
		return nil, apperrors.InvalidInput("date must be in YYYY-MM-DD format")
	}

	events, err := s.repo.FindByDate(ctx, date)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve events", err)
	}
	return events, nil
}

// Calendar builds the month grid. A zero year or month is taken from the
// current date in server local time.
func (s *eventService) Calendar(ctx context.Context, year, month int) (*calendar.Grid, error) {
	today := s.now()

	m := calendar.Of(today)
	if year != 0 {
		m.Year = year
	}
	if month != 0 {
		m.Month = time.Month(month)
	}
	if !m.Valid() {
		return nil, apperrors.InvalidInput("year and month must describe a valid calendar month")
	}

	from, to := m.Range()
	events, err := s.repo.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve events", err)
	}

	return calendar.Build(m, today, events), nil
}
