package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"campusconnect/internal/activity"
	"campusconnect/internal/events/validator"
	"campusconnect/pkg/auth"
	"campusconnect/pkg/config"
	apperrors "campusconnect/pkg/errors"
	"campusconnect/pkg/logger"
	"campusconnect/pkg/model"
)

type mockEventRepository struct {
	createFunc    func(ctx context.Context, event *model.Event) error
	findAllFunc   func(ctx context.Context, limit int, offset int64) ([]*model.Event, error)
	countFunc     func(ctx context.Context) (int64, error)
	findByDate    func(ctx context.Context, date string) ([]*model.Event, error)
	findRangeFunc func(ctx context.Context, from, to string) ([]*model.Event, error)
}

func (m *mockEventRepository) Create(ctx context.Context, event *model.Event) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, event)
	}
	event.ID = "65f000000000000000000002"
	return nil
}

func (m *mockEventRepository) FindByID(context.Context, string) (*model.Event, error) {
	return nil, errors.New("not used")
}

func (m *mockEventRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Event, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Event{}, nil
}

func (m *mockEventRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockEventRepository) FindByDate(ctx context.Context, date string) ([]*model.Event, error) {
	if m.findByDate != nil {
		return m.findByDate(ctx, date)
	}
	return []*model.Event{}, nil
}

func (m *mockEventRepository) FindByDateRange(ctx context.Context, from, to string) ([]*model.Event, error) {
	if m.findRangeFunc != nil {
		return m.findRangeFunc(ctx, from, to)
	}
	return []*model.Event{}, nil
}

type recordingPublisher struct {
	published []activity.Activity
}

func (p *recordingPublisher) Publish(_ context.Context, a activity.Activity) error {
	p.published = append(p.published, a)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func newTestService(repo *mockEventRepository, pub *recordingPublisher, now time.Time) *eventService {
	log := logger.Discard()
	return &eventService{
		repo:      repo,
		validator: validator.NewEventValidator(log),
		publisher: pub,
		cfg:       &config.Config{Log: log, WriteTimeout: time.Second, ReadTimeout: time.Second},
		now:       func() time.Time { return now },
	}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	return appErr.StatusCode()
}

func TestCreate(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newTestService(&mockEventRepository{}, pub, time.Now())
	ctx := auth.WithUser(context.Background(), &auth.User{ID: "u1"})

	event, err := svc.Create(ctx, &model.EventRequest{
		Title:       "  Spring   Hackathon ",
		Description: "Line one  \r\n  line two",
		Date:        "2025-04-12",
		Time:        "9:00",
		Location:    "Red Hall",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if event.Title != "Spring Hackathon" {
		t.Errorf("title = %q", event.Title)
	}
	if event.Description != "Line one\nline two" {
		t.Errorf("description = %q", event.Description)
	}
	if event.Time != "09:00" || event.CreatedBy != "u1" {
		t.Errorf("unexpected event %+v", event)
	}
	if len(pub.published) != 1 || pub.published[0].Type != activity.EventCreated {
		t.Errorf("expected event.created activity, got %+v", pub.published)
	}
}

func TestCreate_Validation(t *testing.T) {
	repoCalled := false
	repo := &mockEventRepository{
		createFunc: func(context.Context, *model.Event) error {
			repoCalled = true
			return nil
		},
	}
	svc := newTestService(repo, &recordingPublisher{}, time.Now())
	ctx := auth.WithUser(context.Background(), &auth.User{ID: "u1"})

	_, err := svc.Create(ctx, &model.EventRequest{Title: "X", Date: "2025-04-31", Time: "10:00"})
	if statusOf(t, err) != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
	details := apperrors.AsAppError(err).Details
	for _, field := range []string{"title", "description", "date", "location"} {
		if _, ok := details[field]; !ok {
			t.Errorf("expected detail for %s, got %v", field, details)
		}
	}
	if repoCalled {
		t.Error("invalid event must not be stored")
	}
}

func TestCreate_RequiresUser(t *testing.T) {
	svc := newTestService(&mockEventRepository{}, &recordingPublisher{}, time.Now())

	_, err := svc.Create(context.Background(), &model.EventRequest{})
	if statusOf(t, err) != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestCreate_StoreFailure(t *testing.T) {
	pub := &recordingPublisher{}
	repo := &mockEventRepository{
		createFunc: func(context.Context, *model.Event) error { return errors.New("timeout") },
	}
	svc := newTestService(repo, pub, time.Now())
	ctx := auth.WithUser(context.Background(), &auth.User{ID: "u1"})

	_, err := svc.Create(ctx, &model.EventRequest{
		Title: "Talk", Description: "d", Date: "2025-04-12", Time: "10:00", Location: "Blue Hall",
	})
	if statusOf(t, err) != http.StatusInternalServerError {
		t.Errorf("expected 500, got %v", err)
	}
	if len(pub.published) != 0 {
		t.Error("failed create must not publish")
	}
}

func TestGetAll_NormalizesPagination(t *testing.T) {
	var gotLimit int
	var gotOffset int64
	repo := &mockEventRepository{
		findAllFunc: func(_ context.Context, limit int, offset int64) ([]*model.Event, error) {
			gotLimit, gotOffset = limit, offset
			return []*model.Event{}, nil
		},
		countFunc: func(context.Context) (int64, error) { return 42, nil },
	}
	svc := newTestService(repo, &recordingPublisher{}, time.Now())

	_, total, err := svc.GetAll(context.Background(), 0, -5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 42 || gotLimit != 10 || gotOffset != 0 {
		t.Errorf("total=%d limit=%d offset=%d", total, gotLimit, gotOffset)
	}
}

func TestGetByDate_RejectsBadDate(t *testing.T) {
	svc := newTestService(&mockEventRepository{}, &recordingPublisher{}, time.Now())

	if _, err := svc.GetByDate(context.Background(), "12-04-2025"); statusOf(t, err) != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestCalendar(t *testing.T) {
	now := time.Date(2025, time.January, 15, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name             string
		year, month      int
		wantFrom, wantTo string
		wantStatus       int
	}{
		{name: "defaults to current month", wantFrom: "2025-01-01", wantTo: "2025-01-31"},
		{name: "explicit leap february", year: 2024, month: 2, wantFrom: "2024-02-01", wantTo: "2024-02-29"},
		{name: "month only", month: 6, wantFrom: "2025-06-01", wantTo: "2025-06-30"},
		{name: "month out of range", year: 2025, month: 13, wantStatus: http.StatusBadRequest},
		{name: "negative month", year: 2025, month: -1, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var from, to string
			repo := &mockEventRepository{
				findRangeFunc: func(_ context.Context, f, l string) ([]*model.Event, error) {
					from, to = f, l
					return []*model.Event{{ID: "e", Date: f}}, nil
				},
			}
			svc := newTestService(repo, &recordingPublisher{}, now)

			grid, err := svc.Calendar(context.Background(), tt.year, tt.month)
			if tt.wantStatus != 0 {
				if statusOf(t, err) != tt.wantStatus {
					t.Errorf("expected %d, got %v", tt.wantStatus, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if from != tt.wantFrom || to != tt.wantTo {
				t.Errorf("range = %s..%s, want %s..%s", from, to, tt.wantFrom, tt.wantTo)
			}
			if !grid.Days[0].HasEvents {
				t.Error("expected the 1st to carry the stored event")
			}
		})
	}
}

func TestCalendar_PreviousOfJanuary(t *testing.T) {
	svc := newTestService(&mockEventRepository{}, &recordingPublisher{}, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local))

	grid, err := svc.Calendar(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grid.Previous.Year != 2024 || grid.Previous.Month != time.December {
		t.Errorf("previous = %+v", grid.Previous)
	}
	if !grid.Days[0].IsToday {
		t.Error("expected January 1st to be today")
	}
}
