package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"campusconnect/internal/events/calendar"
	"campusconnect/pkg/auth"
	apperrors "campusconnect/pkg/errors"
	"campusconnect/pkg/logger"
	"campusconnect/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockEventService struct {
	calendarFunc func(ctx context.Context, year, month int) (*calendar.Grid, error)
	byDateFunc   func(ctx context.Context, date string) ([]*model.Event, error)
}

func (m *mockEventService) Create(_ context.Context, req *model.EventRequest) (*model.Event, error) {
	return &model.Event{ID: "e1", Title: req.Title}, nil
}

func (m *mockEventService) GetByID(context.Context, string) (*model.Event, error) {
	return nil, apperrors.NotFound("Event")
}

func (m *mockEventService) GetAll(context.Context, int, int64) ([]*model.Event, int64, error) {
	return []*model.Event{}, 0, nil
}

func (m *mockEventService) GetByDate(ctx context.Context, date string) ([]*model.Event, error) {
	if m.byDateFunc != nil {
		return m.byDateFunc(ctx, date)
	}
	return []*model.Event{}, nil
}

func (m *mockEventService) Calendar(ctx context.Context, year, month int) (*calendar.Grid, error) {
	if m.calendarFunc != nil {
		return m.calendarFunc(ctx, year, month)
	}
	return calendar.Build(calendar.Month{Year: 2025, Month: time.March}, time.Now(), nil), nil
}

func serve(svc *mockEventService, req *http.Request) *httptest.ResponseRecorder {
	router := httprouter.New()
	NewEventHandler(svc, logger.Discard()).RegisterRoutes(router)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCalendar_QueryParameters(t *testing.T) {
	var gotYear, gotMonth int
	svc := &mockEventService{
		calendarFunc: func(_ context.Context, year, month int) (*calendar.Grid, error) {
			gotYear, gotMonth = year, month
			return calendar.Build(calendar.Month{Year: 2025, Month: time.March}, time.Now(), nil), nil
		},
	}

	tests := []struct {
		query      string
		wantStatus int
		wantYear   int
		wantMonth  int
	}{
		{"", http.StatusOK, 0, 0},
		{"?year=2024&month=2", http.StatusOK, 2024, 2},
		{"?year=abc", http.StatusBadRequest, 0, 0},
		{"?month=x", http.StatusBadRequest, 0, 0},
	}
	for _, tt := range tests {
		gotYear, gotMonth = 0, 0
		rec := serve(svc, httptest.NewRequest(http.MethodGet, "/api/v1/events/calendar"+tt.query, nil))

		if rec.Code != tt.wantStatus {
			t.Errorf("%q: expected %d, got %d", tt.query, tt.wantStatus, rec.Code)
			continue
		}
		if gotYear != tt.wantYear || gotMonth != tt.wantMonth {
			t.Errorf("%q: service got %d-%d", tt.query, gotYear, gotMonth)
		}
	}
}

func TestGetByDate_PassesPathParameter(t *testing.T) {
	var got string
	svc := &mockEventService{
		byDateFunc: func(_ context.Context, date string) ([]*model.Event, error) {
			got = date
			return []*model.Event{{ID: "e1", Date: date}}, nil
		},
	}

	rec := serve(svc, httptest.NewRequest(http.MethodGet, "/api/v1/events/date/2025-03-10", nil))

	if rec.Code != http.StatusOK || got != "2025-03-10" {
		t.Errorf("status %d, date %q", rec.Code, got)
	}
}

func TestCreate_RequiresUser(t *testing.T) {
	body := `{"title":"Talk","description":"d","date":"2025-03-10","time":"10:00","location":"Red Hall"}`

	rec := serve(&mockEventService{}, httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(body)))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: expected 401, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(body))
	req = req.WithContext(auth.WithUser(req.Context(), &auth.User{ID: "u1"}))
	rec = serve(&mockEventService{}, req)
	if rec.Code != http.StatusCreated {
		t.Errorf("signed in: expected 201, got %d", rec.Code)
	}
}
