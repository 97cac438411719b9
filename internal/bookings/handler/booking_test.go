package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"campusconnect/pkg/auth"
	apperrors "campusconnect/pkg/errors"
	"campusconnect/pkg/logger"
	"campusconnect/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockBookingService struct {
	createFunc       func(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	listMineFunc     func(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	availabilityFunc func(ctx context.Context, room, date, clock string) (*model.Availability, error)
	deleteFunc       func(ctx context.Context, id string) error
}

func (m *mockBookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &model.Booking{}, nil
}

func (m *mockBookingService) GetByID(context.Context, string) (*model.Booking, error) {
	return nil, apperrors.NotFound("Booking")
}

func (m *mockBookingService) ListMine(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	if m.listMineFunc != nil {
		return m.listMineFunc(ctx, limit, offset)
	}
	return []*model.Booking{}, 0, nil
}

func (m *mockBookingService) DaySchedule(context.Context, string, string) ([]*model.Booking, error) {
	return []*model.Booking{}, nil
}

func (m *mockBookingService) CheckAvailability(ctx context.Context, room, date, clock string) (*model.Availability, error) {
	if m.availabilityFunc != nil {
		return m.availabilityFunc(ctx, room, date, clock)
	}
	return &model.Availability{Available: true}, nil
}

func (m *mockBookingService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockBookingService) Rooms() []string { return []string{"Red Hall", "Blue Hall"} }

func newRouter(svc *mockBookingService) *httprouter.Router {
	router := httprouter.New()
	NewBookingHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func asUser(r *http.Request, id string) *http.Request {
	return r.WithContext(auth.WithUser(r.Context(), &auth.User{ID: id}))
}

func TestCreate_Handler(t *testing.T) {
	svc := &mockBookingService{
		createFunc: func(_ context.Context, req *model.BookingRequest) (*model.Booking, error) {
			if req.Room == "Red Hall" && req.Time == "10:30" {
				return nil, apperrors.Conflict("This room is already booked for this time slot (±1 hour). Please choose another time.")
			}
			return &model.Booking{ID: "b1", Room: req.Room, Date: req.Date, Time: req.Time, EventName: req.EventName}, nil
		},
	}
	router := newRouter(svc)

	tests := []struct {
		name       string
		body       string
		user       string
		wantStatus int
	}{
		{"created", `{"room":"Blue Hall","date":"2025-03-10","time":"10:00","event_name":"Chess"}`, "u1", http.StatusCreated},
		{"conflict", `{"room":"Red Hall","date":"2025-03-10","time":"10:30","event_name":"Chess"}`, "u1", http.StatusConflict},
		{"anonymous", `{"room":"Blue Hall","date":"2025-03-10","time":"10:00","event_name":"Chess"}`, "", http.StatusUnauthorized},
		{"malformed json", `{"room":`, "u1", http.StatusBadRequest},
		{"unknown field", `{"room":"Blue Hall","user_id":"someone-else"}`, "u1", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.user != "" {
				req = asUser(req, tt.user)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCreate_ConflictBody(t *testing.T) {
	svc := &mockBookingService{
		createFunc: func(context.Context, *model.BookingRequest) (*model.Booking, error) {
			return nil, apperrors.Conflict("This room is already booked for this time slot (±1 hour). Please choose another time.")
		},
	}
	req := asUser(httptest.NewRequest(http.MethodPost, "/api/v1/bookings",
		strings.NewReader(`{"room":"Red Hall","date":"2025-03-10","time":"10:30","event_name":"Chess"}`)), "u1")
	rec := httptest.NewRecorder()

	newRouter(svc).ServeHTTP(rec, req)

	var body struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, body.Code)
	}
	if !strings.Contains(body.Error, "±1 hour") {
		t.Errorf("unexpected message %q", body.Error)
	}
}

func TestListMine_QueryParameters(t *testing.T) {
	var gotLimit int
	var gotOffset int64
	svc := &mockBookingService{
		listMineFunc: func(_ context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
			gotLimit, gotOffset = limit, offset
			return []*model.Booking{}, 0, nil
		},
	}
	router := newRouter(svc)

	tests := []struct {
		query      string
		wantStatus int
		wantLimit  int
		wantOffset int64
	}{
		{"?limit=5&offset=10", http.StatusOK, 5, 10},
		{"?limit=abc", http.StatusBadRequest, 0, 0},
		{"?offset=xyz", http.StatusBadRequest, 0, 0},
		{"?limit=-3&offset=-1", http.StatusOK, 10, 0},
		{"?limit=5000", http.StatusOK, 100, 0},
	}

	for _, tt := range tests {
		gotLimit, gotOffset = 0, 0
		req := asUser(httptest.NewRequest(http.MethodGet, "/api/v1/bookings"+tt.query, nil), "u1")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != tt.wantStatus {
			t.Errorf("%s: expected %d, got %d", tt.query, tt.wantStatus, rec.Code)
			continue
		}
		if tt.wantStatus == http.StatusOK && (gotLimit != tt.wantLimit || gotOffset != tt.wantOffset) {
			t.Errorf("%s: service got limit=%d offset=%d", tt.query, gotLimit, gotOffset)
		}
	}
}

func TestAvailability_Handler(t *testing.T) {
	svc := &mockBookingService{
		availabilityFunc: func(_ context.Context, room, date, clock string) (*model.Availability, error) {
			return &model.Availability{Room: room, Date: date, Time: clock, Available: false, ConflictsWith: "10:00"}, nil
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/availability?room=Red+Hall&date=2025-03-10&time=10:30", nil)
	rec := httptest.NewRecorder()

	newRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"conflicts_with":"10:00"`) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestDelete_Handler(t *testing.T) {
	svc := &mockBookingService{
		deleteFunc: func(_ context.Context, id string) error {
			if id == "not-mine" {
				return apperrors.Forbidden("You can only cancel your own bookings")
			}
			return nil
		},
	}
	router := newRouter(svc)

	tests := []struct {
		id         string
		user       string
		wantStatus int
	}{
		{"b1", "u1", http.StatusNoContent},
		{"not-mine", "u1", http.StatusForbidden},
		{"b1", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/id/"+tt.id, nil)
		if tt.user != "" {
			req = asUser(req, tt.user)
		}
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != tt.wantStatus {
			t.Errorf("%s as %q: expected %d, got %d", tt.id, tt.user, tt.wantStatus, rec.Code)
		}
	}
}

func TestRooms_Handler(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&mockBookingService{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil))

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Red Hall") {
		t.Errorf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}
