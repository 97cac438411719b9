package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "campusconnect/pkg/errors"
)

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"conflict", apperrors.Conflict("This room is already booked"), http.StatusConflict, "This room is already booked"},
		{"unauthorized", apperrors.Unauthorized("Authentication required"), http.StatusUnauthorized, "Authentication required"},
		{"forbidden", apperrors.Forbidden("not yours"), http.StatusForbidden, "not yours"},
		{"validation", apperrors.Validation("bad input", nil), http.StatusUnprocessableEntity, "bad input"},
		{"not found", apperrors.NotFound("Booking"), http.StatusNotFound, "Booking not found"},
		{"internal hides cause", apperrors.Internal("Failed to create booking. Please try again.", errors.New("socket closed")), http.StatusInternalServerError, "Failed to create booking. Please try again."},
		{"plain error", errors.New("secret detail"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if err := WriteError(rec, tt.err); err != nil {
				t.Fatalf("WriteError returned %v", err)
			}

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON body: %v", err)
			}
			if body.Error != tt.wantMsg {
				t.Errorf("error = %q, want %q", body.Error, tt.wantMsg)
			}
			if strings.Contains(rec.Body.String(), "socket closed") || strings.Contains(rec.Body.String(), "secret detail") {
				t.Errorf("internal cause leaked into response: %s", rec.Body.String())
			}
		})
	}
}

func TestExtractLimitOffset(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int64
		wantErr    bool
	}{
		{"defaults", "", 10, 0, false},
		{"explicit", "?limit=25&offset=50", 25, 50, false},
		{"limit clamped", "?limit=5000", 100, 0, false},
		{"negative offset", "?offset=-3", 10, 0, false},
		{"bad limit", "?limit=abc", 0, 0, true},
		{"bad offset", "?offset=xyz", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/events"+tt.query, nil)
			limit, offset, err := ExtractLimitOffset(r)

			if tt.wantErr {
				if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
					t.Fatalf("expected INVALID_INPUT, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Errorf("got (%d, %d), want (%d, %d)", limit, offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestDecodeJSONBody(t *testing.T) {
	type payload struct {
		Room string `json:"room"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"room":"Red Hall"}`, false},
		{"empty", ``, true},
		{"unknown field", `{"room":"Red Hall","admin":true}`, true},
		{"trailing object", `{"room":"a"}{"room":"b"}`, true},
		{"malformed", `{"room":`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := DecodeJSONBody(r, &p)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
