package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"not found", NotFound("Booking"), CodeNotFound, http.StatusNotFound},
		{"not found with id", NotFoundWithID("Booking", "abc"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("bad", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("bad"), CodeInvalidInput, http.StatusBadRequest},
		{"unauthorized", Unauthorized("login"), CodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", Forbidden("nope"), CodeForbidden, http.StatusForbidden},
		{"conflict", Conflict("taken"), CodeConflict, http.StatusConflict},
		{"internal", Internal("boom", errors.New("db")), CodeInternal, http.StatusInternalServerError},
		{"timeout", Timeout("slow"), CodeTimeout, http.StatusServiceUnavailable},
		{"too large", TooLarge("big"), CodeTooLarge, http.StatusRequestEntityTooLarge},
		{"media type", UnsupportedMediaType("xml"), CodeMediaType, http.StatusUnsupportedMediaType},
		{"rate limited", RateLimited("slow down"), CodeRateLimited, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.wantCode)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("StatusCode() = %d, want %d", tt.err.StatusCode(), tt.wantStatus)
			}
		})
	}
}

func TestNotFoundWithID_Details(t *testing.T) {
	err := NotFoundWithID("Booking", "65f0c0ffee")

	if err.Message != "Booking not found" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Details["id"] != "65f0c0ffee" || err.Details["resource"] != "Booking" {
		t.Errorf("unexpected details: %v", err.Details)
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			appErr:   Conflict("room taken"),
			expected: "CONFLICT: room taken",
		},
		{
			name:     "with underlying error",
			appErr:   Internal("store failed", errors.New("connection reset")),
			expected: "INTERNAL_ERROR: store failed (caused by: connection reset)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("original error")
	appErr := Internal("wrapped", cause)

	if !errors.Is(appErr, cause) {
		t.Errorf("errors.Is should find the wrapped cause")
	}
}

func TestStatusCode_DefaultsToInternal(t *testing.T) {
	err := &AppError{Code: "CUSTOM"}
	if err.StatusCode() != http.StatusInternalServerError {
		t.Errorf("StatusCode() = %d, want 500", err.StatusCode())
	}
}

func TestIsAppError_Wrapped(t *testing.T) {
	appErr := Conflict("taken")
	wrapped := fmt.Errorf("reserve: %w", appErr)

	if !IsAppError(appErr) {
		t.Errorf("IsAppError() should be true for AppError")
	}
	if !IsAppError(wrapped) {
		t.Errorf("IsAppError() should see through fmt.Errorf wrapping")
	}
	if IsAppError(errors.New("plain")) {
		t.Errorf("IsAppError() should be false for a plain error")
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", Forbidden("not yours"))

	if !HasCode(err, CodeForbidden) {
		t.Errorf("HasCode should match FORBIDDEN")
	}
	if HasCode(err, CodeNotFound) {
		t.Errorf("HasCode should not match NOT_FOUND")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("Event")
	if AsAppError(appErr) != appErr {
		t.Errorf("AsAppError() should return the same AppError")
	}

	plain := errors.New("regular error")
	result := AsAppError(plain)
	if result.Code != CodeInternal {
		t.Errorf("AsAppError() should wrap a plain error as internal, got %s", result.Code)
	}
	if result.Err != plain {
		t.Errorf("AsAppError() should keep the original error")
	}
}

func TestAppError_ToJSON(t *testing.T) {
	body := string(NotFoundWithID("Booking", "12345").WithDetails(map[string]any{"id": "12345"}).ToJSON())

	for _, want := range []string{`"code":"NOT_FOUND"`, `"message":"Booking not found"`, `"id":"12345"`} {
		if !strings.Contains(body, want) {
			t.Errorf("ToJSON() = %s, missing %s", body, want)
		}
	}
}
