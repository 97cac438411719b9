// Package validation wraps go-playground/validator with the field tags shared
// by every campus service and a translation into client-facing messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"campusconnect/pkg/slot"

	"github.com/go-playground/validator/v10"
)

const (
	DateLayout = "2006-01-02"

	TagCalendarDate = "calendar_date"
	TagTimeOfDay    = "time_of_day"
	TagCampusRoom   = "campus_room"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return ""
	}
	messages := make([]string, 0, len(e))
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(e), strings.Join(messages, "; "))
}

// Details renders the errors as field -> message for AppError details.
func (e Errors) Details() map[string]any {
	details := make(map[string]any, len(e))
	for _, err := range e {
		details[err.Field] = err.Message
	}
	return details
}

// New returns a validator that reports JSON field names and knows the
// calendar_date and time_of_day tags.
func New() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	if err := v.RegisterValidation(TagCalendarDate, validateCalendarDate); err != nil {
		return nil, fmt.Errorf("register %s: %w", TagCalendarDate, err)
	}
	if err := v.RegisterValidation(TagTimeOfDay, validateTimeOfDay); err != nil {
		return nil, fmt.Errorf("register %s: %w", TagTimeOfDay, err)
	}

	return v, nil
}

func validateCalendarDate(fl validator.FieldLevel) bool {
	_, err := ParseDate(fl.Field().String())
	return err == nil
}

func validateTimeOfDay(fl validator.FieldLevel) bool {
	_, err := slot.ParseTimeOfDay(fl.Field().String())
	return err == nil
}

// ParseDate accepts a strict YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	if len(s) != len(DateLayout) {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// Struct validates s and converts validator failures into Errors.
func Struct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return Translate(verrs)
	}
	return err
}

func Translate(errs validator.ValidationErrors) Errors {
	out := make(Errors, 0, len(errs))

	for _, err := range errs {
		field := err.Field()
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", field, err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", field, err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", field)
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", field, err.Param())
		case TagCalendarDate:
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
		case TagTimeOfDay:
			message = fmt.Sprintf("%s must be a time in HH:MM format", field)
		case TagCampusRoom:
			message = fmt.Sprintf("%s must be one of the bookable campus rooms", field)
		}

		out = append(out, FieldError{Field: field, Message: message})
	}

	return out
}
