package validator

import (
	"campusconnect/pkg/logger"
	"campusconnect/pkg/model"
	"campusconnect/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type EventValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewEventValidator(log *logger.Logger) *EventValidator {
	v, err := validation.New()
	if err != nil {
		log.Fatal("Failed to initialize event validator", "error", err)
	}

	return &EventValidator{
		validate: v,
		logger:   log,
	}
}

func (v *EventValidator) Validate(event *model.Event) error {
	return validation.Struct(v.validate, event)
}
