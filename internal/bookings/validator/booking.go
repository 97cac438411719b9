package validator

import (
	"slices"

	"campusconnect/pkg/logger"
	"campusconnect/pkg/model"
	"campusconnect/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

// NewBookingValidator builds a validator whose campus_room tag accepts only
// the given canonical room names.
func NewBookingValidator(log *logger.Logger, rooms []string) *BookingValidator {
	v, err := validation.New()
	if err != nil {
		log.Fatal("Failed to initialize booking validator", "error", err)
	}

	allowed := slices.Clone(rooms)
	err = v.RegisterValidation(validation.TagCampusRoom, func(fl validator.FieldLevel) bool {
		return slices.Contains(allowed, fl.Field().String())
	})
	if err != nil {
		log.Fatal("Failed to register 'campus_room' validator", "error", err)
	}

	log.Debug("Booking validator initialized", "rooms", len(allowed))

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

func (v *BookingValidator) Validate(booking *model.Booking) error {
	return validation.Struct(v.validate, booking)
}
