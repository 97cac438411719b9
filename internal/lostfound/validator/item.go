package validator

import (
	"campusconnect/pkg/logger"
	"campusconnect/pkg/model"
	"campusconnect/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type ItemValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewItemValidator(log *logger.Logger) *ItemValidator {
	v, err := validation.New()
	if err != nil {
		log.Fatal("Failed to initialize lost and found validator", "error", err)
	}

	return &ItemValidator{
		validate: v,
		logger:   log,
	}
}

func (v *ItemValidator) Validate(item *model.LostFoundItem) error {
	return validation.Struct(v.validate, item)
}
