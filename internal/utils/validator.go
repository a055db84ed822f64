package utils

import (
	"Ginraidee/domain"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func InitValidator() {
	Validate = NewValidator()
}

// NewValidator returns a validator that knows the inventory tags.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("food_category", func(fl validator.FieldLevel) bool {
		_, ok := domain.LookupCategory(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("food_unit", func(fl validator.FieldLevel) bool {
		_, ok := domain.LookupUnit(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("iso_date", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(domain.DateLayout, fl.Field().String())
		return err == nil
	})
	return v
}

// ValidationError turns a validator failure into the domain error shown to
// users. Only the first failing field is reported.
func ValidationError(err error) *domain.ValidationError {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		reason := fe.Tag()
		if fe.Param() != "" {
			reason = fmt.Sprintf("%s=%s", fe.Tag(), fe.Param())
		}
		return domain.NewValidationError(fe.Field(), reason)
	}
	return domain.NewValidationError("", err.Error())
}
