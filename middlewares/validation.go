package middlewares

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"synthflow/apperrors"
)

// RequestValidator plugs go-playground/validator into echo's Validator hook.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

func (v *RequestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return apperrors.New(http.StatusBadRequest, "Invalid request payload: %v", err)
	}
	return nil
}
