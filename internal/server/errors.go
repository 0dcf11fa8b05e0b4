package server

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/skill-gap-advisor/internal/advisor"
	"github.com/jonathan/skill-gap-advisor/internal/ingestion"
	"github.com/jonathan/skill-gap-advisor/internal/templates"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// newValidator returns a validator that reports fields by their JSON names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationError converts validator output into an ErrValidation for the first failing field
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	fe := verrs[0]
	msg := fe.Tag()
	if fe.Param() != "" {
		msg = fmt.Sprintf("%s=%s", fe.Tag(), fe.Param())
	}
	return &ErrValidation{Field: fe.Field(), Message: "failed " + msg}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr  *ErrValidation
		unsupported    *ingestion.UnsupportedFormatError
		tooLarge       *ingestion.FileTooLargeError
		notFound       *templates.NotFoundError
		maxBytesErr    *http.MaxBytesError
		validatorError validator.ValidationErrors
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &validatorError):
		return http.StatusBadRequest
	case errors.Is(err, advisor.ErrNoTargetSkills):
		return http.StatusBadRequest
	case errors.As(err, &unsupported):
		return http.StatusBadRequest
	case errors.As(err, &tooLarge), errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.Is(err, templates.ErrNoRequiredSkills):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
