package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-gap-advisor/internal/advisor"
	"github.com/jonathan/skill-gap-advisor/internal/ingestion"
	"github.com/jonathan/skill-gap-advisor/internal/templates"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "level", Message: "failed oneof"}
	assert.Equal(t, "validation error: level - failed oneof", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "ErrValidation",
			err:      &ErrValidation{Field: "weekly_hours", Message: "failed lte=168"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "no target skills",
			err:      fmt.Errorf("analyze: %w", advisor.ErrNoTargetSkills),
			expected: http.StatusBadRequest,
		},
		{
			name:     "unsupported format",
			err:      &ingestion.UnsupportedFormatError{Extension: ".exe"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "file too large",
			err:      &ingestion.FileTooLargeError{Size: 11, Limit: 10},
			expected: http.StatusRequestEntityTooLarge,
		},
		{
			name:     "body too large",
			err:      &http.MaxBytesError{Limit: 10},
			expected: http.StatusRequestEntityTooLarge,
		},
		{
			name:     "template not found",
			err:      &templates.NotFoundError{Key: "astronaut"},
			expected: http.StatusNotFound,
		},
		{
			name:     "template without skills",
			err:      fmt.Errorf("empty: %w", templates.ErrNoRequiredSkills),
			expected: http.StatusUnprocessableEntity,
		},
		{
			name:     "Unknown error",
			err:      assert.AnError,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestValidationError_UsesJSONFieldNames(t *testing.T) {
	v := newValidator()

	err := v.Struct(&PlanRequest{WeeklyHours: 500})
	require.Error(t, err)

	verr := validationError(err)
	var target *ErrValidation
	require.ErrorAs(t, verr, &target)
	assert.Equal(t, "weekly_hours", target.Field)
	assert.Equal(t, "failed lte=168", target.Message)
}

func TestValidationError_NonValidatorError(t *testing.T) {
	verr := validationError(assert.AnError)
	var target *ErrValidation
	require.ErrorAs(t, verr, &target)
	assert.Equal(t, "body", target.Field)
}
