package service

import (
	"fmt"
	"strings"

	apperrors "github.com/aleksacoach93b/wellness-monitor-sub000/internal/pkg/errors"
)

// FieldError описывает одно нарушение валидации входных данных
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError агрегирует нарушения валидации по полям.
// Разворачивается в apperrors.ErrValidation, чтобы обработчики могли
// отмапить его на HTTP 400 через errors.Is.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return apperrors.ErrValidation
}

// newValidationError строит ValidationError из пар (field, message)
func newValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}
