package usecase

import (
	"errors"

	"go-interview-booking/internal/domain"
	"go-interview-booking/pkg/apperror"
	"go-interview-booking/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// storeErr maps a store error to an AppError. notFound is the message used
// when the record does not exist; AppErrors pass through unchanged.
func storeErr(err error, notFound string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNotFound) && notFound != "" {
		return apperror.NotFound(notFound)
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.Internal(err)
}

// entity is anything that can list its own rule violations
type entity interface {
	Violations(v *validator.Validate) []validation.Violation
}

// validateEntity reports every violation of e at once
func validateEntity(v *validator.Validate, e entity) error {
	if violations := e.Violations(v); len(violations) > 0 {
		return apperror.Validation(validation.Summary(violations), violations)
	}
	return nil
}
