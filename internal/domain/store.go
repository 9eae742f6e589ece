package domain

import (
	"context"
	"errors"

	"go-interview-booking/pkg/apperror"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// DuplicateField is the validation error stores return when a unique field is already taken
func DuplicateField(field string) error {
	return apperror.Validation("Duplicate field value entered", []map[string]string{
		{"field": field, "rule": "unique", "message": "Duplicate field value entered"},
	})
}

// Store is the entity store handle passed to every usecase. Repositories
// obtained from the Store passed to a WithTx callback share its transaction.
type Store interface {
	Companies() CompanyRepository
	Positions() PositionRepository
	Interviews() InterviewRepository
	Users() UserRepository
	// WithTx runs fn in a single transaction, committing when fn returns nil
	WithTx(ctx context.Context, fn func(tx Store) error) error
}
