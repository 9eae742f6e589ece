package v1

import (
	"errors"
	"time"

	"go-interview-booking/pkg/apperror"
)

// Messages for request bodies that cannot be decoded
const (
	msgInvalidBody = "Invalid request body"
	msgInvalidDate = "Invalid date, use ISO-8601 such as 2026-05-12T09:00:00Z"
)

// bindError replaces decoder output with a fixed message. The decoder error
// stays on the AppError for the log.
func bindError(err error) *apperror.AppError {
	msg := msgInvalidBody
	var parseErr *time.ParseError
	if errors.As(err, &parseErr) {
		msg = msgInvalidDate
	}
	appErr := apperror.BadRequest(msg)
	appErr.Err = err
	return appErr
}
