package apperrors

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrNoSession       = errors.New("not logged in")
	ErrUnauthorized    = errors.New("session expired or unauthorized")
	ErrNoEntry         = errors.New("no entry for this day")
	ErrIndexOutOfRange = errors.New("item index out of range")
	ErrFutureDay       = errors.New("cannot complete items on a future day")
	ErrTooEarly        = errors.New("scheduled time has not arrived yet")
	ErrNoScheduledTime = errors.New("item has no scheduled time")
)
