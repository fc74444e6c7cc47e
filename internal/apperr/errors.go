// Package apperr holds the error taxonomy shared by the services and the
// HTTP layer. Services wrap these sentinels with context; handlers map them
// to status codes with errors.Is.
package apperr

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrChirpTooLong       = errors.New("chirp is too long")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
