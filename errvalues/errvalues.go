package errvalues

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("invalid input")
	ErrConflict     = errors.New("already exists")
	ErrFormat       = errors.New("malformed credential hash")
	ErrInvalidToken = errors.New("invalid token")
)
