package domain

import "errors"

var (
	// ErrInvalidArgument marks bad client input; rendered as 400
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound is returned by lookups by id or username
	ErrNotFound = errors.New("record not found")
)
