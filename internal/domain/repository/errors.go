package repository

import "errors"

var (
	// ErrNotFound is returned when no entity matches the given key.
	ErrNotFound = errors.New("not found")
	// ErrInvalidID is returned when an identifier cannot be parsed as a store key.
	ErrInvalidID = errors.New("invalid id")
	// ErrDuplicateEmail is returned when the lowercase email is already taken.
	ErrDuplicateEmail = errors.New("duplicate email")
)
