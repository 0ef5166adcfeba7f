package repository

import "errors"

var (
	// ErrNotFound is returned when no record has the requested id
	ErrNotFound = errors.New("not found")

	// ErrDuplicateID is returned when a snapshot holds the same id twice
	ErrDuplicateID = errors.New("duplicate record id")

	// ErrInvalidRecord is returned when a snapshot holds a record of the wrong shape
	ErrInvalidRecord = errors.New("invalid record")
)
