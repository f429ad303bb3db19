package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateID is returned when inserting an entity whose ID already exists.
	ErrDuplicateID = errors.New("entity id already exists")
)
