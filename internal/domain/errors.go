package domain

import "errors"

var (
	// ErrNotFound is returned when a document, character or scene does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotActive is returned by mutating operations when no project is open.
	ErrNotActive = errors.New("no active project")

	// ErrNoPath is returned when saving a project that has never been given a path.
	ErrNoPath = errors.New("no save path")

	// ErrInvalidFormat is returned when a stored document does not have the
	// expected top-level shape.
	ErrInvalidFormat = errors.New("invalid project format")

	// ErrValidation is returned when a record fails field validation.
	ErrValidation = errors.New("validation failed")
)
