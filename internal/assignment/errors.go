package assignment

import "errors"

var (
	ErrInvalidDueDate = errors.New("invalid due date")
	ErrEmptyTitle     = errors.New("assignment title is empty")
	ErrEmptySubject   = errors.New("assignment subject is empty")
	ErrInvalidStatus  = errors.New("invalid assignment status")
	ErrNotFound       = errors.New("assignment not found")
)
