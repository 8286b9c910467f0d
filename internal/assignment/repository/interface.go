package repository

import (
	"context"
	"errors"

	"homework-planner/internal/model"
)

// ErrNotFound is returned when no assignment has the requested id.
var ErrNotFound = errors.New("assignment not found")

// Repository persists assignments. Identity for upserts is ExternalID.
type Repository interface {
	List(ctx context.Context) ([]model.Assignment, error)
	Get(ctx context.Context, id string) (model.Assignment, error)
	Upsert(ctx context.Context, items []model.Assignment) error
	UpdateStatus(ctx context.Context, id string, status model.AssignmentStatus) (model.Assignment, error)
}
