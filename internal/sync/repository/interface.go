package repository

import (
	"context"
	"errors"

	"homework-planner/internal/model"
)

var ErrNotFound = errors.New("sync record not found")

// Repository stores the assignment to tracker mapping.
type Repository interface {
	Save(ctx context.Context, rec model.SyncRecord) error
	Get(ctx context.Context, assignmentID string) (model.SyncRecord, error)
	List(ctx context.Context) ([]model.SyncRecord, error)
}
