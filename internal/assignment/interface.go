package assignment

import (
	"context"

	"homework-planner/internal/model"
)

// UseCase turns raw portal rows into canonical assignments and tracks them across cycles.
type UseCase interface {
	// Normalize converts raw rows. Rows that cannot be converted are reported in Skipped, not as an error.
	Normalize(ctx context.Context, rows []model.RawAssignmentRow) (NormalizeOutput, error)

	// DetectChanges compares incoming assignments against the stored fingerprints.
	DetectChanges(ctx context.Context, incoming []model.Assignment) (ChangeSet, error)

	// Apply stores the new and updated assignments of a change set.
	Apply(ctx context.Context, cs ChangeSet) error

	// List returns every stored assignment ordered by due date.
	List(ctx context.Context) ([]model.Assignment, error)

	// UpdateStatus sets the completion status of one assignment.
	UpdateStatus(ctx context.Context, id string, status model.AssignmentStatus) (model.Assignment, error)
}
