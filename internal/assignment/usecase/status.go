package usecase

import (
	"context"
	"errors"
	"fmt"

	"homework-planner/internal/assignment"
	"homework-planner/internal/assignment/repository"
	"homework-planner/internal/model"
)

func (uc *implUseCase) List(ctx context.Context) ([]model.Assignment, error) {
	items, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return items, nil
}

func (uc *implUseCase) UpdateStatus(ctx context.Context, id string, status model.AssignmentStatus) (model.Assignment, error) {
	if !status.IsValid() {
		return model.Assignment{}, fmt.Errorf("%w: %q", assignment.ErrInvalidStatus, status)
	}

	a, err := uc.repo.UpdateStatus(ctx, id, status)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Assignment{}, fmt.Errorf("%w: %s", assignment.ErrNotFound, id)
	}
	if err != nil {
		return model.Assignment{}, err
	}

	uc.l.Infof(ctx, "UpdateStatus: %s -> %s", id, status)
	return a, nil
}
