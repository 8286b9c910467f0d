package usecase

import (
	"context"
	"fmt"

	"homework-planner/internal/assignment"
	"homework-planner/internal/model"
)

// DetectChanges classifies incoming assignments by comparing fingerprints with the stored
// record of the same external ID. Known assignments keep their stored ID and status.
func (uc *implUseCase) DetectChanges(ctx context.Context, incoming []model.Assignment) (assignment.ChangeSet, error) {
	stored, err := uc.repo.List(ctx)
	if err != nil {
		return assignment.ChangeSet{}, fmt.Errorf("load stored assignments: %w", err)
	}

	byExternal := make(map[string]model.Assignment, len(stored))
	for _, a := range stored {
		byExternal[a.ExternalID] = a
	}

	cs := assignment.ChangeSet{Current: make([]model.Assignment, 0, len(incoming))}
	seen := make(map[string]struct{}, len(incoming))

	for _, a := range incoming {
		seen[a.ExternalID] = struct{}{}

		prev, ok := byExternal[a.ExternalID]
		if !ok {
			cs.New = append(cs.New, a)
			cs.Current = append(cs.Current, a)
			continue
		}

		a.ID = prev.ID
		a.Status = prev.Status
		if a.Description == "" {
			a.Description = prev.Description
		}

		if a.ContentFingerprint != prev.ContentFingerprint {
			cs.Updated = append(cs.Updated, a)
		} else {
			cs.Unchanged = append(cs.Unchanged, a)
		}
		cs.Current = append(cs.Current, a)
	}

	for _, a := range stored {
		if _, ok := seen[a.ExternalID]; !ok {
			cs.Removed = append(cs.Removed, a)
		}
	}

	uc.l.Infof(ctx, "DetectChanges: new=%d updated=%d unchanged=%d removed=%d",
		len(cs.New), len(cs.Updated), len(cs.Unchanged), len(cs.Removed))
	return cs, nil
}

// Apply persists the new and updated assignments.
func (uc *implUseCase) Apply(ctx context.Context, cs assignment.ChangeSet) error {
	changed := make([]model.Assignment, 0, len(cs.New)+len(cs.Updated))
	changed = append(changed, cs.New...)
	changed = append(changed, cs.Updated...)
	if len(changed) == 0 {
		return nil
	}
	if err := uc.repo.Upsert(ctx, changed); err != nil {
		return fmt.Errorf("store changed assignments: %w", err)
	}
	return nil
}
