package memory

import (
	"context"
	"sort"
	"sync"

	"homework-planner/internal/assignment/repository"
	"homework-planner/internal/model"
)

type implRepository struct {
	mu         sync.RWMutex
	byID       map[string]model.Assignment
	idByExtern map[string]string
}

// New creates an in-memory assignment repository.
func New() repository.Repository {
	return &implRepository{
		byID:       make(map[string]model.Assignment),
		idByExtern: make(map[string]string),
	}
}

func (r *implRepository) List(ctx context.Context) ([]model.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Assignment, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].ExternalID < out[j].ExternalID
	})
	return out, nil
}

func (r *implRepository) Get(ctx context.Context, id string) (model.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return model.Assignment{}, repository.ErrNotFound
	}
	return a, nil
}

func (r *implRepository) Upsert(ctx context.Context, items []model.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range items {
		if existing, ok := r.idByExtern[a.ExternalID]; ok && existing != a.ID {
			delete(r.byID, existing)
		}
		r.byID[a.ID] = a
		r.idByExtern[a.ExternalID] = a.ID
	}
	return nil
}

func (r *implRepository) UpdateStatus(ctx context.Context, id string, status model.AssignmentStatus) (model.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return model.Assignment{}, repository.ErrNotFound
	}
	a.Status = status
	r.byID[id] = a
	return a, nil
}
