package memory

import (
	"context"
	"sort"
	"sync"

	"homework-planner/internal/model"
	"homework-planner/internal/sync/repository"
)

type implRepository struct {
	mu      sync.RWMutex
	records map[string]model.SyncRecord
}

// New creates an in-memory sync record repository.
func New() repository.Repository {
	return &implRepository{records: make(map[string]model.SyncRecord)}
}

func (r *implRepository) Save(ctx context.Context, rec model.SyncRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[rec.AssignmentID] = rec
	return nil
}

func (r *implRepository) Get(ctx context.Context, assignmentID string) (model.SyncRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[assignmentID]
	if !ok {
		return model.SyncRecord{}, repository.ErrNotFound
	}
	return rec, nil
}

func (r *implRepository) List(ctx context.Context) ([]model.SyncRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.SyncRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AssignmentID < out[j].AssignmentID })
	return out, nil
}
