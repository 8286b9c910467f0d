package memory

import (
	"context"
	"sync"

	"homework-planner/internal/model"
	"homework-planner/internal/planner/repository"
)

type implRepository struct {
	mu     sync.RWMutex
	plans  map[string]model.DailyPlan
	latest string
}

// New creates an in-memory plan repository.
func New() repository.Repository {
	return &implRepository{plans: make(map[string]model.DailyPlan)}
}

func (r *implRepository) Save(ctx context.Context, plan model.DailyPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	blocks := make([]model.ScheduleBlock, len(plan.Blocks))
	copy(blocks, plan.Blocks)
	plan.Blocks = blocks

	r.plans[plan.Date] = plan
	r.latest = plan.Date
	return nil
}

func (r *implRepository) Get(ctx context.Context, date string) (model.DailyPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.plans[date]
	if !ok {
		return model.DailyPlan{}, repository.ErrNotFound
	}
	return p, nil
}

func (r *implRepository) Latest(ctx context.Context) (model.DailyPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.latest == "" {
		return model.DailyPlan{}, repository.ErrNotFound
	}
	return r.plans[r.latest], nil
}
