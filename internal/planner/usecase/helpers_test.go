package usecase

import (
	"context"

	"homework-planner/internal/model"
	"homework-planner/internal/planner/repository"
)

// countingRepo counts saves on top of a real repository.
type countingRepo struct {
	repository.Repository
	saves int
}

func (p *countingRepo) Save(ctx context.Context, plan model.DailyPlan) error {
	p.saves++
	return p.Repository.Save(ctx, plan)
}
