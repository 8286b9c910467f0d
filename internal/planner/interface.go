package planner

import (
	"context"

	"homework-planner/internal/model"
)

// UseCase turns pending assignments into a daily plan.
type UseCase interface {
	// GeneratePlan builds and stores a plan. Nothing is stored when it fails.
	GeneratePlan(ctx context.Context, assignments []model.Assignment, constraints Constraints) (model.DailyPlan, error)

	// CurrentPlan returns the stored plan for date, or the latest plan when date is empty.
	CurrentPlan(ctx context.Context, date string) (model.DailyPlan, error)
}
