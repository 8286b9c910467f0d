package repository

import (
	"context"
	"errors"

	"homework-planner/internal/model"
)

// ErrNotFound is returned when no plan matches.
var ErrNotFound = errors.New("plan not found")

// Repository stores one plan per date; saving replaces the plan held for that date.
type Repository interface {
	Save(ctx context.Context, plan model.DailyPlan) error
	Get(ctx context.Context, date string) (model.DailyPlan, error)
	Latest(ctx context.Context) (model.DailyPlan, error)
}
