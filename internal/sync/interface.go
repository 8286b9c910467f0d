package sync

import (
	"context"

	"homework-planner/internal/model"
)

// UseCase projects plan blocks into the external tracker.
type UseCase interface {
	// Sync upserts every focus block of plan. Per-block failures are reported in the Report;
	// a missing tracker makes Sync a no-op.
	Sync(ctx context.Context, plan model.DailyPlan) (Report, error)
}

// Tracker is an external task store addressed by a stable sync key.
type Tracker interface {
	Name() string
	// FindByKey returns the task carrying key, or false when none exists.
	FindByKey(ctx context.Context, key string) (TrackerTask, bool, error)
	Create(ctx context.Context, task TrackerTask) (TrackerTask, error)
	// Update rewrites the task identified by task.ID.
	Update(ctx context.Context, task TrackerTask) (TrackerTask, error)
}

// DayIndexer is implemented by trackers that can load every keyed task of a plan date in one call.
// Sync uses it to warm lookups and to report tasks left behind by a replaced plan.
type DayIndexer interface {
	IndexDay(ctx context.Context, date string) ([]TrackerTask, error)
}
