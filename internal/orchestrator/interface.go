package orchestrator

import (
	"context"

	"homework-planner/internal/model"
	"homework-planner/internal/planner"
)

// UseCase runs the extract, detect, plan and sync pipeline and exposes its latest output.
type UseCase interface {
	// FetchAssignments returns the latest assignments, extracting again when refresh is set
	// or nothing was fetched yet.
	FetchAssignments(ctx context.Context, refresh bool) ([]model.Assignment, error)

	// GeneratePlan plans the given assignments, or the latest fetched ones when assignments is nil,
	// and publishes the plan on success.
	GeneratePlan(ctx context.Context, assignments []model.Assignment, constraints planner.Constraints) (model.DailyPlan, error)

	// RunCycle runs one full cycle. Failures are reported in the outcome, never as a panic or error.
	RunCycle(ctx context.Context, trigger Trigger) CycleOutcome

	// Status returns the latest published state.
	Status(ctx context.Context) Status

	// UpdateAssignmentStatus changes one assignment's status and republishes the assignment list.
	UpdateAssignmentStatus(ctx context.Context, id string, status model.AssignmentStatus) (model.Assignment, error)

	// Start runs the startup cycle if enabled, then one cycle per interval until ctx is done.
	Start(ctx context.Context)
}
