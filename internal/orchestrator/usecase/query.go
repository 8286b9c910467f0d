package usecase

import (
	"context"
	"fmt"
	"slices"

	"homework-planner/internal/model"
	"homework-planner/internal/orchestrator"
	"homework-planner/internal/planner"
)

func (uc *implUseCase) FetchAssignments(ctx context.Context, refresh bool) (list []model.Assignment, err error) {
	snap := uc.deps.Store.Load()
	if !refresh && snap.HasAssignments() {
		return snap.Assignments, nil
	}

	if !uc.tryAcquire() {
		if snap.HasAssignments() {
			uc.l.Infof(ctx, "FetchAssignments: cycle running, serving snapshot from %s", snap.FetchedAt)
			return snap.Assignments, nil
		}
		return nil, orchestrator.ErrCycleRunning
	}
	defer uc.release()

	defer func() {
		if r := recover(); r != nil {
			uc.machine.abort()
			uc.stage.Store(uc.machine.current())
			err = fmt.Errorf("panic during fetch: %v", r)
			uc.l.Errorf(ctx, "FetchAssignments: %v", err)
		}
	}()

	if err := uc.advance(eventStart); err != nil {
		return nil, err
	}
	cs, _, err := uc.extractAndDetect(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "FetchAssignments: stage=%s: %v", uc.machine.current(), err)
		uc.machine.abort()
		uc.stage.Store(uc.machine.current())
		return nil, err
	}
	if cs.HasChanges() {
		uc.pending = true
	}
	if err := uc.advance(eventFinish); err != nil {
		return nil, err
	}
	return uc.deps.Store.SetAssignments(cs.Current, uc.opt.Now()).Assignments, nil
}

func (uc *implUseCase) GeneratePlan(ctx context.Context, assignments []model.Assignment, c planner.Constraints) (model.DailyPlan, error) {
	if assignments == nil {
		snap := uc.deps.Store.Load()
		if snap.HasAssignments() {
			assignments = snap.Assignments
		} else {
			stored, err := uc.deps.Assignments.List(ctx)
			if err != nil {
				return model.DailyPlan{}, err
			}
			assignments = stored
		}
	}

	plan, err := uc.deps.Planner.GeneratePlan(ctx, assignments, uc.withDefaults(c))
	if err != nil {
		return model.DailyPlan{}, err
	}
	uc.deps.Store.SetPlan(plan, uc.opt.Now())
	return plan, nil
}

func (uc *implUseCase) withDefaults(c planner.Constraints) planner.Constraints {
	d := uc.opt.Constraints
	if c.FocusMinutes == 0 {
		c.FocusMinutes = d.FocusMinutes
	}
	if c.BreakMinutes == 0 {
		c.BreakMinutes = d.BreakMinutes
	}
	if c.Notes == "" {
		c.Notes = d.Notes
	}
	return c
}

func (uc *implUseCase) Status(ctx context.Context) orchestrator.Status {
	snap := uc.deps.Store.Load()
	stage, _ := uc.stage.Load().(string)
	return orchestrator.Status{
		Running:     len(uc.slot) > 0,
		Stage:       stage,
		Assignments: snap.Assignments,
		FetchedAt:   snap.FetchedAt,
		Plan:        snap.Plan,
		PlannedAt:   snap.PlannedAt,
		LastOutcome: uc.last.Load(),
	}
}

func (uc *implUseCase) UpdateAssignmentStatus(ctx context.Context, id string, status model.AssignmentStatus) (model.Assignment, error) {
	updated, err := uc.deps.Assignments.UpdateStatus(ctx, id, status)
	if err != nil {
		return model.Assignment{}, err
	}

	snap := uc.deps.Store.Load()
	if snap.HasAssignments() {
		list := slices.Clone(snap.Assignments)
		for i := range list {
			if list[i].ID == id {
				list[i].Status = updated.Status
			}
		}
		uc.deps.Store.SetAssignments(list, snap.FetchedAt)
	}
	return updated, nil
}
