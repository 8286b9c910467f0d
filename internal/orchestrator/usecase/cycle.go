package usecase

import (
	"context"
	"fmt"

	"homework-planner/internal/assignment"
	"homework-planner/internal/orchestrator"
	syncpkg "homework-planner/internal/sync"
)

func (uc *implUseCase) RunCycle(ctx context.Context, trigger orchestrator.Trigger) (out orchestrator.CycleOutcome) {
	out = orchestrator.CycleOutcome{Trigger: trigger, StartedAt: uc.opt.Now()}

	if !uc.tryAcquire() {
		out.Skipped = true
		out.Code = orchestrator.CodeCycleRunning
		out.Message = orchestrator.ErrCycleRunning.Error()
		out.FinishedAt = uc.opt.Now()
		uc.l.Infof(ctx, "RunCycle: %s trigger skipped, %s", trigger, out.Message)
		return out
	}
	defer uc.release()

	defer func() {
		if r := recover(); r != nil {
			stage := uc.machine.current()
			uc.machine.abort()
			uc.stage.Store(uc.machine.current())
			out.Success = false
			out.Stage = stage
			out.Code = orchestrator.CodePanic
			out.Message = fmt.Sprintf("panic during %s: %v", stage, r)
			uc.l.Errorf(ctx, "RunCycle: stage=%s recovered %s", stage, out.Message)
		}
		out.FinishedAt = uc.opt.Now()
		final := out
		uc.last.Store(&final)
	}()

	fail := func(err error) orchestrator.CycleOutcome {
		out.Success = false
		out.Stage = uc.machine.current()
		out.Code = orchestrator.ErrorCode(err)
		out.Message = err.Error()
		uc.l.Errorf(ctx, "RunCycle: stage=%s code=%s: %v", out.Stage, out.Code, err)
		uc.machine.abort()
		uc.stage.Store(uc.machine.current())
		return out
	}

	uc.l.Infof(ctx, "RunCycle: %s cycle started", trigger)
	if err := uc.advance(eventStart); err != nil {
		return fail(err)
	}

	cs, summary, err := uc.extractAndDetect(ctx)
	out.Changes = summary
	if err != nil {
		return fail(err)
	}

	if cs.HasChanges() {
		uc.pending = true
	}
	if !uc.pending {
		if plan := uc.deps.Store.Load().Plan; plan != nil {
			if err := uc.advance(eventFinish); err != nil {
				return fail(err)
			}
			uc.deps.Store.SetAssignments(cs.Current, uc.opt.Now())
			out.Success = true
			out.PlanDate = plan.Date
			out.Message = fmt.Sprintf("no changes, keeping plan %s", plan.Date)
			uc.l.Infof(ctx, "RunCycle: %s", out.Message)
			return out
		}
	}

	if err := uc.advance(eventChanged); err != nil {
		return fail(err)
	}
	plan, err := uc.deps.Planner.GeneratePlan(ctx, cs.Current, uc.opt.Constraints)
	if err != nil {
		return fail(err)
	}
	out.PlanDate = plan.Date

	if err := uc.advance(eventPlanned); err != nil {
		return fail(err)
	}
	report, err := uc.deps.Sync.Sync(ctx, plan)
	if err != nil {
		return fail(err)
	}
	out.Sync = &report

	if err := uc.advance(eventSynced); err != nil {
		return fail(err)
	}
	uc.deps.Store.Publish(cs.Current, plan, uc.opt.Now())
	uc.pending = false

	out.Success = true
	out.Message = fmt.Sprintf("%d new, %d updated; plan %s with %d blocks; %s",
		summary.New, summary.Updated, plan.Date, len(plan.Blocks), syncSummary(report))
	uc.l.Infof(ctx, "RunCycle: completed: %s", out.Message)
	return out
}

// extractAndDetect runs the extracting and detecting stages and stores the sighted assignments.
// Publishing is left to the caller.
func (uc *implUseCase) extractAndDetect(ctx context.Context) (assignment.ChangeSet, *orchestrator.ChangeSummary, error) {
	rows, err := uc.deps.Extractor.Extract(ctx, uc.deps.Credentials)
	if err != nil {
		return assignment.ChangeSet{}, nil, fmt.Errorf("extract: %w", err)
	}
	if err := uc.advance(eventExtracted); err != nil {
		return assignment.ChangeSet{}, nil, err
	}

	norm, err := uc.deps.Assignments.Normalize(ctx, rows)
	if err != nil {
		return assignment.ChangeSet{}, nil, fmt.Errorf("normalize: %w", err)
	}
	for _, s := range norm.Skipped {
		uc.l.Warnf(ctx, "RunCycle: skipped row %q/%q: %v", s.Row.Subject, s.Row.Title, s.Err)
	}

	cs, err := uc.deps.Assignments.DetectChanges(ctx, norm.Assignments)
	if err != nil {
		return assignment.ChangeSet{}, nil, fmt.Errorf("detect changes: %w", err)
	}
	if err := uc.deps.Assignments.Apply(ctx, cs); err != nil {
		return assignment.ChangeSet{}, nil, fmt.Errorf("store assignments: %w", err)
	}

	summary := &orchestrator.ChangeSummary{
		Skipped:   len(norm.Skipped),
		New:       len(cs.New),
		Updated:   len(cs.Updated),
		Unchanged: len(cs.Unchanged),
		Removed:   len(cs.Removed),
	}
	uc.l.Infof(ctx, "RunCycle: %d rows, %d assignments (new=%d updated=%d unchanged=%d removed=%d skipped=%d)",
		len(rows), len(cs.Current), summary.New, summary.Updated, summary.Unchanged, summary.Removed, summary.Skipped)
	return cs, summary, nil
}

func syncSummary(r syncpkg.Report) string {
	if r.Skipped {
		return "sync skipped, no tracker"
	}
	return fmt.Sprintf("sync created=%d updated=%d unchanged=%d failed=%d",
		r.Count(syncpkg.OutcomeCreated), r.Count(syncpkg.OutcomeUpdated),
		r.Count(syncpkg.OutcomeUnchanged), r.Count(syncpkg.OutcomeFailed))
}
