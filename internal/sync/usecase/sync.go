package usecase

import (
	"context"
	"fmt"

	"homework-planner/internal/model"
	syncpkg "homework-planner/internal/sync"
)

func (uc *implUseCase) Sync(ctx context.Context, plan model.DailyPlan) (syncpkg.Report, error) {
	report := syncpkg.Report{Date: plan.Date}

	if uc.tracker == nil {
		uc.l.Warnf(ctx, "Sync: %v, skipping %d blocks of plan %s", syncpkg.ErrTrackerNotConfigured, len(plan.Blocks), plan.Date)
		report.Skipped = true
		return report, nil
	}
	report.Tracker = uc.tracker.Name()

	focus := plan.FocusBlocks()
	report.Stale = uc.staleTasks(ctx, plan.Date, focus)

	for _, block := range focus {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("sync interrupted after %d blocks: %w", len(report.Results), err)
		}

		res := uc.upsert(ctx, plan.Date, block)
		if res.Err != nil {
			uc.l.Errorf(ctx, "Sync: %v", res.Err)
		}
		report.Results = append(report.Results, res)
		uc.record(ctx, res)
	}

	uc.l.Infof(ctx, "Sync: plan %s on %s: created=%d updated=%d unchanged=%d failed=%d stale=%d",
		plan.Date, report.Tracker,
		report.Count(syncpkg.OutcomeCreated), report.Count(syncpkg.OutcomeUpdated),
		report.Count(syncpkg.OutcomeUnchanged), report.Count(syncpkg.OutcomeFailed), len(report.Stale))
	return report, nil
}

// staleTasks indexes the plan date when the tracker supports it and returns the keyed tasks
// that no focus block of the plan maps to. Indexing failures only cost the warm lookups.
func (uc *implUseCase) staleTasks(ctx context.Context, date string, focus []model.ScheduleBlock) []syncpkg.TrackerTask {
	indexer, ok := uc.tracker.(syncpkg.DayIndexer)
	if !ok {
		return nil
	}
	existing, err := indexer.IndexDay(ctx, date)
	if err != nil {
		uc.l.Warnf(ctx, "Sync: failed to index %s on %s: %v", date, uc.tracker.Name(), err)
		return nil
	}

	keys := make(map[string]struct{}, len(focus))
	for _, block := range focus {
		keys[syncpkg.Key(block.Activity, block.StartTime)] = struct{}{}
	}
	var stale []syncpkg.TrackerTask
	for _, task := range existing {
		if _, ok := keys[task.Key]; !ok {
			stale = append(stale, task)
			uc.l.Infof(ctx, "Sync: %s %q on %s is no longer planned", task.ID, task.Title, date)
		}
	}
	return stale
}

func (uc *implUseCase) upsert(ctx context.Context, date string, block model.ScheduleBlock) syncpkg.BlockResult {
	key := syncpkg.Key(block.Activity, block.StartTime)
	res := syncpkg.BlockResult{
		SyncKey:             key,
		Activity:            block.Activity,
		StartTime:           block.StartTime,
		RelatedAssignmentID: block.RelatedAssignmentID,
	}
	want := syncpkg.TrackerTask{
		Key:   key,
		Title: block.Activity,
		Notes: notesFor(date, block),
		Start: block.StartTime,
		End:   block.EndTime,
	}

	fail := func(op string, err error) syncpkg.BlockResult {
		res.Outcome = syncpkg.OutcomeFailed
		res.Err = &syncpkg.SyncError{SyncKey: key, Activity: block.Activity, Op: op, Err: err}
		res.Error = res.Err.Error()
		return res
	}

	existing, found, err := uc.tracker.FindByKey(ctx, key)
	if err != nil {
		return fail("find", err)
	}

	switch {
	case !found:
		created, err := uc.tracker.Create(ctx, want)
		if err != nil {
			return fail("create", err)
		}
		res.Outcome, res.TrackerTaskID = syncpkg.OutcomeCreated, created.ID
	case !existing.SameContent(want):
		want.ID = existing.ID
		updated, err := uc.tracker.Update(ctx, want)
		if err != nil {
			return fail("update", err)
		}
		res.Outcome, res.TrackerTaskID = syncpkg.OutcomeUpdated, updated.ID
	default:
		res.Outcome, res.TrackerTaskID = syncpkg.OutcomeUnchanged, existing.ID
	}
	return res
}

// record keeps the assignment mapping for blocks that reference an assignment.
func (uc *implUseCase) record(ctx context.Context, res syncpkg.BlockResult) {
	if uc.repo == nil || res.RelatedAssignmentID == "" {
		return
	}
	status := model.SyncStatusSynced
	if res.Outcome == syncpkg.OutcomeFailed {
		status = model.SyncStatusFailed
	}
	rec := model.SyncRecord{
		AssignmentID:  res.RelatedAssignmentID,
		TrackerTaskID: res.TrackerTaskID,
		SyncKey:       res.SyncKey,
		LastSyncedAt:  uc.now().UTC(),
		Status:        status,
	}
	if err := uc.repo.Save(ctx, rec); err != nil {
		uc.l.Warnf(ctx, "Sync: failed to record mapping for %s: %v", res.RelatedAssignmentID, err)
	}
}

func notesFor(date string, block model.ScheduleBlock) string {
	if block.RelatedAssignmentID == "" {
		return fmt.Sprintf("Study plan %s", date)
	}
	return fmt.Sprintf("Study plan %s\nassignment: %s", date, block.RelatedAssignmentID)
}
