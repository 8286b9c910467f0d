package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"homework-planner/internal/model"
	syncpkg "homework-planner/internal/sync"
	"homework-planner/internal/sync/repository/memory"
	trackermem "homework-planner/internal/sync/tracker/memory"
	pkgLog "homework-planner/pkg/log"
)

var day = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func testPlan() model.DailyPlan {
	return model.DailyPlan{
		Date: "2025-01-01",
		Blocks: []model.ScheduleBlock{
			{StartTime: day, EndTime: day.Add(time.Hour), Activity: "Math", Kind: model.BlockKindFocus, RelatedAssignmentID: "a1"},
			{StartTime: day.Add(time.Hour), EndTime: day.Add(75 * time.Minute), Activity: "Break", Kind: model.BlockKindBreak},
			{StartTime: day.Add(75 * time.Minute), EndTime: day.Add(135 * time.Minute), Activity: "History", Kind: model.BlockKindFocus},
		},
	}
}

func trackerIDs(r syncpkg.Report) []string {
	ids := make([]string, 0, len(r.Results))
	for _, res := range r.Results {
		ids = append(ids, res.TrackerTaskID)
	}
	return ids
}

func TestSyncIsIdempotent(t *testing.T) {
	tracker := trackermem.New()
	uc := New(pkgLog.NewNop(), tracker, memory.New(), func() time.Time { return day })
	ctx := context.Background()

	first, err := uc.Sync(ctx, testPlan())
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if first.Count(syncpkg.OutcomeCreated) != 2 || len(first.Results) != 2 {
		t.Fatalf("expected 2 focus blocks created, got %+v", first.Results)
	}

	second, err := uc.Sync(ctx, testPlan())
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if second.Count(syncpkg.OutcomeUnchanged) != 2 {
		t.Errorf("expected unchanged on second run, got %+v", second.Results)
	}
	a, b := trackerIDs(first), trackerIDs(second)
	if a[0] != b[0] || a[1] != b[1] {
		t.Errorf("tracker ids changed: %v vs %v", a, b)
	}
	if tracker.Creates != 2 || len(tracker.Tasks()) != 2 {
		t.Errorf("duplicates created: creates=%d tasks=%d", tracker.Creates, len(tracker.Tasks()))
	}
}

func TestSyncUpdatesChangedWindow(t *testing.T) {
	tracker := trackermem.New()
	uc := New(pkgLog.NewNop(), tracker, nil, nil)
	ctx := context.Background()

	first, _ := uc.Sync(ctx, testPlan())

	plan := testPlan()
	plan.Blocks[0].EndTime = plan.Blocks[0].EndTime.Add(15 * time.Minute)
	second, err := uc.Sync(ctx, plan)
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if second.Results[0].Outcome != syncpkg.OutcomeUpdated || second.Results[1].Outcome != syncpkg.OutcomeUnchanged {
		t.Errorf("unexpected outcomes: %+v", second.Results)
	}
	if second.Results[0].TrackerTaskID != first.Results[0].TrackerTaskID {
		t.Errorf("update must keep the tracker id")
	}
}

func TestSyncWithoutTrackerIsNoop(t *testing.T) {
	uc := New(pkgLog.NewNop(), nil, nil, nil)

	report, err := uc.Sync(context.Background(), testPlan())
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if !report.Skipped || len(report.Results) != 0 {
		t.Errorf("unexpected report: %+v", report)
	}
}

type flakyTracker struct {
	*trackermem.Tracker
	failTitle string
}

func (f *flakyTracker) Create(ctx context.Context, task syncpkg.TrackerTask) (syncpkg.TrackerTask, error) {
	if task.Title == f.failTitle {
		return syncpkg.TrackerTask{}, errors.New("quota exceeded")
	}
	return f.Tracker.Create(ctx, task)
}

func TestSyncReportsPerBlockFailures(t *testing.T) {
	repo := memory.New()
	uc := New(pkgLog.NewNop(), &flakyTracker{Tracker: trackermem.New(), failTitle: "Math"}, repo, func() time.Time { return day })
	ctx := context.Background()

	report, err := uc.Sync(ctx, testPlan())
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if report.Results[0].Outcome != syncpkg.OutcomeFailed || report.Results[1].Outcome != syncpkg.OutcomeCreated {
		t.Fatalf("unexpected outcomes: %+v", report.Results)
	}

	failed := report.Failed()
	if len(failed) != 1 || failed[0].Op != "create" || failed[0].Code() != syncpkg.CodeSyncFailed {
		t.Fatalf("unexpected failures: %+v", failed)
	}

	rec, err := repo.Get(ctx, "a1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if rec.Status != model.SyncStatusFailed || rec.SyncKey != report.Results[0].SyncKey {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestSyncRecordsMapping(t *testing.T) {
	repo := memory.New()
	uc := New(pkgLog.NewNop(), trackermem.New(), repo, func() time.Time { return day })
	ctx := context.Background()

	report, _ := uc.Sync(ctx, testPlan())

	recs, _ := repo.List(ctx)
	if len(recs) != 1 {
		t.Fatalf("expected a record for the block with an assignment, got %d", len(recs))
	}
	if recs[0].TrackerTaskID != report.Results[0].TrackerTaskID || recs[0].Status != model.SyncStatusSynced || !recs[0].LastSyncedAt.Equal(day) {
		t.Errorf("unexpected record: %+v", recs[0])
	}
}

func TestSyncStopsOnCancelledContext(t *testing.T) {
	uc := New(pkgLog.NewNop(), trackermem.New(), nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := uc.Sync(ctx, testPlan()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSyncReportsTasksOfReplacedPlan(t *testing.T) {
	tracker := trackermem.New()
	uc := New(pkgLog.NewNop(), tracker, nil, nil)
	ctx := context.Background()

	if _, err := uc.Sync(ctx, testPlan()); err != nil {
		t.Fatal(err)
	}

	replaced := testPlan()
	replaced.Blocks = replaced.Blocks[:1]
	report, err := uc.Sync(ctx, replaced)
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if len(report.Stale) != 1 || report.Stale[0].Title != "History" {
		t.Errorf("expected the History task to be reported stale, got %+v", report.Stale)
	}
	if report.Count(syncpkg.OutcomeUnchanged) != 1 {
		t.Errorf("unexpected outcomes: %+v", report.Results)
	}
}
