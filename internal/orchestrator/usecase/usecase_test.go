package usecase

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	assignmentmem "homework-planner/internal/assignment/repository/memory"
	assignmentuc "homework-planner/internal/assignment/usecase"
	"homework-planner/internal/ingestion"
	"homework-planner/internal/model"
	"homework-planner/internal/orchestrator"
	"homework-planner/internal/planner"
	planmem "homework-planner/internal/planner/repository/memory"
	planneruc "homework-planner/internal/planner/usecase"
	"homework-planner/internal/snapshot"
	trackermem "homework-planner/internal/sync/tracker/memory"
	syncuc "homework-planner/internal/sync/usecase"
	pkgLog "homework-planner/pkg/log"
)

var fixedNow = time.Date(2025, 1, 8, 15, 0, 0, 0, time.UTC)

type fakeExtractor struct {
	rows    []model.RawAssignmentRow
	err     error
	panics  bool
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (f *fakeExtractor) Extract(ctx context.Context, creds ingestion.Credentials) ([]model.RawAssignmentRow, error) {
	f.calls.Add(1)
	if f.started != nil {
		f.started <- struct{}{}
		<-f.release
	}
	if f.panics {
		panic("browser crashed")
	}
	return f.rows, f.err
}

type failingPlanner struct {
	err error
}

func (p *failingPlanner) GeneratePlan(ctx context.Context, a []model.Assignment, c planner.Constraints) (model.DailyPlan, error) {
	return model.DailyPlan{}, p.err
}

func (p *failingPlanner) CurrentPlan(ctx context.Context, date string) (model.DailyPlan, error) {
	return model.DailyPlan{}, planner.ErrPlanNotFound
}

// switchPlanner fails while err is set and delegates otherwise.
type switchPlanner struct {
	planner.UseCase
	err error
}

func (p *switchPlanner) GeneratePlan(ctx context.Context, a []model.Assignment, c planner.Constraints) (model.DailyPlan, error) {
	if p.err != nil {
		return model.DailyPlan{}, p.err
	}
	return p.UseCase.GeneratePlan(ctx, a, c)
}

func testRows() []model.RawAssignmentRow {
	return []model.RawAssignmentRow{
		{Subject: "MATEMATICA", Title: "Es. 1-5 pag. 30", DueDate: "10/01/2025"},
		{Subject: "STORIA", Title: "Leggere cap. 3", DueDate: "11/01/2025"},
	}
}

type harness struct {
	uc        orchestrator.UseCase
	extractor *fakeExtractor
	tracker   *trackermem.Tracker
	store     *snapshot.Store
}

func newHarness(t *testing.T, plan planner.UseCase) *harness {
	t.Helper()
	l := pkgLog.NewNop()
	now := func() time.Time { return fixedNow }

	if plan == nil {
		plan = planneruc.New(l, planmem.New(), planneruc.Options{Now: now})
	}
	h := &harness{
		extractor: &fakeExtractor{rows: testRows()},
		tracker:   trackermem.New(),
		store:     snapshot.NewStore(),
	}
	uc, err := New(l, Deps{
		Extractor:   h.extractor,
		Assignments: assignmentuc.New(l, assignmentmem.New(), nil),
		Planner:     plan,
		Sync:        syncuc.New(l, h.tracker, nil, now),
		Store:       h.store,
	}, Options{Now: now, Interval: time.Hour})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	h.uc = uc
	return h
}

func TestRunCycleCompletes(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	out := h.uc.RunCycle(ctx, orchestrator.TriggerManual)
	if !out.Success {
		t.Fatalf("cycle failed: %+v", out)
	}
	if out.Changes == nil || out.Changes.New != 2 {
		t.Errorf("unexpected changes: %+v", out.Changes)
	}
	if out.Sync == nil || len(out.Sync.Results) != 2 || h.tracker.Creates != 2 {
		t.Errorf("unexpected sync: %+v", out.Sync)
	}

	st := h.uc.Status(ctx)
	if st.Running || st.Stage != orchestrator.StageIdle {
		t.Errorf("unexpected status: running=%v stage=%s", st.Running, st.Stage)
	}
	if len(st.Assignments) != 2 || st.Plan == nil || st.Plan.Date != out.PlanDate {
		t.Errorf("snapshot not published: %+v", st)
	}
	if st.LastOutcome == nil || !st.LastOutcome.Success {
		t.Errorf("last outcome not recorded: %+v", st.LastOutcome)
	}
}

func TestRunCycleSkipsPlanningWhenUnchanged(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	h.uc.RunCycle(ctx, orchestrator.TriggerManual)
	out := h.uc.RunCycle(ctx, orchestrator.TriggerScheduled)
	if !out.Success || out.Sync != nil {
		t.Fatalf("expected a no-op cycle, got %+v", out)
	}
	if !strings.Contains(out.Message, "no changes") {
		t.Errorf("unexpected message %q", out.Message)
	}
	if out.Changes.Unchanged != 2 {
		t.Errorf("unexpected changes: %+v", out.Changes)
	}
	if h.tracker.Creates != 2 {
		t.Errorf("tracker written again: %d creates", h.tracker.Creates)
	}
}

func TestRunCycleIsSingleFlight(t *testing.T) {
	h := newHarness(t, nil)
	h.extractor.started = make(chan struct{})
	h.extractor.release = make(chan struct{})
	ctx := context.Background()

	done := make(chan orchestrator.CycleOutcome)
	go func() { done <- h.uc.RunCycle(ctx, orchestrator.TriggerScheduled) }()
	<-h.extractor.started

	second := h.uc.RunCycle(ctx, orchestrator.TriggerManual)
	if second.Success || !second.Skipped || second.Message != "cycle already running" {
		t.Errorf("expected skipped outcome, got %+v", second)
	}
	if _, err := h.uc.FetchAssignments(ctx, true); !errors.Is(err, orchestrator.ErrCycleRunning) {
		t.Errorf("expected ErrCycleRunning, got %v", err)
	}
	if st := h.uc.Status(ctx); !st.Running || st.Stage != orchestrator.StageExtracting {
		t.Errorf("unexpected status while running: %+v", st)
	}

	close(h.extractor.release)
	if first := <-done; !first.Success {
		t.Errorf("first cycle failed: %+v", first)
	}
	if got := h.extractor.calls.Load(); got != 1 {
		t.Errorf("expected one extraction, got %d", got)
	}
}

func TestRunCycleReportsStageFailure(t *testing.T) {
	h := newHarness(t, nil)
	h.extractor.err = &ingestion.AuthenticationError{Message: "Credenziali non valide"}
	ctx := context.Background()

	out := h.uc.RunCycle(ctx, orchestrator.TriggerManual)
	if out.Success || out.Stage != orchestrator.StageExtracting || out.Code != ingestion.CodeAuthFailed {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if !strings.Contains(out.Message, "Credenziali non valide") {
		t.Errorf("message lost cause: %q", out.Message)
	}
	if st := h.uc.Status(ctx); st.Stage != orchestrator.StageIdle || st.Running {
		t.Errorf("cycle not returned to idle: %+v", st)
	}

	h.extractor.err = nil
	if out := h.uc.RunCycle(ctx, orchestrator.TriggerManual); !out.Success {
		t.Errorf("next cycle failed: %+v", out)
	}
}

func TestRunCyclePlanningFailureCommitsNoPlan(t *testing.T) {
	vErr := &planner.PlanValidationError{Details: []string{"blocks: required"}, Err: errors.New("schema")}
	h := newHarness(t, &failingPlanner{err: vErr})

	out := h.uc.RunCycle(context.Background(), orchestrator.TriggerManual)
	if out.Success || out.Stage != orchestrator.StagePlanning || out.Code != planner.CodePlanInvalid {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	snap := h.store.Load()
	if snap.Plan != nil {
		t.Error("failed planning must not publish a plan")
	}
	if snap.HasAssignments() {
		t.Errorf("failed cycle must not publish assignments, got %d", len(snap.Assignments))
	}
	if h.tracker.Creates != 0 {
		t.Error("sync must not run after a planning failure")
	}
}

func TestRunCycleKeepsPreviousSnapshotOnFailure(t *testing.T) {
	l := pkgLog.NewNop()
	sp := &switchPlanner{UseCase: planneruc.New(l, planmem.New(), planneruc.Options{Now: func() time.Time { return fixedNow }})}
	h := newHarness(t, sp)
	ctx := context.Background()

	if out := h.uc.RunCycle(ctx, orchestrator.TriggerManual); !out.Success {
		t.Fatalf("first cycle failed: %+v", out)
	}
	before := h.store.Load()

	h.extractor.rows = append(testRows(), model.RawAssignmentRow{Subject: "INGLESE", Title: "Unit 4", DueDate: "12/01/2025"})
	sp.err = errors.New("model unavailable")
	if out := h.uc.RunCycle(ctx, orchestrator.TriggerScheduled); out.Success || out.Stage != orchestrator.StagePlanning {
		t.Fatalf("expected planning failure, got %+v", out)
	}
	if h.store.Load() != before {
		t.Error("failed cycle replaced the published snapshot")
	}
	if len(before.Assignments) != 2 || len(before.Plan.Blocks) != 2 {
		t.Errorf("published snapshot changed: %d assignments, %d blocks", len(before.Assignments), len(before.Plan.Blocks))
	}
}

func TestRunCycleReplansAfterPlanningFailure(t *testing.T) {
	l := pkgLog.NewNop()
	sp := &switchPlanner{UseCase: planneruc.New(l, planmem.New(), planneruc.Options{Now: func() time.Time { return fixedNow }})}
	h := newHarness(t, sp)
	ctx := context.Background()

	h.uc.RunCycle(ctx, orchestrator.TriggerManual)

	h.extractor.rows = append(testRows(), model.RawAssignmentRow{Subject: "INGLESE", Title: "Unit 4", DueDate: "12/01/2025"})
	sp.err = errors.New("model unavailable")
	if out := h.uc.RunCycle(ctx, orchestrator.TriggerScheduled); out.Success {
		t.Fatalf("expected planning failure, got %+v", out)
	}

	sp.err = nil
	out := h.uc.RunCycle(ctx, orchestrator.TriggerScheduled)
	if !out.Success || strings.Contains(out.Message, "no changes") {
		t.Fatalf("expected a re-plan, got %+v", out)
	}
	if out.Changes.Unchanged != 3 {
		t.Errorf("fingerprints should already be stored: %+v", out.Changes)
	}
	snap := h.store.Load()
	if len(snap.Assignments) != 3 || snap.Plan == nil || len(snap.Plan.Blocks) != 3 {
		t.Errorf("new assignment not planned: %d assignments, plan %+v", len(snap.Assignments), snap.Plan)
	}

	if out := h.uc.RunCycle(ctx, orchestrator.TriggerScheduled); !strings.Contains(out.Message, "no changes") {
		t.Errorf("expected the next cycle to keep the plan, got %q", out.Message)
	}
}

func TestRefreshDoesNotSwallowChanges(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	h.uc.RunCycle(ctx, orchestrator.TriggerManual)
	h.extractor.rows = append(testRows(), model.RawAssignmentRow{Subject: "INGLESE", Title: "Unit 4", DueDate: "12/01/2025"})

	list, err := h.uc.FetchAssignments(ctx, true)
	if err != nil || len(list) != 3 {
		t.Fatalf("FetchAssignments() = %d, %v", len(list), err)
	}
	if len(h.store.Load().Plan.Blocks) != 2 {
		t.Error("refresh must not touch the plan")
	}

	out := h.uc.RunCycle(ctx, orchestrator.TriggerScheduled)
	if !out.Success || strings.Contains(out.Message, "no changes") {
		t.Fatalf("expected a re-plan after refresh, got %+v", out)
	}
	if got := h.store.Load().Plan; len(got.Blocks) != 3 {
		t.Errorf("plan has %d blocks, want 3", len(got.Blocks))
	}
}

func TestRunCycleRecoversPanic(t *testing.T) {
	h := newHarness(t, nil)
	h.extractor.panics = true
	ctx := context.Background()

	out := h.uc.RunCycle(ctx, orchestrator.TriggerManual)
	if out.Success || out.Code != orchestrator.CodePanic || out.Stage != orchestrator.StageExtracting {
		t.Fatalf("unexpected outcome: %+v", out)
	}

	h.extractor.panics = false
	if out := h.uc.RunCycle(ctx, orchestrator.TriggerManual); !out.Success {
		t.Errorf("cycle after panic failed: %+v", out)
	}
}

func TestFetchAssignmentsReusesSnapshot(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	first, err := h.uc.FetchAssignments(ctx, false)
	if err != nil || len(first) != 2 {
		t.Fatalf("FetchAssignments() = %d, %v", len(first), err)
	}
	if _, err := h.uc.FetchAssignments(ctx, false); err != nil {
		t.Fatal(err)
	}
	if got := h.extractor.calls.Load(); got != 1 {
		t.Errorf("expected snapshot reuse, got %d extractions", got)
	}
	if _, err := h.uc.FetchAssignments(ctx, true); err != nil {
		t.Fatal(err)
	}
	if got := h.extractor.calls.Load(); got != 2 {
		t.Errorf("refresh should extract again, got %d extractions", got)
	}
	if h.store.Load().Plan != nil {
		t.Error("fetch must not plan")
	}
}

func TestUpdateAssignmentStatusRepublishes(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	list, _ := h.uc.FetchAssignments(ctx, false)
	before := h.store.Load()

	updated, err := h.uc.UpdateAssignmentStatus(ctx, list[0].ID, model.AssignmentStatusCompleted)
	if err != nil {
		t.Fatalf("UpdateAssignmentStatus() error = %v", err)
	}
	if updated.Status != model.AssignmentStatusCompleted {
		t.Errorf("unexpected status %s", updated.Status)
	}
	if h.store.Load().Assignments[0].Status != model.AssignmentStatusCompleted {
		t.Error("snapshot not republished")
	}
	if before.Assignments[0].Status == model.AssignmentStatusCompleted {
		t.Error("old snapshot mutated")
	}

	if _, err := h.uc.UpdateAssignmentStatus(ctx, list[0].ID, "archived"); err == nil {
		t.Error("expected invalid status error")
	}
}

func TestGeneratePlanPublishes(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	h.uc.FetchAssignments(ctx, false)

	plan, err := h.uc.GeneratePlan(ctx, nil, planner.Constraints{})
	if err != nil {
		t.Fatalf("GeneratePlan() error = %v", err)
	}
	if len(plan.Blocks) != 2 {
		t.Errorf("expected a block per pending assignment, got %d", len(plan.Blocks))
	}
	if got := h.store.Load().Plan; got == nil || got.Date != plan.Date {
		t.Errorf("plan not published: %+v", got)
	}
}

func TestStartRunsStartupCycle(t *testing.T) {
	h := newHarness(t, nil)
	uc := h.uc.(*implUseCase)
	uc.opt.RunOnStart = true

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		uc.Start(ctx)
		close(stopped)
	}()

	deadline := time.After(5 * time.Second)
	for uc.Status(ctx).LastOutcome == nil {
		select {
		case <-deadline:
			t.Fatal("startup cycle did not run")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-stopped

	if last := uc.Status(context.Background()).LastOutcome; last.Trigger != orchestrator.TriggerStartup || !last.Success {
		t.Errorf("unexpected startup outcome: %+v", last)
	}
}
