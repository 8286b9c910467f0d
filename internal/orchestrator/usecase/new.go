package usecase

import (
	"sync/atomic"
	"time"

	"homework-planner/internal/assignment"
	"homework-planner/internal/ingestion"
	"homework-planner/internal/orchestrator"
	"homework-planner/internal/planner"
	"homework-planner/internal/snapshot"
	syncpkg "homework-planner/internal/sync"
	pkgLog "homework-planner/pkg/log"
)

const defaultInterval = 15 * time.Minute

// Deps are the pipeline stages.
type Deps struct {
	Extractor   ingestion.Extractor
	Credentials ingestion.Credentials
	Assignments assignment.UseCase
	Planner     planner.UseCase
	Sync        syncpkg.UseCase
	Store       *snapshot.Store
}

// Options tune scheduling and planning.
type Options struct {
	Interval    time.Duration
	RunOnStart  bool
	Constraints planner.Constraints
	Now         func() time.Time
}

type implUseCase struct {
	l    pkgLog.Logger
	deps Deps
	opt  Options

	// slot holds one token while a cycle or refresh is in flight.
	slot    chan struct{}
	machine *cycleMachine
	stage   atomic.Value // string
	// pending is set when stored fingerprints moved ahead of the published plan. Guarded by slot.
	pending bool
	last    atomic.Pointer[orchestrator.CycleOutcome]
}

// New creates a new orchestrator UseCase.
func New(l pkgLog.Logger, deps Deps, opt Options) (orchestrator.UseCase, error) {
	machine, err := newCycleMachine()
	if err != nil {
		return nil, err
	}
	if opt.Interval <= 0 {
		opt.Interval = defaultInterval
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	if deps.Store == nil {
		deps.Store = snapshot.NewStore()
	}

	uc := &implUseCase{
		l:       l,
		deps:    deps,
		opt:     opt,
		slot:    make(chan struct{}, 1),
		machine: machine,
	}
	uc.stage.Store(orchestrator.StageIdle)
	return uc, nil
}

func (uc *implUseCase) tryAcquire() bool {
	select {
	case uc.slot <- struct{}{}:
		return true
	default:
		return false
	}
}

func (uc *implUseCase) release() {
	<-uc.slot
}

// advance fires event and publishes the resulting stage.
func (uc *implUseCase) advance(event string) error {
	err := uc.machine.fire(event)
	uc.stage.Store(uc.machine.current())
	return err
}
