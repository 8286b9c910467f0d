package usecase

import (
	"context"
	"time"

	"homework-planner/internal/orchestrator"
)

func (uc *implUseCase) Start(ctx context.Context) {
	uc.l.Infof(ctx, "Start: scheduler every %s (run on start: %t)", uc.opt.Interval, uc.opt.RunOnStart)

	if uc.opt.RunOnStart {
		uc.logOutcome(ctx, uc.RunCycle(ctx, orchestrator.TriggerStartup))
	}

	ticker := time.NewTicker(uc.opt.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			uc.l.Infof(ctx, "Start: scheduler stopped")
			return
		case <-ticker.C:
			uc.logOutcome(ctx, uc.RunCycle(ctx, orchestrator.TriggerScheduled))
		}
	}
}

func (uc *implUseCase) logOutcome(ctx context.Context, out orchestrator.CycleOutcome) {
	switch {
	case out.Skipped:
		uc.l.Debugf(ctx, "Start: %s cycle skipped", out.Trigger)
	case out.Success:
		uc.l.Infof(ctx, "Start: %s cycle ok in %s", out.Trigger, out.FinishedAt.Sub(out.StartedAt))
	default:
		uc.l.Warnf(ctx, "Start: %s cycle failed at %s: %s", out.Trigger, out.Stage, out.Message)
	}
}
