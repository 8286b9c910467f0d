package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/fortify/timeout"

	"homework-planner/internal/model"
	"homework-planner/internal/planner"
	"homework-planner/internal/planner/repository"
	"homework-planner/pkg/llmprovider"
)

// GeneratePlan asks the model for a plan, or builds the fallback plan when no model is configured.
// The plan is stored only when it is valid.
func (uc *implUseCase) GeneratePlan(ctx context.Context, assignments []model.Assignment, c planner.Constraints) (model.DailyPlan, error) {
	pending := make([]model.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if a.IsPending() {
			pending = append(pending, a)
		}
	}

	now := uc.now()
	start := now
	if !c.StartAt.IsZero() {
		start = c.StartAt
	}

	var (
		plan model.DailyPlan
		err  error
	)
	if !uc.llm.HasProviders() {
		uc.l.Warnf(ctx, "GeneratePlan: no model providers configured, using fallback for %d assignments", len(pending))
		plan = uc.fallbackPlan(pending, start)
	} else {
		plan, err = uc.generateWithModel(ctx, pending, c, now)
		if err != nil {
			return model.DailyPlan{}, err
		}
	}

	if err := uc.repo.Save(ctx, plan); err != nil {
		return model.DailyPlan{}, fmt.Errorf("store plan %s: %w", plan.Date, err)
	}

	uc.l.Infof(ctx, "GeneratePlan: plan %s with %d blocks (%d focus)", plan.Date, len(plan.Blocks), len(plan.FocusBlocks()))
	return plan, nil
}

func (uc *implUseCase) generateWithModel(ctx context.Context, pending []model.Assignment, c planner.Constraints, now time.Time) (model.DailyPlan, error) {
	userMessage, err := uc.buildUserMessage(pending, c, now)
	if err != nil {
		return model.DailyPlan{}, err
	}

	req := &llmprovider.Request{
		SystemInstruction: systemInstruction,
		Messages:          []llmprovider.Message{{Role: "user", Text: userMessage}},
		Temperature:       0.2,
	}

	t := timeout.New[*llmprovider.Response](timeout.Config{DefaultTimeout: uc.timeout})
	resp, err := t.Execute(ctx, uc.timeout, func(ctx context.Context) (*llmprovider.Response, error) {
		return uc.llm.GenerateContent(ctx, req)
	})
	if err != nil {
		uc.l.Errorf(ctx, "GeneratePlan: model call failed: %v", err)
		return model.DailyPlan{}, fmt.Errorf("model call: %w", err)
	}

	known := make(map[string]struct{}, len(pending))
	for _, a := range pending {
		known[a.ID] = struct{}{}
	}

	plan, warnings, err := parsePlan(resp.Text, known)
	for _, w := range warnings {
		uc.l.Warnf(ctx, "GeneratePlan: %s", w)
	}
	if err != nil {
		var vErr *planner.PlanValidationError
		if errors.As(err, &vErr) {
			uc.l.Errorf(ctx, "GeneratePlan: invalid plan from %s: %s", resp.ProviderName, vErr.Diagnostic())
		} else {
			uc.l.Errorf(ctx, "GeneratePlan: unusable reply from %s: %v", resp.ProviderName, err)
		}
		return model.DailyPlan{}, err
	}
	return plan, nil
}

func (uc *implUseCase) CurrentPlan(ctx context.Context, date string) (model.DailyPlan, error) {
	var (
		plan model.DailyPlan
		err  error
	)
	if date == "" {
		plan, err = uc.repo.Latest(ctx)
	} else {
		plan, err = uc.repo.Get(ctx, date)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return model.DailyPlan{}, planner.ErrPlanNotFound
	}
	return plan, err
}
