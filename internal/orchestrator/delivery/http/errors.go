package http

import (
	"context"
	"errors"
	"net/http"

	"homework-planner/internal/assignment"
	"homework-planner/internal/orchestrator"
	"homework-planner/internal/planner"
	"homework-planner/pkg/response"
)

// mapError translates domain errors into HTTP errors. Validation details stay in the logs.
func (h *handler) mapError(ctx context.Context, err error) error {
	var vErr *planner.PlanValidationError
	switch {
	case errors.Is(err, assignment.ErrInvalidStatus):
		return response.NewHTTPError(http.StatusBadRequest, "invalid_status", err.Error())
	case errors.Is(err, assignment.ErrNotFound):
		return response.NewHTTPError(http.StatusNotFound, "assignment_not_found", err.Error())
	case errors.Is(err, planner.ErrPlanNotFound):
		return response.NewHTTPError(http.StatusNotFound, "plan_not_found", err.Error())
	case errors.Is(err, orchestrator.ErrCycleRunning):
		return response.NewHTTPError(http.StatusConflict, orchestrator.CodeCycleRunning, err.Error())
	case errors.As(err, &vErr):
		h.l.Warnf(ctx, "plan rejected: %s", vErr.Diagnostic())
		return response.NewHTTPError(http.StatusBadGateway, vErr.Code(), vErr.Error())
	case errors.Is(err, planner.ErrEmptyResponse):
		return response.NewHTTPError(http.StatusBadGateway, planner.CodeEmptyResponse, err.Error())
	}

	if code := orchestrator.ErrorCode(err); code != orchestrator.CodeInternal {
		return response.NewHTTPError(http.StatusBadGateway, code, err.Error())
	}
	return response.ErrInternal
}

// outcomeError picks the status of a cycle that did not succeed.
func outcomeError(out orchestrator.CycleOutcome) error {
	if out.Skipped {
		return response.NewHTTPError(http.StatusConflict, out.Code, out.Message)
	}
	return response.NewHTTPError(http.StatusBadGateway, out.Code, out.Message)
}
