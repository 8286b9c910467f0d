package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"homework-planner/internal/model"
	"homework-planner/internal/orchestrator"
	"homework-planner/internal/planner"
	"homework-planner/pkg/response"
)

// ListAssignments returns the latest assignments. ?refresh=true extracts again.
// GET /api/v1/assignments
func (h *handler) ListAssignments(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListAssignmentsReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	list, err := h.uc.FetchAssignments(ctx, req.Refresh)
	if err != nil {
		h.l.Errorf(ctx, "uc.FetchAssignments: %v", err)
		response.Error(c, h.mapError(ctx, err), nil)
		return
	}

	response.OK(c, newListAssignmentsResp(list))
}

// UpdateAssignmentStatus marks an assignment pending or completed.
// PATCH /api/v1/assignments/:id/status
func (h *handler) UpdateAssignmentStatus(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processUpdateStatusReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	a, err := h.uc.UpdateAssignmentStatus(ctx, req.ID, model.AssignmentStatus(req.Status))
	if err != nil {
		h.l.Errorf(ctx, "uc.UpdateAssignmentStatus: %v", err)
		response.Error(c, h.mapError(ctx, err), nil)
		return
	}

	response.OK(c, assignmentResp{Assignment: a})
}

// GeneratePlan plans the given assignments, or the latest ones when none are sent.
// POST /api/v1/plans
func (h *handler) GeneratePlan(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processGeneratePlanReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	plan, err := h.uc.GeneratePlan(ctx, req.Assignments, req.toConstraints())
	if err != nil {
		h.l.Errorf(ctx, "uc.GeneratePlan: %v", err)
		response.Error(c, h.mapError(ctx, err), nil)
		return
	}

	response.OK(c, planResp{Plan: plan})
}

// CurrentPlan returns the published plan, or the stored plan for ?date=YYYY-MM-DD.
// GET /api/v1/plans/current
func (h *handler) CurrentPlan(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processCurrentPlanReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	if req.Date == "" {
		if plan := h.uc.Status(ctx).Plan; plan != nil {
			response.OK(c, planResp{Plan: *plan})
			return
		}
	}

	plan, err := h.planner.CurrentPlan(ctx, req.Date)
	if err != nil {
		if !errors.Is(err, planner.ErrPlanNotFound) {
			h.l.Errorf(ctx, "planner.CurrentPlan: %v", err)
		}
		response.Error(c, h.mapError(ctx, err), nil)
		return
	}

	response.OK(c, planResp{Plan: plan})
}

// RunCycle runs one cycle now and returns its outcome.
// POST /api/v1/cycles
func (h *handler) RunCycle(c *gin.Context) {
	ctx := c.Request.Context()

	out := h.uc.RunCycle(ctx, orchestrator.TriggerManual)
	if !out.Success {
		response.Error(c, outcomeError(out), out)
		return
	}

	response.OK(c, out)
}

// Status returns the latest published pipeline state.
// GET /api/v1/status
func (h *handler) Status(c *gin.Context) {
	response.OK(c, h.uc.Status(c.Request.Context()))
}
