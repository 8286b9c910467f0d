package http

import (
	"time"

	"homework-planner/internal/model"
	"homework-planner/internal/planner"
)

// --- Request DTOs ---

type listAssignmentsReq struct {
	Refresh bool `form:"refresh"`
}

type updateStatusReq struct {
	ID     string `json:"-"`
	Status string `json:"status" binding:"required"`
}

type constraintsReq struct {
	StartAt      *time.Time `json:"startAt"`
	EndBy        *time.Time `json:"endBy"`
	FocusMinutes int        `json:"focusMinutes" binding:"min=0,max=480"`
	BreakMinutes int        `json:"breakMinutes" binding:"min=0,max=120"`
	Notes        string     `json:"notes" binding:"max=1000"`
}

type generatePlanReq struct {
	Assignments []model.Assignment `json:"assignments"`
	Constraints constraintsReq     `json:"constraints"`
}

func (r generatePlanReq) toConstraints() planner.Constraints {
	c := planner.Constraints{
		FocusMinutes: r.Constraints.FocusMinutes,
		BreakMinutes: r.Constraints.BreakMinutes,
		Notes:        r.Constraints.Notes,
	}
	if r.Constraints.StartAt != nil {
		c.StartAt = *r.Constraints.StartAt
	}
	if r.Constraints.EndBy != nil {
		c.EndBy = *r.Constraints.EndBy
	}
	return c
}

type currentPlanReq struct {
	Date string `form:"date"`
}

// --- Response DTOs ---

type listAssignmentsResp struct {
	Assignments []model.Assignment `json:"assignments"`
	Total       int                `json:"total"`
}

func newListAssignmentsResp(list []model.Assignment) listAssignmentsResp {
	if list == nil {
		list = []model.Assignment{}
	}
	return listAssignmentsResp{Assignments: list, Total: len(list)}
}

type assignmentResp struct {
	Assignment model.Assignment `json:"assignment"`
}

type planResp struct {
	Plan model.DailyPlan `json:"plan"`
}
