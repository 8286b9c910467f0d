package http

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
)

var errMissingID = errors.New("id is required")

func (h *handler) processListAssignmentsReq(c *gin.Context) (listAssignmentsReq, error) {
	var req listAssignmentsReq
	err := c.ShouldBindQuery(&req)
	return req, err
}

func (h *handler) processUpdateStatusReq(c *gin.Context) (updateStatusReq, error) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	req.ID = c.Param("id")
	if req.ID == "" {
		return req, errMissingID
	}
	return req, nil
}

// processGeneratePlanReq accepts an empty body, which plans the latest assignments.
func (h *handler) processGeneratePlanReq(c *gin.Context) (generatePlanReq, error) {
	var req generatePlanReq
	if c.Request.ContentLength == 0 {
		return req, nil
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	if s, e := req.Constraints.StartAt, req.Constraints.EndBy; s != nil && e != nil && !e.After(*s) {
		return req, errors.New("constraints.endBy must be after constraints.startAt")
	}
	return req, nil
}

func (h *handler) processCurrentPlanReq(c *gin.Context) (currentPlanReq, error) {
	var req currentPlanReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	if req.Date != "" {
		if _, err := time.Parse("2006-01-02", req.Date); err != nil {
			return req, errors.New("date must be YYYY-MM-DD")
		}
	}
	return req, nil
}
