package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps the pipeline endpoints under rg.
func RegisterRoutes(rg *gin.RouterGroup, h *handler) {
	assignments := rg.Group("/assignments")
	{
		assignments.GET("", h.ListAssignments)
		assignments.PATCH("/:id/status", h.UpdateAssignmentStatus)
	}

	plans := rg.Group("/plans")
	{
		plans.POST("", h.GeneratePlan)
		plans.GET("/current", h.CurrentPlan)
	}

	rg.POST("/cycles", h.RunCycle)
	rg.GET("/status", h.Status)
}
