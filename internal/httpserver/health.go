package httpserver

import (
	"github.com/gin-gonic/gin"

	"homework-planner/pkg/response"
)

// Health response constants (single source for version and service identity).
const (
	HealthVersion = "1.0.0"
	ServiceName   = "homework-planner"
)

// healthCheck reports liveness plus the last cycle result.
// GET /health
func (srv HTTPServer) healthCheck(c *gin.Context) {
	st := srv.orchestrator.Status(c.Request.Context())

	body := gin.H{
		"status":      "healthy",
		"version":     HealthVersion,
		"service":     ServiceName,
		"stage":       st.Stage,
		"assignments": len(st.Assignments),
	}
	if st.LastOutcome != nil {
		body["lastCycle"] = gin.H{
			"success":    st.LastOutcome.Success,
			"finishedAt": st.LastOutcome.FinishedAt,
			"message":    st.LastOutcome.Message,
		}
	}
	response.OK(c, body)
}

// readyCheck handles readiness check: ready once the server is up.
// GET /ready
func (srv HTTPServer) readyCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "ready",
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// liveCheck handles liveness check requests.
// GET /live
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"version": HealthVersion,
		"service": ServiceName,
	})
}
