package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	"homework-planner/internal/middleware"
	"homework-planner/internal/model"
	orchestratorHTTP "homework-planner/internal/orchestrator/delivery/http"
)

func (srv HTTPServer) mapHandlers() {
	mw := middleware.New(srv.l)
	srv.registerMiddlewares(mw)
	srv.registerSystemRoutes()
	srv.registerDomainRoutes()
}

func (srv HTTPServer) registerMiddlewares(mw middleware.Middleware) {
	srv.gin.Use(gin.Recovery())
	srv.gin.Use(mw.Trace())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "HTTP mode: production")
	} else {
		srv.l.Infof(ctx, "HTTP mode: %s", srv.environment)
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)
}

// registerDomainRoutes registers /api/v1 routes.
func (srv HTTPServer) registerDomainRoutes() {
	api := srv.gin.Group("/api/v1")

	h := orchestratorHTTP.New(srv.l, srv.orchestrator, srv.planner)
	orchestratorHTTP.RegisterRoutes(api, h)

	srv.l.Infof(context.Background(), "Homework routes registered under /api/v1")
}
