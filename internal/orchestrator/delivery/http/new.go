package http

import (
	"homework-planner/internal/orchestrator"
	"homework-planner/internal/planner"
	"homework-planner/pkg/log"
)

type handler struct {
	l       log.Logger
	uc      orchestrator.UseCase
	planner planner.UseCase
}

// New creates the HTTP handler for the homework pipeline.
func New(l log.Logger, uc orchestrator.UseCase, plannerUC planner.UseCase) *handler {
	return &handler{
		l:       l,
		uc:      uc,
		planner: plannerUC,
	}
}
