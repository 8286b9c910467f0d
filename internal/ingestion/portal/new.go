package portal

import (
	"homework-planner/internal/ingestion"
	pkgLog "homework-planner/pkg/log"
)

// Extractor scrapes assignments from the live portal.
type Extractor struct {
	l        pkgLog.Logger
	cfg      Config
	launcher Launcher
	waiter   ingestion.Waiter
}

// New creates a portal Extractor. A nil waiter uses a real timer.
func New(l pkgLog.Logger, cfg Config, launcher Launcher, waiter ingestion.Waiter) *Extractor {
	if waiter == nil {
		waiter = ingestion.TimerWaiter{}
	}
	return &Extractor{
		l:        l,
		cfg:      cfg.withDefaults(),
		launcher: launcher,
		waiter:   waiter,
	}
}
