package usecase

import (
	"time"

	"homework-planner/internal/planner"
	"homework-planner/internal/planner/repository"
	"homework-planner/pkg/datemath"
	"homework-planner/pkg/llmprovider"
	pkgLog "homework-planner/pkg/log"
)

const defaultTimeout = 90 * time.Second

type implUseCase struct {
	l        pkgLog.Logger
	llm      *llmprovider.Manager
	repo     repository.Repository
	dateMath *datemath.Parser
	now      func() time.Time
	timeout  time.Duration
}

// Options are the optional collaborators of the planner.
type Options struct {
	// LLM may be nil; without providers the deterministic fallback plan is used.
	LLM      *llmprovider.Manager
	DateMath *datemath.Parser
	Now      func() time.Time
	Timeout  time.Duration
}

// New creates a new planner UseCase instance.
func New(l pkgLog.Logger, repo repository.Repository, opt Options) planner.UseCase {
	if opt.Now == nil {
		opt.Now = time.Now
	}
	if opt.DateMath == nil {
		opt.DateMath, _ = datemath.NewParser("")
	}
	if opt.Timeout <= 0 {
		opt.Timeout = defaultTimeout
	}
	return &implUseCase{
		l:        l,
		llm:      opt.LLM,
		repo:     repo,
		dateMath: opt.DateMath,
		now:      opt.Now,
		timeout:  opt.Timeout,
	}
}
