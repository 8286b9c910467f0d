package usecase

import (
	"time"

	syncpkg "homework-planner/internal/sync"
	"homework-planner/internal/sync/repository"
	pkgLog "homework-planner/pkg/log"
)

type implUseCase struct {
	l       pkgLog.Logger
	tracker syncpkg.Tracker
	repo    repository.Repository
	now     func() time.Time
}

// New creates a new sync UseCase. tracker may be nil, which turns Sync into a no-op;
// repo may be nil when sync records are not kept.
func New(l pkgLog.Logger, tracker syncpkg.Tracker, repo repository.Repository, now func() time.Time) syncpkg.UseCase {
	if now == nil {
		now = time.Now
	}
	return &implUseCase{
		l:       l,
		tracker: tracker,
		repo:    repo,
		now:     now,
	}
}
