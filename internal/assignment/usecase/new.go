package usecase

import (
	"homework-planner/internal/assignment"
	"homework-planner/internal/assignment/repository"
	pkgLog "homework-planner/pkg/log"
)

type implUseCase struct {
	l     pkgLog.Logger
	repo  repository.Repository
	newID func() string
}

// New creates the assignment UseCase. A nil newID uses random UUIDs.
func New(l pkgLog.Logger, repo repository.Repository, newID func() string) assignment.UseCase {
	if newID == nil {
		newID = uuidString
	}
	return &implUseCase{
		l:     l,
		repo:  repo,
		newID: newID,
	}
}
