package sqlite

import (
	"database/sql"

	"homework-planner/internal/assignment/repository"
	pkgLog "homework-planner/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  pkgLog.Logger
}

// New creates a SQLite assignment repository over an opened database.
func New(db *sql.DB, l pkgLog.Logger) repository.Repository {
	return &implRepository{db: db, l: l}
}
