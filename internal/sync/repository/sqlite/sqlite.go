package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"homework-planner/internal/model"
	"homework-planner/internal/sync/repository"
	pkgLog "homework-planner/pkg/log"
	pkgSqlite "homework-planner/pkg/sqlite"
)

type implRepository struct {
	db *sql.DB
	l  pkgLog.Logger
}

// New creates a SQLite sync record repository over an opened database.
func New(db *sql.DB, l pkgLog.Logger) repository.Repository {
	return &implRepository{db: db, l: l}
}

func (r *implRepository) Save(ctx context.Context, rec model.SyncRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sync_records (assignment_id, tracker_task_id, sync_key, last_synced_at, sync_status)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(assignment_id) DO UPDATE SET
			tracker_task_id = CASE WHEN excluded.tracker_task_id = '' THEN sync_records.tracker_task_id ELSE excluded.tracker_task_id END,
			sync_key = excluded.sync_key,
			last_synced_at = excluded.last_synced_at,
			sync_status = excluded.sync_status`,
		rec.AssignmentID, rec.TrackerTaskID, rec.SyncKey,
		rec.LastSyncedAt.UTC().Format(pkgSqlite.TimeLayout), string(rec.Status),
	)
	if err != nil {
		return fmt.Errorf("save sync record %s: %w", rec.AssignmentID, err)
	}
	r.l.Debugf(ctx, "sync repository: %s -> %s (%s)", rec.AssignmentID, rec.TrackerTaskID, rec.Status)
	return nil
}

func (r *implRepository) Get(ctx context.Context, assignmentID string) (model.SyncRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT assignment_id, tracker_task_id, sync_key, last_synced_at, sync_status
		FROM sync_records WHERE assignment_id = ?`, assignmentID)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.SyncRecord{}, repository.ErrNotFound
	}
	return rec, err
}

func (r *implRepository) List(ctx context.Context) ([]model.SyncRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT assignment_id, tracker_task_id, sync_key, last_synced_at, sync_status
		FROM sync_records ORDER BY assignment_id`)
	if err != nil {
		return nil, fmt.Errorf("list sync records: %w", err)
	}
	defer rows.Close()

	var out []model.SyncRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (model.SyncRecord, error) {
	var (
		rec      model.SyncRecord
		syncedAt string
		status   string
	)
	if err := s.Scan(&rec.AssignmentID, &rec.TrackerTaskID, &rec.SyncKey, &syncedAt, &status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.SyncRecord{}, err
		}
		return model.SyncRecord{}, fmt.Errorf("scan sync record: %w", err)
	}
	t, err := time.Parse(pkgSqlite.TimeLayout, syncedAt)
	if err != nil {
		return model.SyncRecord{}, fmt.Errorf("parse last_synced_at %q: %w", syncedAt, err)
	}
	rec.LastSyncedAt = t
	rec.Status = model.SyncStatus(status)
	return rec, nil
}
