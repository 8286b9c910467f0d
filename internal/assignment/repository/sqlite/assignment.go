package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"homework-planner/internal/assignment/repository"
	"homework-planner/internal/model"
	pkgSqlite "homework-planner/pkg/sqlite"
)

const assignmentColumns = `id, external_id, title, subject, due_date, description, status, fingerprint`

type scanner interface {
	Scan(dest ...any) error
}

func scanAssignment(row scanner) (model.Assignment, error) {
	var (
		a      model.Assignment
		due    string
		status string
	)
	if err := row.Scan(&a.ID, &a.ExternalID, &a.Title, &a.Subject, &due, &a.Description, &status, &a.ContentFingerprint); err != nil {
		return model.Assignment{}, err
	}
	t, err := time.Parse(pkgSqlite.TimeLayout, due)
	if err != nil {
		return model.Assignment{}, fmt.Errorf("assignment %s: bad due_date %q: %w", a.ID, due, err)
	}
	a.DueDate = t.UTC()
	a.Status = model.AssignmentStatus(status)
	return a, nil
}

func (r *implRepository) List(ctx context.Context) ([]model.Assignment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+assignmentColumns+` FROM assignments ORDER BY due_date, external_id`)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	var out []model.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *implRepository) Get(ctx context.Context, id string) (model.Assignment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+assignmentColumns+` FROM assignments WHERE id = ?`, id)
	a, err := scanAssignment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Assignment{}, repository.ErrNotFound
	}
	if err != nil {
		return model.Assignment{}, fmt.Errorf("get assignment %s: %w", id, err)
	}
	return a, nil
}

func (r *implRepository) Upsert(ctx context.Context, items []model.Assignment) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO assignments (`+assignmentColumns+`, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(external_id) DO UPDATE SET
			id = excluded.id,
			title = excluded.title,
			subject = excluded.subject,
			due_date = excluded.due_date,
			description = excluded.description,
			status = excluded.status,
			fingerprint = excluded.fingerprint,
			updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(pkgSqlite.TimeLayout)
	for _, a := range items {
		_, err := stmt.ExecContext(ctx,
			a.ID, a.ExternalID, a.Title, a.Subject,
			a.DueDate.UTC().Format(pkgSqlite.TimeLayout),
			a.Description, string(a.Status), a.ContentFingerprint, now,
		)
		if err != nil {
			return fmt.Errorf("upsert assignment %s: %w", a.ExternalID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	r.l.Debugf(ctx, "assignment repository: upserted %d rows", len(items))
	return nil
}

func (r *implRepository) UpdateStatus(ctx context.Context, id string, status model.AssignmentStatus) (model.Assignment, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE assignments SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC().Format(pkgSqlite.TimeLayout), id,
	)
	if err != nil {
		return model.Assignment{}, fmt.Errorf("update assignment %s status: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return model.Assignment{}, repository.ErrNotFound
	}
	return r.Get(ctx, id)
}
