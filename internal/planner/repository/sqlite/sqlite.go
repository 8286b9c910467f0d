package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"homework-planner/internal/model"
	"homework-planner/internal/planner/repository"
	pkgLog "homework-planner/pkg/log"
	pkgSqlite "homework-planner/pkg/sqlite"
)

type implRepository struct {
	db *sql.DB
	l  pkgLog.Logger
}

// New creates a SQLite plan repository over an opened database.
func New(db *sql.DB, l pkgLog.Logger) repository.Repository {
	return &implRepository{db: db, l: l}
}

func (r *implRepository) Save(ctx context.Context, plan model.DailyPlan) error {
	content, err := json.Marshal(plan.Blocks)
	if err != nil {
		return fmt.Errorf("marshal plan %s: %w", plan.Date, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO plans (date, content, reasoning, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			content = excluded.content,
			reasoning = excluded.reasoning,
			created_at = excluded.created_at`,
		plan.Date, string(content), plan.Reasoning, time.Now().UTC().Format(pkgSqlite.TimeLayout),
	)
	if err != nil {
		return fmt.Errorf("save plan %s: %w", plan.Date, err)
	}
	r.l.Debugf(ctx, "plan repository: saved %s with %d blocks", plan.Date, len(plan.Blocks))
	return nil
}

func (r *implRepository) Get(ctx context.Context, date string) (model.DailyPlan, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT date, content, reasoning FROM plans WHERE date = ?`, date))
}

func (r *implRepository) Latest(ctx context.Context) (model.DailyPlan, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT date, content, reasoning FROM plans ORDER BY created_at DESC, date DESC LIMIT 1`))
}

func (r *implRepository) scanOne(row *sql.Row) (model.DailyPlan, error) {
	var (
		plan    model.DailyPlan
		content string
	)
	if err := row.Scan(&plan.Date, &content, &plan.Reasoning); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.DailyPlan{}, repository.ErrNotFound
		}
		return model.DailyPlan{}, fmt.Errorf("scan plan: %w", err)
	}
	if err := json.Unmarshal([]byte(content), &plan.Blocks); err != nil {
		return model.DailyPlan{}, fmt.Errorf("decode plan %s: %w", plan.Date, err)
	}
	return plan, nil
}
