package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"homework-planner/internal/assignment"
	"homework-planner/internal/model"
	"homework-planner/pkg/datemath"
)

func uuidString() string { return uuid.NewString() }

// Normalize converts raw rows into pending assignments with fresh internal IDs.
// Within one batch the first row for an external ID wins.
func (uc *implUseCase) Normalize(ctx context.Context, rows []model.RawAssignmentRow) (assignment.NormalizeOutput, error) {
	out := assignment.NormalizeOutput{
		Assignments: make([]model.Assignment, 0, len(rows)),
	}
	seen := make(map[string]struct{}, len(rows))

	for _, row := range rows {
		a, err := uc.normalizeRow(row)
		if err != nil {
			uc.l.Warnf(ctx, "Normalize: skipping row %+v: %v", row, err)
			out.Skipped = append(out.Skipped, assignment.SkippedRow{Row: row, Err: err})
			continue
		}
		if _, dup := seen[a.ExternalID]; dup {
			uc.l.Debugf(ctx, "Normalize: duplicate %s in batch", a.ExternalID)
			continue
		}
		seen[a.ExternalID] = struct{}{}
		out.Assignments = append(out.Assignments, a)
	}

	uc.l.Infof(ctx, "Normalize: %d assignments, %d skipped", len(out.Assignments), len(out.Skipped))
	return out, nil
}

func (uc *implUseCase) normalizeRow(row model.RawAssignmentRow) (model.Assignment, error) {
	subject := strings.TrimSpace(row.Subject)
	title := strings.TrimSpace(row.Title)
	rawDue := strings.TrimSpace(row.DueDate)

	if subject == "" {
		return model.Assignment{}, assignment.ErrEmptySubject
	}
	if title == "" {
		return model.Assignment{}, assignment.ErrEmptyTitle
	}

	due, err := datemath.ParseDueDate(rawDue)
	if err != nil {
		return model.Assignment{}, fmt.Errorf("%w: %w", assignment.ErrInvalidDueDate, err)
	}

	return model.Assignment{
		ID:                 uc.newID(),
		ExternalID:         assignment.ExternalID(subject, rawDue, title),
		Title:              title,
		Subject:            subject,
		DueDate:            due,
		Status:             model.AssignmentStatusPending,
		ContentFingerprint: assignment.Fingerprint(title, subject, due),
	}, nil
}
