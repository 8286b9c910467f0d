package assignment

import "homework-planner/internal/model"

// NormalizeOutput is the result of Normalize.
type NormalizeOutput struct {
	Assignments []model.Assignment
	Skipped     []SkippedRow
}

// SkippedRow is a raw row that could not be normalized.
type SkippedRow struct {
	Row model.RawAssignmentRow
	Err error
}

// ChangeSet classifies incoming assignments against the stored ones.
type ChangeSet struct {
	// Current is every incoming assignment in input order, carrying stored IDs and statuses where known.
	Current   []model.Assignment
	New       []model.Assignment
	Updated   []model.Assignment
	Unchanged []model.Assignment
	// Removed are stored assignments absent from this sighting. They are informational only.
	Removed []model.Assignment
}

// HasChanges reports whether anything new or modified was seen.
func (c ChangeSet) HasChanges() bool {
	return len(c.New) > 0 || len(c.Updated) > 0
}
