package model

import "time"

// AssignmentStatus is the completion state of an assignment.
type AssignmentStatus string

const (
	AssignmentStatusPending   AssignmentStatus = "pending"
	AssignmentStatusCompleted AssignmentStatus = "completed"
)

// IsValid reports whether s is a known status.
func (s AssignmentStatus) IsValid() bool {
	return s == AssignmentStatusPending || s == AssignmentStatusCompleted
}

// RawAssignmentRow is one subject/title fragment scraped from the portal table.
type RawAssignmentRow struct {
	Subject string `json:"subject" yaml:"subject"`
	Title   string `json:"title" yaml:"title"`
	DueDate string `json:"dueDate" yaml:"due_date"` // DD/MM/YYYY as shown by the portal
}

// Assignment is the canonical homework record.
// Identity across cycles is ExternalID; ID is internal and never derived from source data.
type Assignment struct {
	ID                 string           `json:"id"`
	ExternalID         string           `json:"externalId"`
	Title              string           `json:"title"`
	Subject            string           `json:"subject"`
	DueDate            time.Time        `json:"dueDate"`
	Description        string           `json:"description,omitempty"`
	Status             AssignmentStatus `json:"status"`
	ContentFingerprint string           `json:"contentFingerprint"`
}

// IsPending reports whether the assignment still needs work.
func (a Assignment) IsPending() bool {
	return a.Status != AssignmentStatusCompleted
}
