package model

import "time"

// SyncStatus is the state of one assignment's projection into the tracker.
type SyncStatus string

const (
	SyncStatusSynced  SyncStatus = "synced"
	SyncStatusFailed  SyncStatus = "failed"
	SyncStatusPending SyncStatus = "pending"
)

// SyncRecord maps an assignment to the tracker task that represents it.
type SyncRecord struct {
	AssignmentID  string     `json:"assignmentId"`
	TrackerTaskID string     `json:"trackerTaskId"`
	SyncKey       string     `json:"syncKey"`
	LastSyncedAt  time.Time  `json:"lastSyncedAt"`
	Status        SyncStatus `json:"syncStatus"`
}
