package sync

import (
	"errors"
	"fmt"
)

const CodeSyncFailed = "sync_failed"

var ErrTrackerNotConfigured = errors.New("tracker not configured")

// SyncError describes the failure to upsert one block.
type SyncError struct {
	SyncKey  string
	Activity string
	Op       string // find, create, update
	Err      error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync %q (%s) failed during %s: %v", e.Activity, e.SyncKey, e.Op, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }
func (e *SyncError) Code() string  { return CodeSyncFailed }
