package sync

import "time"

// Outcome is the result of upserting one block.
type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeUpdated   Outcome = "updated"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeFailed    Outcome = "failed"
)

// TrackerTask is the tracker-side representation of a focus block.
type TrackerTask struct {
	ID    string    `json:"id"`
	Key   string    `json:"key"`
	Title string    `json:"title"`
	Notes string    `json:"notes,omitempty"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// SameContent reports whether t already matches want's text and window.
func (t TrackerTask) SameContent(want TrackerTask) bool {
	return t.Title == want.Title &&
		t.Notes == want.Notes &&
		t.Start.Equal(want.Start) &&
		t.End.Equal(want.End)
}

// BlockResult is the outcome for one focus block.
type BlockResult struct {
	SyncKey             string     `json:"syncKey"`
	Activity            string     `json:"activity"`
	StartTime           time.Time  `json:"startTime"`
	RelatedAssignmentID string     `json:"relatedAssignmentId,omitempty"`
	Outcome             Outcome    `json:"outcome"`
	TrackerTaskID       string     `json:"trackerTaskId,omitempty"`
	Err                 *SyncError `json:"-"`
	Error               string     `json:"error,omitempty"`
}

// Report collects per-block results of one Sync call.
type Report struct {
	Tracker string        `json:"tracker,omitempty"`
	Date    string        `json:"date"`
	Skipped bool          `json:"skipped,omitempty"`
	Results []BlockResult `json:"results"`
	// Stale are tracker tasks on the plan date whose key is not part of the plan.
	Stale []TrackerTask `json:"stale,omitempty"`
}

// Count returns how many blocks ended with o.
func (r Report) Count(o Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// Failed returns the per-block errors in block order.
func (r Report) Failed() []*SyncError {
	var out []*SyncError
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res.Err)
		}
	}
	return out
}
