package model

import "time"

// BlockKind classifies a schedule block.
type BlockKind string

const (
	BlockKindFocus BlockKind = "focus"
	BlockKindBreak BlockKind = "break"
	BlockKindFree  BlockKind = "free"
)

// PlanDateLayout is the calendar-day format of DailyPlan.Date.
const PlanDateLayout = "2006-01-02"

// ScheduleBlock is one time window in a daily plan. EndTime is always after StartTime.
type ScheduleBlock struct {
	StartTime           time.Time `json:"startTime"`
	EndTime             time.Time `json:"endTime"`
	Activity            string    `json:"activity"`
	Kind                BlockKind `json:"type"`
	RelatedAssignmentID string    `json:"relatedAssignmentId,omitempty"`
}

// Duration returns the block length.
func (b ScheduleBlock) Duration() time.Duration {
	return b.EndTime.Sub(b.StartTime)
}

// DailyPlan is a time-blocked schedule for one calendar day.
// Blocks are sorted by StartTime and never overlap.
type DailyPlan struct {
	Date      string          `json:"date"`
	Reasoning string          `json:"reasoning"`
	Blocks    []ScheduleBlock `json:"blocks"`
}

// FocusBlocks returns the focus blocks of the plan in order.
func (p DailyPlan) FocusBlocks() []ScheduleBlock {
	out := make([]ScheduleBlock, 0, len(p.Blocks))
	for _, b := range p.Blocks {
		if b.Kind == BlockKindFocus {
			out = append(out, b)
		}
	}
	return out
}
