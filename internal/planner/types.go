package planner

import "time"

// Constraints shape the plan. Zero values mean "no preference".
type Constraints struct {
	StartAt      time.Time `json:"startAt,omitzero"`
	EndBy        time.Time `json:"endBy,omitzero"`
	FocusMinutes int       `json:"focusMinutes,omitempty"`
	BreakMinutes int       `json:"breakMinutes,omitempty"`
	Notes        string    `json:"notes,omitempty"`
}
