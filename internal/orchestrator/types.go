package orchestrator

import (
	"time"

	"homework-planner/internal/model"
	syncpkg "homework-planner/internal/sync"
)

// Trigger is what started a cycle.
type Trigger string

const (
	TriggerStartup   Trigger = "startup"
	TriggerScheduled Trigger = "scheduled"
	TriggerManual    Trigger = "manual"
)

// Cycle stages, also the states of the cycle machine.
const (
	StageIdle       = "idle"
	StageExtracting = "extracting"
	StageDetecting  = "detecting"
	StagePlanning   = "planning"
	StageSyncing    = "syncing"
	StageFailed     = "failed"
)

// ChangeSummary counts the change detection result of a cycle.
type ChangeSummary struct {
	Skipped   int `json:"skipped"`
	New       int `json:"new"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Removed   int `json:"removed"`
}

// CycleOutcome is the structured result of one cycle.
type CycleOutcome struct {
	Success    bool            `json:"success"`
	Skipped    bool            `json:"skipped,omitempty"`
	Trigger    Trigger         `json:"trigger"`
	Stage      string          `json:"stage,omitempty"` // failing stage
	Code       string          `json:"code,omitempty"`
	Message    string          `json:"message"`
	StartedAt  time.Time       `json:"startedAt"`
	FinishedAt time.Time       `json:"finishedAt"`
	Changes    *ChangeSummary  `json:"changes,omitempty"`
	PlanDate   string          `json:"planDate,omitempty"`
	Sync       *syncpkg.Report `json:"sync,omitempty"`
}

// Status is the published pipeline state.
type Status struct {
	Running     bool               `json:"running"`
	Stage       string             `json:"stage"`
	Assignments []model.Assignment `json:"assignments"`
	FetchedAt   time.Time          `json:"fetchedAt,omitzero"`
	Plan        *model.DailyPlan   `json:"plan,omitempty"`
	PlannedAt   time.Time          `json:"plannedAt,omitzero"`
	LastOutcome *CycleOutcome      `json:"lastOutcome,omitempty"`
}
