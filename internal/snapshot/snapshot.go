// Package snapshot holds the latest pipeline output as immutable values swapped atomically.
package snapshot

import (
	"slices"
	"sync/atomic"
	"time"

	"homework-planner/internal/model"
)

// Snapshot is a complete view of the latest assignments and plan.
// Values returned by Store are never mutated afterwards.
type Snapshot struct {
	Assignments []model.Assignment
	FetchedAt   time.Time
	Plan        *model.DailyPlan
	PlannedAt   time.Time
}

// HasAssignments reports whether assignments were ever fetched.
func (s *Snapshot) HasAssignments() bool {
	return !s.FetchedAt.IsZero()
}

// Store publishes snapshots with replace-on-write semantics.
type Store struct {
	cur atomic.Pointer[Snapshot]
}

// NewStore creates an empty store.
func NewStore() *Store {
	s := &Store{}
	s.cur.Store(&Snapshot{})
	return s
}

// Load returns the current snapshot. Callers must not modify it.
func (s *Store) Load() *Snapshot {
	return s.cur.Load()
}

// SetAssignments publishes a new assignment list, keeping the current plan.
func (s *Store) SetAssignments(list []model.Assignment, at time.Time) *Snapshot {
	owned := slices.Clone(list)
	return s.update(func(next *Snapshot) {
		next.Assignments = owned
		next.FetchedAt = at
	})
}

// SetPlan publishes a new plan, keeping the current assignments.
func (s *Store) SetPlan(plan model.DailyPlan, at time.Time) *Snapshot {
	plan.Blocks = slices.Clone(plan.Blocks)
	return s.update(func(next *Snapshot) {
		next.Plan = &plan
		next.PlannedAt = at
	})
}

// Publish replaces assignments and plan in one swap, so readers never see one without the other.
func (s *Store) Publish(list []model.Assignment, plan model.DailyPlan, at time.Time) *Snapshot {
	owned := slices.Clone(list)
	plan.Blocks = slices.Clone(plan.Blocks)
	return s.update(func(next *Snapshot) {
		next.Assignments = owned
		next.FetchedAt = at
		next.Plan = &plan
		next.PlannedAt = at
	})
}

func (s *Store) update(apply func(*Snapshot)) *Snapshot {
	for {
		old := s.cur.Load()
		next := *old
		apply(&next)
		if s.cur.CompareAndSwap(old, &next) {
			return &next
		}
	}
}
