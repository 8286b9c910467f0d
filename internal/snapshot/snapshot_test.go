package snapshot

import (
	"sync"
	"testing"
	"time"

	"homework-planner/internal/model"
)

func TestStoreSwapsWithoutMutatingReaders(t *testing.T) {
	s := NewStore()
	if s.Load().HasAssignments() {
		t.Fatal("new store should be empty")
	}

	list := []model.Assignment{{ID: "a1", Title: "Ex 1"}}
	at := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	s.SetAssignments(list, at)
	before := s.Load()

	list[0].Title = "mutated by caller"
	s.SetPlan(model.DailyPlan{Date: "2025-01-01"}, at)

	if before.Assignments[0].Title != "Ex 1" {
		t.Errorf("published snapshot changed: %q", before.Assignments[0].Title)
	}
	if before.Plan != nil {
		t.Error("old snapshot must not see the new plan")
	}

	now := s.Load()
	if now.Plan == nil || now.Plan.Date != "2025-01-01" || len(now.Assignments) != 1 {
		t.Errorf("unexpected snapshot: %+v", now)
	}
}

func TestStoreConcurrentWriters(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetAssignments([]model.Assignment{{ID: "a"}}, time.Now())
		}()
		go func() {
			defer wg.Done()
			s.SetPlan(model.DailyPlan{Date: "2025-01-01"}, time.Now())
		}()
	}
	wg.Wait()

	snap := s.Load()
	if !snap.HasAssignments() || snap.Plan == nil {
		t.Errorf("a writer lost its update: %+v", snap)
	}
}

func TestStorePublishReplacesBoth(t *testing.T) {
	s := NewStore()
	at := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	s.Publish([]model.Assignment{{ID: "a1"}}, model.DailyPlan{Date: "2025-01-01"}, at)
	old := s.Load()

	later := at.Add(time.Hour)
	blocks := []model.ScheduleBlock{{Activity: "Ex 2"}}
	s.Publish([]model.Assignment{{ID: "a1"}, {ID: "a2"}}, model.DailyPlan{Date: "2025-01-02", Blocks: blocks}, later)
	blocks[0].Activity = "mutated by caller"

	now := s.Load()
	if len(now.Assignments) != 2 || now.Plan == nil || now.Plan.Date != "2025-01-02" {
		t.Fatalf("unexpected snapshot: %+v", now)
	}
	if now.Plan.Blocks[0].Activity != "Ex 2" {
		t.Errorf("published plan shares caller blocks: %q", now.Plan.Blocks[0].Activity)
	}
	if !now.FetchedAt.Equal(later) || !now.PlannedAt.Equal(later) {
		t.Errorf("timestamps not updated: %v %v", now.FetchedAt, now.PlannedAt)
	}
	if len(old.Assignments) != 1 || old.Plan.Date != "2025-01-01" {
		t.Errorf("previous snapshot changed: %+v", old)
	}
}
