// Package memory is an in-process tracker used for dry runs and tests.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	syncpkg "homework-planner/internal/sync"
)

// Tracker keeps tasks in a map keyed by sync key.
type Tracker struct {
	mu     sync.Mutex
	byKey  map[string]syncpkg.TrackerTask
	nextID int

	Creates int
	Updates int
}

// New creates an empty in-memory tracker.
func New() *Tracker {
	return &Tracker{byKey: make(map[string]syncpkg.TrackerTask)}
}

func (t *Tracker) Name() string { return "memory" }

func (t *Tracker) FindByKey(ctx context.Context, key string) (syncpkg.TrackerTask, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	task, ok := t.byKey[key]
	return task, ok, nil
}

func (t *Tracker) Create(ctx context.Context, task syncpkg.TrackerTask) (syncpkg.TrackerTask, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	task.ID = fmt.Sprintf("mem-%d", t.nextID)
	t.byKey[task.Key] = task
	t.Creates++
	return task, nil
}

func (t *Tracker) Update(ctx context.Context, task syncpkg.TrackerTask) (syncpkg.TrackerTask, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cur, ok := t.byKey[task.Key]
	if !ok || cur.ID != task.ID {
		return syncpkg.TrackerTask{}, fmt.Errorf("task %s not found", task.ID)
	}
	t.byKey[task.Key] = task
	t.Updates++
	return task, nil
}

// IndexDay returns the tasks starting on date, read as a UTC calendar day.
func (t *Tracker) IndexDay(ctx context.Context, date string) ([]syncpkg.TrackerTask, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []syncpkg.TrackerTask
	for _, task := range t.byKey {
		if task.Start.UTC().Format(time.DateOnly) == date {
			out = append(out, task)
		}
	}
	return out, nil
}

// Tasks returns a copy of every stored task.
func (t *Tracker) Tasks() []syncpkg.TrackerTask {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]syncpkg.TrackerTask, 0, len(t.byKey))
	for _, task := range t.byKey {
		out = append(out, task)
	}
	return out
}
