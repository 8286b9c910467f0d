// Package gcalendar projects focus blocks into Google Calendar events.
// Each event carries its sync key as a private extended property, so lookups survive restarts.
package gcalendar

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	syncpkg "homework-planner/internal/sync"
	"homework-planner/pkg/datemath"
	"homework-planner/pkg/gcalendar"
	pkgLog "homework-planner/pkg/log"
)

const (
	keyProperty = "homework_sync_key"

	defaultRequestsPerMinute = 60
	defaultRetryAttempts     = 3
	defaultRetryDelay        = 500 * time.Millisecond
	defaultIndexSize         = 512
	defaultIndexTTL          = 6 * time.Hour
	maxDayEvents             = 250
)

// Calendar is the subset of the Calendar client the tracker needs.
type Calendar interface {
	CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
	GetEvent(ctx context.Context, calendarID, eventID string) (*gcalendar.Event, error)
	PatchEvent(ctx context.Context, req gcalendar.PatchEventRequest) (*gcalendar.Event, error)
	FindEventsByPrivateProperty(ctx context.Context, calendarID, name, value string) ([]gcalendar.Event, error)
	ListEvents(ctx context.Context, req gcalendar.ListEventsRequest) ([]gcalendar.Event, error)
}

// Config tunes the tracker. Zero values fall back to defaults.
type Config struct {
	CalendarID        string
	Timezone          string
	RequestsPerMinute int
	RetryAttempts     int
	RetryDelay        time.Duration
	IndexSize         int
	IndexTTL          time.Duration
}

// Tracker implements sync.Tracker over Google Calendar.
type Tracker struct {
	l       pkgLog.Logger
	cal     Calendar
	cfg     Config
	index   *expirable.LRU[string, string] // sync key -> event id
	limiter *rate.Limiter
	days    *datemath.Parser
}

// New creates a Calendar-backed tracker.
func New(l pkgLog.Logger, cal Calendar, cfg Config) *Tracker {
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = defaultRequestsPerMinute
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = defaultRetryAttempts
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	if cfg.IndexSize <= 0 {
		cfg.IndexSize = defaultIndexSize
	}
	if cfg.IndexTTL <= 0 {
		cfg.IndexTTL = defaultIndexTTL
	}

	days, err := datemath.NewParser(cfg.Timezone)
	if err != nil {
		l.Warnf(context.Background(), "gcalendar tracker: %v, day windows use UTC", err)
		days, _ = datemath.NewParser("UTC")
	}

	burst := cfg.RequestsPerMinute / 10
	if burst < 1 {
		burst = 1
	}

	return &Tracker{
		l:       l,
		cal:     cal,
		cfg:     cfg,
		index:   expirable.NewLRU[string, string](cfg.IndexSize, nil, cfg.IndexTTL),
		limiter: rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), burst),
		days:    days,
	}
}

func (t *Tracker) Name() string { return "gcalendar" }

// FindByKey checks the local index first, then searches the calendar by private property.
func (t *Tracker) FindByKey(ctx context.Context, key string) (syncpkg.TrackerTask, bool, error) {
	if eventID, ok := t.index.Get(key); ok {
		ev, err := call(ctx, t, func(ctx context.Context) (*gcalendar.Event, error) {
			return t.cal.GetEvent(ctx, t.cfg.CalendarID, eventID)
		})
		switch {
		case err == nil && !ev.Cancelled():
			return toTask(*ev, key), true, nil
		case err != nil && !gcalendar.IsNotFound(err):
			return syncpkg.TrackerTask{}, false, err
		}
		t.l.Debugf(ctx, "gcalendar tracker: indexed event %s for %s is gone", eventID, key)
		t.index.Remove(key)
	}

	events, err := call(ctx, t, func(ctx context.Context) ([]gcalendar.Event, error) {
		return t.cal.FindEventsByPrivateProperty(ctx, t.cfg.CalendarID, keyProperty, key)
	})
	if err != nil {
		return syncpkg.TrackerTask{}, false, err
	}
	for _, ev := range events {
		if ev.Cancelled() {
			continue
		}
		if len(events) > 1 {
			t.l.Warnf(ctx, "gcalendar tracker: %d events share key %s, using %s", len(events), key, ev.ID)
		}
		t.index.Add(key, ev.ID)
		return toTask(ev, key), true, nil
	}
	return syncpkg.TrackerTask{}, false, nil
}

// IndexDay lists the events of date in the calendar timezone, adds every keyed one to the
// index and returns them as tasks. Events without a sync key were not created here and are ignored.
func (t *Tracker) IndexDay(ctx context.Context, date string) ([]syncpkg.TrackerTask, error) {
	day, err := time.ParseInLocation(time.DateOnly, date, t.days.Location())
	if err != nil {
		return nil, fmt.Errorf("index day %q: %w", date, err)
	}
	events, err := call(ctx, t, func(ctx context.Context) ([]gcalendar.Event, error) {
		return t.cal.ListEvents(ctx, gcalendar.ListEventsRequest{
			CalendarID: t.cfg.CalendarID,
			TimeMin:    t.days.StartOfDay(day),
			TimeMax:    t.days.EndOfDay(day),
			MaxResults: maxDayEvents,
		})
	})
	if err != nil {
		return nil, err
	}

	var tasks []syncpkg.TrackerTask
	for _, ev := range events {
		key := ev.PrivateProperties[keyProperty]
		if key == "" || ev.Cancelled() {
			continue
		}
		t.index.Add(key, ev.ID)
		tasks = append(tasks, toTask(ev, key))
	}
	t.l.Debugf(ctx, "gcalendar tracker: indexed %d of %d events on %s", len(tasks), len(events), date)
	return tasks, nil
}

func (t *Tracker) Create(ctx context.Context, task syncpkg.TrackerTask) (syncpkg.TrackerTask, error) {
	ev, err := call(ctx, t, func(ctx context.Context) (*gcalendar.Event, error) {
		return t.cal.CreateEvent(ctx, gcalendar.CreateEventRequest{
			CalendarID:        t.cfg.CalendarID,
			Summary:           task.Title,
			Description:       task.Notes,
			StartTime:         task.Start,
			EndTime:           task.End,
			Timezone:          t.cfg.Timezone,
			PrivateProperties: map[string]string{keyProperty: task.Key},
		})
	})
	if err != nil {
		return syncpkg.TrackerTask{}, err
	}
	t.index.Add(task.Key, ev.ID)
	task.ID = ev.ID
	return task, nil
}

func (t *Tracker) Update(ctx context.Context, task syncpkg.TrackerTask) (syncpkg.TrackerTask, error) {
	if task.ID == "" {
		return syncpkg.TrackerTask{}, fmt.Errorf("update %s: missing event id", task.Key)
	}
	ev, err := call(ctx, t, func(ctx context.Context) (*gcalendar.Event, error) {
		return t.cal.PatchEvent(ctx, gcalendar.PatchEventRequest{
			CalendarID:  t.cfg.CalendarID,
			EventID:     task.ID,
			Summary:     task.Title,
			Description: task.Notes,
			StartTime:   task.Start,
			EndTime:     task.End,
			Timezone:    t.cfg.Timezone,
		})
	})
	if err != nil {
		return syncpkg.TrackerTask{}, err
	}
	t.index.Add(task.Key, ev.ID)
	return task, nil
}

// call waits for the rate limiter and retries retryable API failures.
// Permanent failures are returned after the first attempt.
func call[T any](ctx context.Context, t *Tracker, fn func(context.Context) (T, error)) (T, error) {
	var permanent error
	r := retry.New[T](retry.Config{
		MaxAttempts:   t.cfg.RetryAttempts,
		InitialDelay:  t.cfg.RetryDelay,
		BackoffPolicy: retry.BackoffExponential,
	})
	res, err := r.Do(ctx, func(ctx context.Context) (T, error) {
		var zero T
		if err := t.limiter.Wait(ctx); err != nil {
			permanent = err
			return zero, nil
		}
		v, err := fn(ctx)
		if err != nil && !gcalendar.IsRetryable(err) {
			permanent = err
			return zero, nil
		}
		return v, err
	})
	if permanent != nil {
		var zero T
		return zero, permanent
	}
	return res, err
}

func toTask(ev gcalendar.Event, key string) syncpkg.TrackerTask {
	return syncpkg.TrackerTask{
		ID:    ev.ID,
		Key:   key,
		Title: ev.Summary,
		Notes: ev.Description,
		Start: ev.StartTime,
		End:   ev.EndTime,
	}
}
