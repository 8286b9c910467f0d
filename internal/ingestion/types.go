package ingestion

import (
	"context"
	"strings"
	"time"
)

// Credentials are the portal login fields.
type Credentials struct {
	CustomerID string
	Username   string
	Password   string
}

// Complete reports whether every login field is set.
func (c Credentials) Complete() bool {
	return strings.TrimSpace(c.CustomerID) != "" &&
		strings.TrimSpace(c.Username) != "" &&
		c.Password != ""
}

// Waiter pauses between poll attempts.
type Waiter interface {
	Wait(ctx context.Context, d time.Duration) error
}

// TimerWaiter waits on a real timer and returns early when ctx is done.
type TimerWaiter struct{}

func (TimerWaiter) Wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
