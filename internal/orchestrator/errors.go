package orchestrator

import "errors"

const (
	CodeCycleRunning = "cycle_running"
	CodePanic        = "panic"
	CodeInternal     = "internal"
)

var (
	ErrCycleRunning = errors.New("cycle already running")
)

type coder interface {
	Code() string
}

// ErrorCode returns the stable code of err, or CodeInternal when it has none.
func ErrorCode(err error) string {
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return CodeInternal
}
