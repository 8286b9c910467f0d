package ingestion

import (
	"errors"
	"fmt"
	"time"
)

const (
	CodeAuthFailed        = "auth_failed"
	CodeNavigationTimeout = "navigation_timeout"
	CodeParseFailed       = "parse_failed"
)

var ErrMissingCredentials = errors.New("portal credentials are incomplete")

// AuthenticationError is returned when the portal rejects the credentials.
type AuthenticationError struct {
	Message string
	Err     error
}

func (e *AuthenticationError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return "authentication failed: " + e.Message
}

func (e *AuthenticationError) Unwrap() error { return e.Err }
func (e *AuthenticationError) Code() string  { return CodeAuthFailed }

// NavigationTimeoutError is returned when an expected page or element never appears within its poll budget.
type NavigationTimeoutError struct {
	Stage        string
	Attempts     int
	Interval     time.Duration
	LastLocation string
	Err          error
}

func (e *NavigationTimeoutError) Error() string {
	msg := fmt.Sprintf("navigation timeout during %s after %d attempts every %s", e.Stage, e.Attempts, e.Interval)
	if e.LastLocation != "" {
		msg += " (last location " + e.LastLocation + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *NavigationTimeoutError) Unwrap() error { return e.Err }
func (e *NavigationTimeoutError) Code() string  { return CodeNavigationTimeout }

// ParseError is returned when the page structure does not match expectations.
type ParseError struct {
	Stage   string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	msg := "parse failed"
	if e.Stage != "" {
		msg += " during " + e.Stage
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }
func (e *ParseError) Code() string  { return CodeParseFailed }
