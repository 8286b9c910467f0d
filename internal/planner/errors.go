package planner

import (
	"errors"
	"strings"
)

const (
	CodeEmptyResponse = "empty_response"
	CodePlanInvalid   = "plan_invalid"
)

type codedError struct {
	msg  string
	code string
}

func (e *codedError) Error() string { return e.msg }
func (e *codedError) Code() string  { return e.code }

var (
	// ErrEmptyResponse is returned when the model reply holds no JSON object.
	ErrEmptyResponse error = &codedError{msg: "model returned no JSON object", code: CodeEmptyResponse}

	ErrPlanNotFound = errors.New("plan not found")
)

// PlanValidationError is returned when the model's plan does not match the expected shape.
// Error() stays generic; Details and the cause keep the full diagnostics.
type PlanValidationError struct {
	Details []string
	Err     error
}

func (e *PlanValidationError) Error() string { return "plan validation failed" }
func (e *PlanValidationError) Unwrap() error { return e.Err }
func (e *PlanValidationError) Code() string  { return CodePlanInvalid }

// Diagnostic joins every detail for logs.
func (e *PlanValidationError) Diagnostic() string {
	return strings.Join(e.Details, "; ")
}
