package response

import "net/http"

// HTTPError is a domain error already translated for HTTP callers.
type HTTPError struct {
	StatusCode int
	Code       string
	Message    string
}

// NewHTTPError builds an HTTPError.
func NewHTTPError(status int, code, message string) *HTTPError {
	return &HTTPError{StatusCode: status, Code: code, Message: message}
}

func (e *HTTPError) Error() string { return e.Message }

// ErrInternal hides the cause of unexpected failures from callers.
var ErrInternal = NewHTTPError(http.StatusInternalServerError, CodeInternal, DefaultErrorMessage)
