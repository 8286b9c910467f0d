package response

// Resp is the standard JSON response body.
type Resp struct {
	ErrorCode int    `json:"error_code"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
}

// Response messages and codes.
const (
	MessageSuccess          = "Success"
	DefaultErrorMessage     = "Something went wrong"
	InternalServerErrorCode = 500
	CodeInternal            = "internal"
	CodeBadRequest          = "bad_request"
)
