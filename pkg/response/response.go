package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewOKResp returns a new OK response with the given data.
func NewOKResp(data any) Resp {
	return Resp{
		ErrorCode: 0,
		Message:   MessageSuccess,
		Data:      data,
	}
}

// OK sends 200 JSON with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, NewOKResp(data))
}

// Error sends an error response. An *HTTPError picks the status and code;
// any other error is a 400 with its message.
func Error(c *gin.Context, err error, data any) {
	status, code, message := http.StatusBadRequest, CodeBadRequest, err.Error()

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		status, code, message = httpErr.StatusCode, httpErr.Code, httpErr.Message
	}

	c.JSON(status, Resp{
		ErrorCode: status,
		Code:      code,
		Message:   message,
		Data:      data,
	})
}

// InternalError sends 500 internal server error.
func InternalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, Resp{
		ErrorCode: InternalServerErrorCode,
		Code:      CodeInternal,
		Message:   DefaultErrorMessage,
	})
}
