package handler

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/hospitalar/visitas-api/pkg/errors"
)

// Response is the uniform outcome shape of every service-boundary call.
type Response struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Success: true,
		Data:    data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Success: false,
		Error:   message,
	}
}

// Fail translates a service error into the uniform outcome. Internal causes
// are attached to the context for the error-collector middleware to log;
// the client only ever sees the sanitized message.
func Fail(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	if appErr.Code == apperrors.ErrInternal {
		_ = c.Error(err)
	}
	c.JSON(appErr.StatusCode(), NewErrorResponse(appErr.Message))
}
