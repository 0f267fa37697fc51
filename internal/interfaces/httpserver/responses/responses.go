// Package responses holds the shared HTTP error envelope and the DTO
// subpackages for each resource.
package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"visioneer-server/internal/utils/platformerrors"
)

// ErrorResponse is the wire shape of every error the API returns.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the machine-readable code and human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// HandleError maps a domain error to an HTTP response. Platform errors
// carry their own type and trace code; anything else becomes a 500.
func HandleError(c *gin.Context, err error, message string) {
	errType := platformerrors.GetErrorType(err)
	status := platformerrors.HTTPStatus(errType)

	detail := ErrorDetail{
		Code:    "internal_error",
		Message: message,
		Type:    string(errType),
	}
	var platformErr *platformerrors.PlatformError
	if errors.As(err, &platformErr) {
		detail.Code = platformErr.Code
		if platformErr.Message != "" {
			detail.Message = platformErr.Message
		}
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: detail})
}

// HandleNewError responds with a fresh error carrying a short
// endpoint-local code, for failures that have no underlying domain
// error.
func HandleNewError(c *gin.Context, errType platformerrors.ErrorType, message string, code string) {
	c.AbortWithStatusJSON(platformerrors.HTTPStatus(errType), ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Type:    string(errType),
		},
	})
}

// HandleErrorWithStatus responds with an explicit status, used by
// middlewares that decide the status themselves.
func HandleErrorWithStatus(c *gin.Context, status int, err error, message string) {
	detail := ErrorDetail{
		Code:    http.StatusText(status),
		Message: message,
		Type:    string(platformerrors.GetErrorType(err)),
	}
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: detail})
}
