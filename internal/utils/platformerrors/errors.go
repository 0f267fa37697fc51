package platformerrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Layer identifies where in the stack an error originated.
type Layer string

const (
	LayerHandler        Layer = "handler"
	LayerDomain         Layer = "domain"
	LayerRepository     Layer = "repository"
	LayerInfrastructure Layer = "infrastructure"
)

// ErrorType classifies an error for transport mapping.
type ErrorType string

const (
	ErrorTypeValidation     ErrorType = "validation"
	ErrorTypeNotFound       ErrorType = "not_found"
	ErrorTypeUnauthorized   ErrorType = "unauthorized"
	ErrorTypeForbidden      ErrorType = "forbidden"
	ErrorTypeConflict       ErrorType = "conflict"
	ErrorTypeRateLimited    ErrorType = "rate_limited"
	ErrorTypeDatabaseError  ErrorType = "database_error"
	ErrorTypeExternal       ErrorType = "external"
	ErrorTypeInternal       ErrorType = "internal"
	ErrorTypeNotImplemented ErrorType = "not_implemented"
)

// PlatformError is the error shape carried between layers. Code is a
// stable trace identifier that can be grepped from logs back to the
// call site that produced it.
type PlatformError struct {
	Layer   Layer
	Type    ErrorType
	Message string
	Code    string
	Context map[string]any
	Err     error
}

func (e *PlatformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s/%s] %s: %v", e.Layer, e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s/%s] %s", e.Layer, e.Type, e.Message)
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

// NewError builds a PlatformError with an explicit type and trace code.
func NewError(_ context.Context, layer Layer, errType ErrorType, message string, err error, code string) error {
	return &PlatformError{
		Layer:   layer,
		Type:    errType,
		Message: message,
		Code:    code,
		Err:     err,
	}
}

// NewErrorWithContext is NewError plus structured detail for the logs.
func NewErrorWithContext(ctx context.Context, layer Layer, errType ErrorType, message string, err error, code string, errCtx map[string]any) error {
	pe := NewError(ctx, layer, errType, message, err, code).(*PlatformError)
	pe.Context = errCtx
	return pe
}

// AsError wraps err while preserving its type when it already is a
// PlatformError, so classification survives layer crossings.
func AsError(ctx context.Context, layer Layer, err error, message string) error {
	return AsErrorWithUUID(ctx, layer, err, message, "")
}

// AsErrorWithUUID is AsError with an explicit trace code.
func AsErrorWithUUID(_ context.Context, layer Layer, err error, message string, code string) error {
	errType := ErrorTypeInternal
	var pe *PlatformError
	if errors.As(err, &pe) {
		errType = pe.Type
		if code == "" {
			code = pe.Code
		}
	}
	return &PlatformError{
		Layer:   layer,
		Type:    errType,
		Message: message,
		Code:    code,
		Err:     err,
	}
}

// IsErrorType reports whether err carries the given classification.
func IsErrorType(err error, errType ErrorType) bool {
	var pe *PlatformError
	if errors.As(err, &pe) {
		return pe.Type == errType
	}
	return false
}

func IsValidationError(err error) bool {
	return IsErrorType(err, ErrorTypeValidation)
}

// GetErrorType returns the classification of err, defaulting to
// internal for plain errors.
func GetErrorType(err error) ErrorType {
	var pe *PlatformError
	if errors.As(err, &pe) {
		return pe.Type
	}
	return ErrorTypeInternal
}

// HTTPStatus maps a classification to the response status code.
func HTTPStatus(errType ErrorType) int {
	switch errType {
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	case ErrorTypeForbidden:
		return http.StatusForbidden
	case ErrorTypeConflict:
		return http.StatusConflict
	case ErrorTypeRateLimited:
		return http.StatusTooManyRequests
	case ErrorTypeNotImplemented:
		return http.StatusNotImplemented
	case ErrorTypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
