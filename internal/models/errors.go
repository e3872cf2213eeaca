package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes carried by AppError.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodePrecondition = "PRECONDITION_FAILED"
	CodeConflict     = "CONFLICT"
	CodeUpstream     = "UPSTREAM_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeDisabled     = "FEATURE_DISABLED"
	CodeInternal     = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

// NewPreconditionError reports a valid entity in the wrong state for the requested operation.
func NewPreconditionError(message string) *AppError {
	return &AppError{
		Code:    CodePrecondition,
		Message: message,
	}
}

// NewConflictError reports an operation refused because of the entity's lock state.
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
	}
}

// NewUpstreamError wraps a failed call to an external service.
func NewUpstreamError(service string, err error) *AppError {
	return &AppError{
		Code:    CodeUpstream,
		Message: service + " request failed",
		Err:     err,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// NewDisabledError reports that an operator switched a pipeline stage off.
func NewDisabledError(stage string) *AppError {
	return &AppError{Code: CodeDisabled, Message: fmt.Sprintf("%s is disabled", stage)}
}

// StatusFor maps an error to the HTTP status it is reported with.
func StatusFor(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeValidation:
		return fiber.StatusBadRequest
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodePrecondition, CodeConflict:
		return fiber.StatusUnprocessableEntity
	case CodeUpstream:
		return fiber.StatusBadGateway
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	case CodeDisabled:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(ErrorBody(err))
}

// ErrorBody builds the error envelope for err.
func ErrorBody(err error) ErrorResponse {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return ErrorResponse{Error: err.Error()}
	}
	response := ErrorResponse{
		Error: appErr.Message,
		Code:  appErr.Code,
	}
	if appErr.Err != nil {
		response.Details = appErr.Err.Error()
	}
	return response
}
