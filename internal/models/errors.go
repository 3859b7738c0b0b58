package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
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

// Error codes for the friendship lifecycle. Clients branch on these, so they
// are part of the API contract.
const (
	CodeNotFound        = "NOT_FOUND"
	CodeTargetNotFound  = "TARGET_NOT_FOUND"
	CodeSelfTarget      = "SELF_TARGET"
	CodeAlreadyAccepted = "ALREADY_ACCEPTED"
	CodeRequestExists   = "REQUEST_ALREADY_EXISTS"
	CodeForbidden       = "FORBIDDEN"
	CodeNotPending      = "NOT_PENDING"
	CodeConflict        = "CONFLICT"
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeInternal        = "INTERNAL_ERROR"
)

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewTargetNotFoundError(handle string) *AppError {
	return &AppError{
		Code:    CodeTargetNotFound,
		Message: fmt.Sprintf("User %q not found", handle),
	}
}

func NewSelfTargetError() *AppError {
	return &AppError{
		Code:    CodeSelfTarget,
		Message: "Cannot send a friend request to yourself",
	}
}

func NewAlreadyAcceptedError() *AppError {
	return &AppError{
		Code:    CodeAlreadyAccepted,
		Message: "You are already friends",
	}
}

func NewRequestExistsError() *AppError {
	return &AppError{
		Code:    CodeRequestExists,
		Message: "A friend request already exists between these users",
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
	}
}

func NewNotPendingError() *AppError {
	return &AppError{
		Code:    CodeNotPending,
		Message: "Friend request is not pending",
	}
}

func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
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

// CodeOf extracts the application error code, or CodeInternal for plain errors.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	var appErr *AppError
	if errors.As(err, &appErr) {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
