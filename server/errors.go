package server

import (
	"net/http"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"

	"github.com/ishulabs/captable"
)

// ErrorResponse is the uniform error envelope every failure surfaces as,
// including unmatched routes and unexpected panics. Stack traces never
// reach the client; they are only logged.
type ErrorResponse struct {
	StatusCode int          `json:"statusCode"`
	Error      string       `json:"error"`
	Message    string       `json:"message"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError is one violated constraint; validation reports every
// violation, not just the first
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// categoryStatus is the single place domain error kinds are mapped to
// HTTP statuses. Handlers never pick status codes themselves.
func categoryStatus(category errors.Category) int {
	switch category {
	case errors.CategoryValidation, errors.CategoryBadInput:
		return fiber.StatusBadRequest
	case errors.CategoryAuth:
		return fiber.StatusUnauthorized
	case errors.CategoryAuthz:
		return fiber.StatusForbidden
	case errors.CategoryNotFound:
		return fiber.StatusNotFound
	case errors.CategoryConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// NewErrorHandler builds the fiber error handler that acts as the
// normalization boundary: domain errors are thrown anywhere and mapped to
// the envelope exactly once, here.
func NewErrorHandler(logger captable.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var violations validation.Errors
		if errors.As(err, &violations) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				StatusCode: fiber.StatusBadRequest,
				Error:      http.StatusText(fiber.StatusBadRequest),
				Message:    "Invalid input",
				Details:    fieldErrors(violations),
			})
		}

		var rich *errors.Error
		if !errors.As(err, &rich) && repository.IsRecordNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				StatusCode: fiber.StatusNotFound,
				Error:      http.StatusText(fiber.StatusNotFound),
				Message:    "Record not found",
			})
		}

		if errors.As(err, &rich) {
			status := categoryStatus(rich.Category)
			if status >= fiber.StatusInternalServerError {
				logger.Error("request failed: %v", err)
				return c.Status(status).JSON(internalErrorResponse(status))
			}
			return c.Status(status).JSON(ErrorResponse{
				StatusCode: status,
				Error:      http.StatusText(status),
				Message:    rich.Message,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				StatusCode: fiberErr.Code,
				Error:      http.StatusText(fiberErr.Code),
				Message:    fiberErr.Message,
			})
		}

		logger.Error("unhandled error: %v", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(internalErrorResponse(fiber.StatusInternalServerError))
	}
}

// NotFoundHandler answers requests no route matched, in the same envelope
// shape as every other error
func NotFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
		StatusCode: fiber.StatusNotFound,
		Error:      http.StatusText(fiber.StatusNotFound),
		Message:    "No such route",
	})
}

func internalErrorResponse(status int) ErrorResponse {
	return ErrorResponse{
		StatusCode: status,
		Error:      http.StatusText(status),
		Message:    "An internal server error occurred",
	}
}

func fieldErrors(violations validation.Errors) []FieldError {
	fields := make([]string, 0, len(violations))
	for field := range violations {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	details := make([]FieldError, 0, len(fields))
	for _, field := range fields {
		details = append(details, FieldError{
			Field:   field,
			Message: violations[field].Error(),
		})
	}
	return details
}
