package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"todoapi/internal/http/middleware"
	"todoapi/internal/model"
	"todoapi/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "STORE_UNAVAILABLE", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeTodoResult maps a service outcome to the response. A missing todo is
// not an error on the wire: it answers 200 with a JSON null body.
func writeTodoResult(c *fiber.Ctx, todo *model.Todo, err error) error {
	if err == nil {
		return c.JSON(todo)
	}
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(nil)
	case errors.Is(err, service.ErrInvalidID), errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}
	return writeServiceError(c, err)
}

// writeServiceError logs the cause and writes the matching 5xx envelope.
func writeServiceError(c *fiber.Ctx, err error) error {
	middleware.LogEntry(c).WithError(err).Error("todo operation failed")
	if errors.Is(err, service.ErrStoreUnavailable) {
		return writeError(c, fiber.StatusServiceUnavailable, "STORE_UNAVAILABLE", "store unavailable")
	}
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// writeInputError answers 400 for bodies that cannot be decoded into a TodoInput.
func writeInputError(c *fiber.Ctx, err error) error {
	var fe *model.FieldError
	if errors.As(err, &fe) {
		return writeError(c, fiber.StatusBadRequest, "INVALID_FIELD", fe.Error())
	}
	return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be a JSON object")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var e *fiber.Error
		if errors.As(err, &e) {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			middleware.LogEntry(c).WithError(err).Error("unhandled error")
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
