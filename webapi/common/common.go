package common

import (
	"errors"

	"github.com/amirasaad/brokerage/pkg/pricing/core"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
	Errors   any    `json:"errors,omitempty"`   // Optional: additional error details
}

// SuccessResponseJSON writes a standard success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ErrorResponseJSON returns a response following RFC 9457 Problem Details.
func ErrorResponseJSON(
	c *fiber.Ctx,
	status int,
	title string,
	detail any,
) error {
	pd := ProblemDetails{
		Type:   "about:blank",
		Title:  title,
		Status: status,
	}
	if detail != nil {
		if s, ok := detail.(string); ok {
			pd.Detail = s
		} else {
			pd.Errors = detail
		}
	}
	pd.Instance = c.OriginalURL()
	c.Set(fiber.HeaderContentType, "application/problem+json")

	return c.Status(status).JSON(pd)
}

// ErrorToStatusCode maps pricing errors to appropriate HTTP status codes.
func ErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, core.ErrNoRule):
		return fiber.StatusNotFound
	case errors.Is(err, core.ErrNoHistoricalPrice):
		return fiber.StatusNotFound
	case errors.Is(err, core.ErrUnknownSource):
		return fiber.StatusBadRequest
	case errors.Is(err, core.ErrNoValidPrice):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// BindQueryAndValidate parses the query string and validates it using
// go-playground/validator. Returns the populated struct, or writes an
// error response and returns the parse error.
func BindQueryAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.QueryParser(&input); err != nil {
		ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid query parameters", err.Error())
		return nil, err
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", err.Error())
		return nil, err
	}
	return &input, nil
}

// BindAndValidate parses the request body and validates it using
// go-playground/validator. Returns the populated struct, or writes an
// error response and returns the parse error.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
		return nil, err
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", err.Error())
		return nil, err
	}
	return &input, nil
}
