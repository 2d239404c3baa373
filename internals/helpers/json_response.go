// file: internals/helpers/json_response.go
package helper

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

/* ===============================
   Error helpers (standard shape)
=================================*/

type ErrorResponse struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	ErrorCode string              `json:"error_code,omitempty"`
	Errors    map[string][]string `json:"errors,omitempty"`
	Draft     any                 `json:"draft,omitempty"`
}

func statusToErrorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusUnsupportedMediaType:
		return "UNSUPPORTED_MEDIA_TYPE"
	case fiber.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	case fiber.StatusBadGateway:
		return "UPSTREAM_ERROR"
	default:
		if status >= 500 {
			return "INTERNAL_ERROR"
		}
		return "ERROR"
	}
}

// JsonError: generic (non-validation) error
func JsonError(c *fiber.Ctx, status int, message string) error {
	return JsonErrorWithDraft(c, status, message, nil)
}

// JsonErrorWithDraft echoes the submitted form back so the client can keep it.
func JsonErrorWithDraft(c *fiber.Ctx, status int, message string, draft any) error {
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	if strings.TrimSpace(message) == "" {
		message = fiber.ErrInternalServerError.Message
		if status < 500 {
			message = "request failed"
		}
	}
	return c.Status(status).JSON(ErrorResponse{
		Success:   false,
		Message:   message,
		ErrorCode: statusToErrorCode(status),
		Draft:     draft,
	})
}

// JsonValidationError: field errors (422)
func JsonValidationError(c *fiber.Ctx, fieldErrors map[string][]string) error {
	if fieldErrors == nil {
		fieldErrors = map[string][]string{}
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
		Success:   false,
		Message:   "validation failed",
		ErrorCode: "VALIDATION_ERROR",
		Errors:    fieldErrors,
	})
}

// ValidationErrors flattens validator output into field -> messages using json names.
func ValidationErrors(err error) map[string][]string {
	out := map[string][]string{}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out["_"] = []string{err.Error()}
		return out
	}
	for _, fe := range ve {
		field := fe.Field()
		out[field] = append(out[field], fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url", "http_url":
		return "must be a valid URL"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}

/* ===============================
   JSON responses (standard success)
=================================*/

// JsonList: list + includes (filter options, metadata)
func JsonList(c *fiber.Ctx, message string, data any, includes any) error {
	if strings.TrimSpace(message) == "" {
		message = "ok"
	}
	body := fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	}
	if includes != nil {
		body["includes"] = includes
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

// JsonOK: generic success (GET detail etc.)
func JsonOK(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "ok"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// JsonCreated: POST
func JsonCreated(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "created"
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// JsonUpdated: PATCH/PUT
func JsonUpdated(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "updated"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}
