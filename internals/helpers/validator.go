package helper

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator; field names in errors follow json tags.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// BindAndValidate parses the body into req and validates it. When ok is false the
// error response has already been written and err is what the handler returns.
func BindAndValidate(c *fiber.Ctx, req any) (ok bool, err error) {
	if err := c.BodyParser(req); err != nil {
		return false, JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if n, isNormalizer := req.(interface{ Normalize() }); isNormalizer {
		n.Normalize()
	}
	if err := Validator().Struct(req); err != nil {
		return false, JsonValidationError(c, ValidationErrors(err))
	}
	return true, nil
}
