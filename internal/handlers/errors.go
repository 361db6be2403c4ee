package handlers

import (
	"errors"
	"strconv"

	"github.com/vitokorn/buy-me-a-gift/internal/services"
	"github.com/vitokorn/buy-me-a-gift/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// errNotFound is returned for malformed ids, which can never match a row.
var errNotFound = fiber.NewError(fiber.StatusNotFound, "Not found.")

// statusFor maps a service error kind to its HTTP status code.
func statusFor(kind error) int {
	switch {
	case errors.Is(kind, services.ErrValidation), errors.Is(kind, services.ErrConflict):
		return fiber.StatusBadRequest
	case errors.Is(kind, services.ErrInvalidCredentials), errors.Is(kind, services.ErrInvalidToken):
		return fiber.StatusUnauthorized
	case errors.Is(kind, services.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(kind, services.ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// handleServiceError writes the JSON error response for err. Errors that are
// not *services.Error are logged and reported as 500.
func handleServiceError(c *fiber.Ctx, err error) error {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		status := statusFor(svcErr.Kind)
		if status < fiber.StatusInternalServerError {
			return c.Status(status).JSON(fiber.Map{"error": svcErr.Message})
		}
	}

	logrus.WithError(err).WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}).Error("Request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}

// bindJSON parses the request body into out and validates it. When it
// returns false the error response has already been written.
func bindJSON(c *fiber.Ctx, validate *validator.Validate, out interface{}) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		logrus.WithError(err).WithField("path", c.Path()).Debug("Invalid request body")
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": validation.FieldErrors(err),
		})
	}
	return true, nil
}

// paramID parses a positive integer path parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errNotFound
	}
	return uint(id), nil
}
