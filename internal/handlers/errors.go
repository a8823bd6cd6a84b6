package handlers

import (
	"errors"
	"fmt"

	"github.com/sanjay2518/FR/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

const msgNotConfigured = "Database not configured"

// respondError renders a storage or provider failure as a 500 with the
// {"error": ...} envelope.
func respondError(c *fiber.Ctx, err error) error {
	msg := err.Error()
	if errors.Is(err, repositories.ErrNotConfigured) {
		msg = msgNotConfigured
	}
	log.WithError(err).WithFields(log.Fields{
		"method": c.Method(),
		"route":  c.Route().Path,
	}).Error("Request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": msg})
}

// respondValidation renders validator failures as a 400.
func respondValidation(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	errorMessages := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "Validation failed",
		"errors": errorMessages,
	})
}

// ErrorHandler is the app-level Fiber error handler. It keeps unhandled errors,
// including unknown routes, in the same envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		log.WithError(err).WithField("path", c.Path()).Error("Unhandled error")
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
