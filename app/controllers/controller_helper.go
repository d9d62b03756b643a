package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ManuelReschke/Newsroom/app/models"
)

const (
	defaultPageSize     = 20
	defaultHighlightMax = 10
	maxPageSize         = 100
)

// jsonError writes the common {"error": message} body
func jsonError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// validationError reports per-field validation failures
func validationError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "Validation failed",
		"fields": models.FieldErrors(err),
	})
}

var errInvalidBody = errors.New("invalid request body")

// bindError answers a failed bind with per-field messages when there are any
func bindError(c *fiber.Ctx, err error) error {
	if models.FieldErrors(err) != nil {
		return validationError(c, err)
	}
	return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// queryInt reads a non-negative integer query parameter, clamped to max when max > 0
func queryInt(c *fiber.Ctx, key string, def, max int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New(key + " must be a non-negative integer")
	}
	if max > 0 && n > max {
		n = max
	}
	return n, nil
}
