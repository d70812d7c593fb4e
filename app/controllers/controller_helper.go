package controllers

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/LarsJung/StillMind/internal/pkg/guard"
)

var validate = validator.New()

// parseIDParam reads the :id route parameter as an unsigned integer.
func parseIDParam(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}

// respondGuardError translates guard failures into their fixed HTTP codes.
func respondGuardError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, guard.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "login required",
		})
	case errors.Is(err, guard.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "forbidden",
			"message": guard.ErrForbidden.Error(),
		})
	case errors.Is(err, guard.ErrEntitlementRequired):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "premium_required",
			"message": guard.ErrEntitlementRequired.Error(),
		})
	}
	return respondInternalError(c, err)
}

// respondValidationError maps validator failures to a field-level 400 message.
func respondValidationError(c *fiber.Ctx, err error) error {
	message := "invalid input"
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, fmt.Sprintf("field %s failed on %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
		message = strings.Join(parts, "; ")
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "validation_failed",
		"message": message,
	})
}

// respondNotFound is the uniform missing-resource response. The existence
// check always runs before ownership so probing ids cannot distinguish
// other users' resources from absent ones by this code alone.
func respondNotFound(c *fiber.Ctx, what string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":   "not_found",
		"message": what + " not found",
	})
}

func respondBadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "bad_request",
		"message": message,
	})
}

func respondConflict(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "conflict",
		"message": message,
	})
}

func respondInternalError(c *fiber.Ctx, err error) error {
	// Full detail stays server-side; the client gets a generic message.
	log.Printf("internal error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "internal_server_error",
		"message": "something went wrong",
	})
}

// isDuplicateKeyError detects unique-constraint violations surfaced by the
// store. Uniqueness races resolve here: one insert wins, the other lands
// in this branch.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}

func isNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
