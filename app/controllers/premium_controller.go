package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LarsJung/StillMind/internal/pkg/billing"
	"github.com/LarsJung/StillMind/internal/pkg/database"
	"github.com/LarsJung/StillMind/internal/pkg/env"
	"github.com/LarsJung/StillMind/internal/pkg/guard"
	"github.com/LarsJung/StillMind/internal/pkg/usercontext"
)

// HandleActivatePremium flips the principal's premium entitlement on.
// Idempotent: activating twice is a success, not an error. When an
// external payment processor is configured the self-service path is
// disabled and activation must arrive via webhook instead.
func HandleActivatePremium(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if err := guard.RequireAuthenticated(userCtx); err != nil {
		return respondGuardError(c, err)
	}

	if env.GetEnv("BILLING_PROCESSOR_ENABLED", "false") == "true" {
		return respondBadRequest(c, "premium activation is managed by the payment provider")
	}

	service := billing.NewServiceFromDB(database.GetDB())
	user, err := service.ActivatePremium(c.Context(), userCtx.UserID)
	if err != nil {
		if isNotFoundError(err) {
			return respondNotFound(c, "user")
		}
		return respondInternalError(c, err)
	}

	refreshSessionPrincipal(c, user)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "premium activated",
		"user":    user,
	})
}
