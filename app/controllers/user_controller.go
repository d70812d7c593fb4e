package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/LarsJung/StillMind/app/repository"
	"github.com/LarsJung/StillMind/internal/pkg/guard"
	"github.com/LarsJung/StillMind/internal/pkg/usercontext"
)

type updateProfileRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=150"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// HandleGetProfile returns the principal's account record together with
// their entry counts.
func HandleGetProfile(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if err := guard.RequireAuthenticated(userCtx); err != nil {
		return respondGuardError(c, err)
	}

	factory := repository.GetGlobalFactory()
	user, err := factory.GetUserRepository().GetByID(userCtx.UserID)
	if err != nil {
		if isNotFoundError(err) {
			return respondNotFound(c, "user")
		}
		return respondInternalError(c, err)
	}

	journalCount, err := factory.GetJournalRepository().CountByUser(userCtx.UserID)
	if err != nil {
		return respondInternalError(c, err)
	}
	moodCount, err := factory.GetMoodRepository().CountByUser(userCtx.UserID)
	if err != nil {
		return respondInternalError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":          user,
		"journal_count": journalCount,
		"mood_count":    moodCount,
		"last_login_at": formatTimePtr(user.LastLoginAt),
	})
}

// HandleUpdateProfile changes the principal's username and/or email. At
// least one field must be present; uniqueness conflicts are 400s. On
// success the session principal snapshot is rewritten so stale identity
// never leaks into later requests.
func HandleUpdateProfile(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if err := guard.RequireAuthenticated(userCtx); err != nil {
		return respondGuardError(c, err)
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid JSON body")
	}
	if err := validate.Struct(&req); err != nil {
		return respondValidationError(c, err)
	}
	if req.Username == nil && req.Email == nil {
		return respondBadRequest(c, "nothing to update")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByID(userCtx.UserID)
	if err != nil {
		if isNotFoundError(err) {
			return respondNotFound(c, "user")
		}
		return respondInternalError(c, err)
	}

	if req.Username != nil {
		name := strings.TrimSpace(*req.Username)
		if other, err := repo.GetByName(name); err == nil && other.ID != user.ID {
			return respondConflict(c, "username already taken")
		} else if err != nil && !isNotFoundError(err) {
			return respondInternalError(c, err)
		}
		user.Name = name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if other, err := repo.GetByEmail(email); err == nil && other.ID != user.ID {
			return respondConflict(c, "email already registered")
		} else if err != nil && !isNotFoundError(err) {
			return respondInternalError(c, err)
		}
		user.Email = email
	}

	if err := repo.Update(user); err != nil {
		if isDuplicateKeyError(err) {
			return respondConflict(c, "username or email already taken")
		}
		return respondInternalError(c, err)
	}

	refreshSessionPrincipal(c, user)
	return c.JSON(user)
}

// HandleChangePassword rotates the principal's password after verifying
// the current one. A wrong current password is a domain failure, not a
// validation failure.
func HandleChangePassword(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if err := guard.RequireAuthenticated(userCtx); err != nil {
		return respondGuardError(c, err)
	}

	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid JSON body")
	}
	if err := validate.Struct(&req); err != nil {
		return respondValidationError(c, err)
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByID(userCtx.UserID)
	if err != nil {
		if isNotFoundError(err) {
			return respondNotFound(c, "user")
		}
		return respondInternalError(c, err)
	}

	if !user.CheckPassword(req.CurrentPassword) {
		return respondBadRequest(c, "current password is incorrect")
	}
	if err := user.SetPassword(req.NewPassword); err != nil {
		return respondInternalError(c, err)
	}
	if err := repo.Update(user); err != nil {
		return respondInternalError(c, err)
	}

	return c.JSON(fiber.Map{"message": "password updated"})
}
