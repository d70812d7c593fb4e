package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/LarsJung/StillMind/app/models"
	"github.com/LarsJung/StillMind/app/repository"
	"github.com/LarsJung/StillMind/internal/pkg/session"
)

// Session keys shared with the user-context middleware.
const (
	AUTH_KEY        string = "authenticated"
	USER_ID         string = "user_id"
	USER_NAME       string = "username"
	USER_IS_PREMIUM string = "is_premium"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleRegister creates a new user account. Username and email uniqueness
// is ultimately guaranteed by the store's unique indexes; the pre-checks
// only exist for friendlier messages.
func HandleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid JSON body")
	}
	if err := validate.Struct(&req); err != nil {
		return respondValidationError(c, err)
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	if _, err := repo.GetByName(req.Username); err == nil {
		return respondConflict(c, "username already taken")
	} else if !isNotFoundError(err) {
		return respondInternalError(c, err)
	}
	if _, err := repo.GetByEmail(req.Email); err == nil {
		return respondConflict(c, "email already registered")
	} else if !isNotFoundError(err) {
		return respondInternalError(c, err)
	}

	user, err := models.CreateUser(req.Username, req.Email, req.Password)
	if err != nil {
		return respondValidationError(c, err)
	}

	if err := repo.Create(user); err != nil {
		// Concurrent registration with the same name or email loses the
		// race against the unique index and surfaces here.
		if isDuplicateKeyError(err) {
			return respondConflict(c, "username or email already taken")
		}
		return respondInternalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleLogin verifies credentials and issues a session.
func HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid JSON body")
	}
	if err := validate.Struct(&req); err != nil {
		return respondValidationError(c, err)
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByEmail(req.Email)
	// notice: login failures are deliberately indistinguishable so the
	// response never reveals whether the account exists
	if err != nil || !user.CheckPassword(req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "invalid email or password",
		})
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return respondInternalError(c, err)
	}
	sess.Set(AUTH_KEY, true)
	sess.Set(USER_ID, user.ID)
	sess.Set(USER_NAME, user.Name)
	if err := sess.Save(); err != nil {
		return respondInternalError(c, err)
	}
	_ = session.SetSessionValue(c, USER_IS_PREMIUM, premiumFlag(user.IsPremium))

	now := time.Now()
	user.LastLoginAt = &now
	_ = repo.Update(user)

	return c.JSON(fiber.Map{
		"message": "logged in",
		"user":    user,
	})
}

// HandleLogout destroys the current session.
func HandleLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return respondInternalError(c, err)
	}
	if err := sess.Destroy(); err != nil {
		return respondInternalError(c, err)
	}
	return c.JSON(fiber.Map{"message": "logged out"})
}

// refreshSessionPrincipal rewrites the session snapshot of the principal.
// Required side effect of every handler mutating username, email or the
// premium flag; the cached snapshot must never outlive the mutation.
func refreshSessionPrincipal(c *fiber.Ctx, user *models.User) {
	_ = session.SetSessionValue(c, USER_NAME, user.Name)
	_ = session.SetSessionValue(c, USER_IS_PREMIUM, premiumFlag(user.IsPremium))
}

func premiumFlag(isPremium bool) string {
	if isPremium {
		return "1"
	}
	return "0"
}
