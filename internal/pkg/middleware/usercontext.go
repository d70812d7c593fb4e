package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LarsJung/StillMind/app/controllers"
	"github.com/LarsJung/StillMind/app/repository"
	"github.com/LarsJung/StillMind/internal/pkg/session"
	"github.com/LarsJung/StillMind/internal/pkg/usercontext"
)

// UserContextMiddleware sets up the complete user context for every request.
// This centralizes session handling so handlers never touch the raw session.
func UserContextMiddleware(c *fiber.Ctx) error {
	// Get session with error handling
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		// On error: set as anonymous user
		c.Locals(usercontext.KeyUserContext, usercontext.UserContext{
			IsLoggedIn: false,
		})
		c.Locals(usercontext.KeyFromProtected, false)
		return c.Next()
	}

	// Get user ID from session
	userID := sess.Get(controllers.USER_ID)
	if userID == nil {
		// Anonymous user - no session data
		c.Locals(usercontext.KeyUserContext, usercontext.UserContext{
			IsLoggedIn: false,
		})
		c.Locals(usercontext.KeyFromProtected, false)
		return c.Next()
	}

	username := session.GetSessionValue(c, controllers.USER_NAME)

	// Determine premium flag with session-first strategy. The flag is
	// rewritten by handlers whenever it mutates, so the cached value is
	// only a fallback seed for sessions issued before the flag existed.
	premium := session.GetSessionValue(c, controllers.USER_IS_PREMIUM)
	if premium == "" {
		premium = "0"
		if user, err := repository.GetGlobalFactory().GetUserRepository().GetByID(userID.(uint)); err == nil && user.IsPremium {
			premium = "1"
		}
		_ = session.SetSessionValue(c, controllers.USER_IS_PREMIUM, premium)
	}

	// Set complete user context
	userCtx := usercontext.UserContext{
		UserID:     userID.(uint),
		Username:   username,
		IsLoggedIn: true,
		IsPremium:  premium == "1",
	}
	c.Locals(usercontext.KeyUserContext, userCtx)
	c.Locals(usercontext.KeyFromProtected, true)

	return c.Next()
}
