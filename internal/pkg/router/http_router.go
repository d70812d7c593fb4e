package router

import (
	"github.com/LarsJung/StillMind/app/controllers"
	"github.com/LarsJung/StillMind/internal/pkg/constants"
	"github.com/LarsJung/StillMind/internal/pkg/middleware"
	"github.com/LarsJung/StillMind/internal/pkg/session"

	"github.com/gofiber/fiber/v2"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	h.registerPublicRoutes(app)
}

// registerPublicRoutes wires everything reachable without a session:
// account creation, login, and the billing webhook (authenticated by its
// HMAC signature instead of a session).
func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	app.Post(constants.RegisterRoute, controllers.HandleRegister)
	app.Post(constants.LoginRoute, controllers.HandleLogin)
	app.Post(constants.LogoutRoute, controllers.HandleLogout)

	app.Post(constants.BillingWebhookRoute, controllers.HandleBillingWebhook)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/stats", controllers.HandleStats)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
