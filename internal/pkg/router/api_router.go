package router

import (
	"github.com/LarsJung/StillMind/app/controllers"
	"github.com/LarsJung/StillMind/internal/pkg/constants"
	"github.com/LarsJung/StillMind/internal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type ApiRouter struct {
}

// InstallRouter registers the session-protected entity routes. All of them
// sit behind RequireSessionAuth, and the guard layer inside the handlers
// re-checks authentication so routing mistakes cannot silently widen access.
func (h ApiRouter) InstallRouter(app *fiber.App) {
	protected := app.Group("", limiter.New(limiter.Config{Max: 120}), middleware.RequireSessionAuth)

	protected.Get(constants.JournalsRoute, controllers.HandleListJournals)
	protected.Post(constants.JournalsRoute, controllers.HandleCreateJournal)
	protected.Get(constants.JournalsRoute+"/:id", controllers.HandleGetJournal)
	protected.Put(constants.JournalsRoute+"/:id", controllers.HandleUpdateJournal)
	protected.Delete(constants.JournalsRoute+"/:id", controllers.HandleDeleteJournal)

	// The range route must register before :id so "range" never parses as an id.
	protected.Get(constants.MoodsRangeRoute, controllers.HandleListMoodsInRange)
	protected.Get(constants.MoodsRoute, controllers.HandleListMoods)
	protected.Post(constants.MoodsRoute, controllers.HandleCreateMood)

	protected.Get(constants.MindfulnessRoute, controllers.HandleListMindfulness)
	protected.Get(constants.MindfulnessRoute+"/:id", controllers.HandleGetMindfulnessSession)

	protected.Get(constants.UserProfileRoute, controllers.HandleGetProfile)
	protected.Put(constants.UserProfileRoute, controllers.HandleUpdateProfile)
	protected.Put(constants.UserPasswordRoute, controllers.HandleChangePassword)

	protected.Post(constants.PremiumActivateRoute, controllers.HandleActivatePremium)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
