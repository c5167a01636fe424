package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/StageCraftMedia/StageCraft/app/controllers"
	"github.com/StageCraftMedia/StageCraft/internal/pkg/middleware"
	"github.com/StageCraftMedia/StageCraft/internal/pkg/oauth"
	"github.com/StageCraftMedia/StageCraft/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	// Initialize billing controller with Stripe client and sync service
	controllers.InitializeBillingController()

	// Initialize resource controller with object storage
	controllers.InitializeResourceController()

	h.registerPublicRoutes(app)
	h.registerCSRFProtectedRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func loggedInMiddleware(c *fiber.Ctx) error {
	// UserContextMiddleware already set all user context
	// All user information is available via usercontext.GetUserContext(c)
	return c.Next()
}
