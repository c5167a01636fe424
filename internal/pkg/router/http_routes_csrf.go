package router

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"github.com/StageCraftMedia/StageCraft/app/controllers"
	"github.com/StageCraftMedia/StageCraft/internal/pkg/env"
	"github.com/StageCraftMedia/StageCraft/internal/pkg/middleware"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			// API routes and webhooks authenticate without CSRF tokens
			return strings.HasPrefix(c.Path(), "/api/") || strings.HasPrefix(c.Path(), "/webhooks/")
		},
	}

	group := app.Group("", cors.New(), csrf.New(csrfConf))
	group.Get("/", loggedInMiddleware, controllers.HandleStart)

	// Lead capture
	group.Get("/contact", loggedInMiddleware, controllers.HandleContact)
	group.Post("/contact", loggedInMiddleware, controllers.HandleContactSubmit)
	group.Get("/booking", loggedInMiddleware, controllers.HandleBooking)
	group.Post("/booking", loggedInMiddleware, controllers.HandleBookingSubmit)

	// Auth
	group.Get("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Post("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Get("/register", loggedInMiddleware, controllers.HandleAuthRegister)
	group.Post("/register", loggedInMiddleware, controllers.HandleAuthRegister)

	// Client portal
	group.Get("/portal", middleware.RequireAuth, controllers.HandlePortal)
	group.Get("/portal/resources", middleware.RequireAuth, controllers.HandleResourceIndex)
	group.Get("/portal/resources/:id/download", middleware.RequireAuth, controllers.HandleResourceDownload)

	// Checkout
	group.Post("/checkout/pro", middleware.RequireAuth, controllers.HandleCheckoutStart)
	group.Get("/checkout/success", middleware.RequireAuth, controllers.HandleCheckoutSuccess)
	group.Get("/checkout/cancel", middleware.RequireAuth, controllers.HandleCheckoutCancel)
}
