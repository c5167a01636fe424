package router

import (
	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/StageCraftMedia/StageCraft/app/controllers"
	"github.com/StageCraftMedia/StageCraft/internal/pkg/middleware"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Marketing pages
	app.Get("/services", loggedInMiddleware, controllers.HandleServices)
	app.Get("/portfolio", loggedInMiddleware, controllers.HandlePortfolio)
	app.Get("/testimonials", loggedInMiddleware, controllers.HandleTestimonials)
	app.Get("/pricing", loggedInMiddleware, controllers.HandlePricing)
	app.Get("/about", loggedInMiddleware, controllers.HandleAbout)

	// Auth
	app.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)

	// Social OAuth
	app.Get("/auth/:provider", gothfiber.BeginAuthHandler)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)

	// Billing provider webhooks (no CSRF, signature-verified in controller)
	app.Post("/webhooks/stripe", controllers.HandleStripeWebhook)
}
