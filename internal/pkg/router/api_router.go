package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/StageCraftMedia/StageCraft/app/controllers"
	"github.com/StageCraftMedia/StageCraft/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group("/v1")
	v1.Get("/subscription", middleware.RequireAPISessionAuth, controllers.HandleSubscriptionStatus)
	v1.Get("/resources", middleware.RequireAPISessionAuth, controllers.HandleResourceList)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
