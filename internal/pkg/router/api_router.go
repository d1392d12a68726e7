package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/mkarlsen/carhub/app/controllers"
	"github.com/mkarlsen/carhub/app/repository"
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

	controllers.InitializeCarController(repository.GetGlobalFactory().GetCarRepository())

	// Car resource endpoints. Deliberately left without session enforcement
	// to match the public demo surface; see DESIGN.md.
	api.Get("/cars", controllers.HandleListCars)
	api.Post("/cars", controllers.HandleCreateCar)
	api.Put("/cars", controllers.HandleUpdateCar)
	api.Delete("/cars", controllers.HandleDeleteCar)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
