package routes

import (
	"github.com/gofiber/fiber/v2"

	"eventboard/internal/handlers"
	"eventboard/internal/middleware"
)

func CategoryRoutes(app *fiber.App, deps Deps) {
	category := app.Group("/category")

	category.Get("/categories", handlers.ListCategoriesHandler(deps.Categories))
	category.Post("/categories", middleware.RequireAdmin(), handlers.CreateCategoryHandler(deps.Categories))
	category.Put("/categories/:categoryId", middleware.RequireAdmin(), handlers.UpdateCategoryHandler(deps.Categories))
	category.Delete("/categories/:categoryId", middleware.RequireAdmin(), handlers.DeleteCategoryHandler(deps.Categories))
}
