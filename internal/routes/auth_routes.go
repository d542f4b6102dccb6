package routes

import (
	"github.com/gofiber/fiber/v2"

	"eventboard/internal/handlers"
	"eventboard/internal/middleware"
)

func AuthRoutes(app *fiber.App, deps Deps) {
	auth := app.Group("/auth")

	auth.Post("/register", handlers.RegisterHandler(deps.Auth))
	auth.Post("/login", handlers.LoginHandler(deps.Auth))
	auth.Get("/user-status/:userId", middleware.RequireAuth(), handlers.UserStatusHandler(deps.Auth))
}
