package routes

import (
	"github.com/gofiber/fiber/v2"

	"eventboard/internal/handlers"
	"eventboard/internal/middleware"
)

// UserRoutes is the admin surface for user moderation. The whole group
// is admin-gated, user listing included.
func UserRoutes(app *fiber.App, deps Deps) {
	users := app.Group("/users", middleware.RequireAdmin())

	users.Get("/users", handlers.ListUsersHandler(deps.Users))
	users.Get("/users/blocked", handlers.ListBlockedUsersHandler(deps.Users))
	users.Put("/users/:userId/block", handlers.BlockUserHandler(deps.Users))
	users.Put("/users/:userId/unblock", handlers.UnblockUserHandler(deps.Users))
}
