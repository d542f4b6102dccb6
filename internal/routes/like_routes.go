package routes

import (
	"github.com/gofiber/fiber/v2"

	"eventboard/internal/handlers"
	"eventboard/internal/middleware"
)

func LikeRoutes(app *fiber.App, deps Deps) {
	likes := app.Group("/likes", middleware.RequireAuth())

	likes.Post("/posts/:postId/like", handlers.LikePostHandler(deps.Likes))
	likes.Post("/posts/:postId/unlike", handlers.UnlikePostHandler(deps.Likes))
	likes.Get("/posts/:userId", handlers.LikedPostsHandler(deps.Likes))
}
