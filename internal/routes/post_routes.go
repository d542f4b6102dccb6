package routes

import (
	"github.com/gofiber/fiber/v2"

	"eventboard/internal/handlers"
	"eventboard/internal/middleware"
)

func PostRoutes(app *fiber.App, deps Deps) {
	post := app.Group("/posts")

	post.Get("/posts", handlers.ListPostsHandler(deps.Posts))
	post.Get("/post/non-approved", middleware.RequireAdmin(), handlers.ListNonApprovedHandler(deps.Posts))
	post.Get("/posts/:postId", handlers.GetPostHandler(deps.Posts))
	post.Get("/api/users/:userId", handlers.UserProfileHandler(deps.Posts))
	post.Get("/api/users/:userId/posts", handlers.UserPostsHandler(deps.Posts))

	post.Post("/posts", middleware.RequireAuth(), handlers.CreatePostHandler(deps.Posts, deps.UploadDir))
	post.Put("/posts/:postId", middleware.RequireAuth(), handlers.UpdatePostHandler(deps.Posts, deps.UploadDir))
	post.Delete("/posts/:postId", middleware.RequireAuth(), handlers.DeletePostHandler(deps.Posts))
	post.Put("/posts/:postId/approve", middleware.RequireAdmin(), handlers.ApprovePostHandler(deps.Posts))
	post.Put("/posts/:postId/unapprove", middleware.RequireAuth(), handlers.UnapprovePostHandler(deps.Posts))
}
