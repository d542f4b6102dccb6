package routes

import (
	"github.com/gofiber/fiber/v2"

	"eventboard/services"
)

type Deps struct {
	Auth       *services.AuthService
	Users      *services.ModerationService
	Categories *services.CategoryService
	Posts      *services.PostService
	Likes      *services.LikeService
	UploadDir  string
}

func Register(app *fiber.App, deps Deps) {
	AuthRoutes(app, deps)
	UserRoutes(app, deps)
	CategoryRoutes(app, deps)
	PostRoutes(app, deps)
	LikeRoutes(app, deps)
}
