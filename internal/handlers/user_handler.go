package handlers

import (
	"github.com/gofiber/fiber/v2"

	"eventboard/services"
)

func ListUsersHandler(users *services.ModerationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		all, err := users.ListUsers(c.Context())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(all)
	}
}

func ListBlockedUsersHandler(users *services.ModerationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		blocked, err := users.ListBlockedUsers(c.Context())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(blocked)
	}
}

// BlockUserHandler godoc
// @Summary      Block a user
// @Tags         users
// @Security     BearerAuth
// @Param        userId  path      string  true  "User ID (hex)"
// @Success      200     {object}  model.User
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /users/users/{userId}/block [put]
func BlockUserHandler(users *services.ModerationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := paramID(c, "userId")
		if err != nil {
			return err
		}
		user, err := users.BlockUser(c.Context(), userID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(user)
	}
}

func UnblockUserHandler(users *services.ModerationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := paramID(c, "userId")
		if err != nil {
			return err
		}
		user, err := users.UnblockUser(c.Context(), userID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(user)
	}
}
