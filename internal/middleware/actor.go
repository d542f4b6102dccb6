package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"eventboard/services"
)

// ActorFromLocals rebuilds the caller identity that Auth stored.
func ActorFromLocals(c *fiber.Ctx) (services.Actor, error) {
	uid, _ := c.Locals("user_id").(string)
	id, err := bson.ObjectIDFromHex(uid)
	if err != nil {
		return services.Actor{}, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	isAdmin, _ := c.Locals("is_admin").(bool)
	return services.Actor{ID: id, IsAdmin: isAdmin}, nil
}
