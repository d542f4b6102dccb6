package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"eventboard/dto"
	"eventboard/services"
)

// fail maps service errors onto the HTTP taxonomy. Anything unmapped is
// a storage or programming failure and surfaces as 500 without leaking
// driver error shapes.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := err.Error()

	switch {
	case errors.Is(err, services.ErrMissingFields):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
	case errors.Is(err, services.ErrUserBlocked),
		errors.Is(err, services.ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrPostNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrLikeNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrAlreadyLiked),
		errors.Is(err, services.ErrCategoryInUse):
		status = fiber.StatusConflict
	default:
		msg = "internal server error"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Message: msg})
}

func paramID(c *fiber.Ctx, name string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(c.Params(name))
	if err != nil {
		return bson.NilObjectID, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
