package handlers

import (
	"github.com/gofiber/fiber/v2"

	"eventboard/dto"
	"eventboard/services"
)

// RegisterHandler godoc
// @Summary      Register a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        data  body      dto.RegisterDTO  true  "Credentials"
// @Success      201   {object}  model.User
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /auth/register [post]
func RegisterHandler(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body dto.RegisterDTO
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid body"})
		}

		user, err := auth.Register(c.Context(), body.Username, body.Email, body.Password)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "user created successfully",
			"user":    user,
		})
	}
}

// LoginHandler godoc
// @Summary      Log in
// @Description  Order of checks: user exists, user not blocked, password matches.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        data  body      dto.LoginDTO  true  "Credentials"
// @Success      200   {object}  dto.TokenResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /auth/login [post]
func LoginHandler(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body dto.LoginDTO
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid body"})
		}

		tok, err := auth.Login(c.Context(), body.Email, body.Password)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(dto.TokenResponse{Token: tok})
	}
}

func UserStatusHandler(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := paramID(c, "userId")
		if err != nil {
			return err
		}

		blocked, err := auth.UserStatus(c.Context(), userID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(dto.UserStatusResponse{IsBlocked: blocked})
	}
}
