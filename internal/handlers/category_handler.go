package handlers

import (
	"github.com/gofiber/fiber/v2"

	"eventboard/dto"
	"eventboard/services"
)

func ListCategoriesHandler(categories *services.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		all, err := categories.List(c.Context())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(all)
	}
}

func CreateCategoryHandler(categories *services.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body dto.CategoryDTO
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid body"})
		}
		category, err := categories.Create(c.Context(), body.Name)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(category)
	}
}

func UpdateCategoryHandler(categories *services.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		categoryID, err := paramID(c, "categoryId")
		if err != nil {
			return err
		}
		var body dto.CategoryDTO
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid body"})
		}
		category, err := categories.Update(c.Context(), categoryID, body.Name)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(category)
	}
}

// DeleteCategoryHandler rejects deletion with 409 while posts still
// reference the category.
func DeleteCategoryHandler(categories *services.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		categoryID, err := paramID(c, "categoryId")
		if err != nil {
			return err
		}
		if err := categories.Delete(c.Context(), categoryID); err != nil {
			return fail(c, err)
		}
		return c.JSON(dto.MessageResponse{Message: "category deleted successfully"})
	}
}
