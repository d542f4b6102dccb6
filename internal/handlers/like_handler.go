package handlers

import (
	"github.com/gofiber/fiber/v2"

	"eventboard/dto"
	"eventboard/internal/middleware"
	"eventboard/services"
)

// LikePostHandler godoc
// @Summary      Like a post
// @Description  Records the like and increments the post counter atomically. A second like from the same user yields 409.
// @Tags         likes
// @Security     BearerAuth
// @Param        postId  path      string  true  "Post ID (hex)"
// @Success      200     {object}  dto.LikeResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /likes/posts/{postId}/like [post]
func LikePostHandler(likes *services.LikeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFromLocals(c)
		if err != nil {
			return err
		}
		postID, err := paramID(c, "postId")
		if err != nil {
			return err
		}
		if err := likes.Like(c.Context(), actor.ID, postID); err != nil {
			return fail(c, err)
		}
		return c.JSON(dto.LikeResponse{Message: "post liked successfully", PostID: postID.Hex()})
	}
}

func UnlikePostHandler(likes *services.LikeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFromLocals(c)
		if err != nil {
			return err
		}
		postID, err := paramID(c, "postId")
		if err != nil {
			return err
		}
		if err := likes.Unlike(c.Context(), actor.ID, postID); err != nil {
			return fail(c, err)
		}
		return c.JSON(dto.LikeResponse{Message: "post unliked successfully", PostID: postID.Hex()})
	}
}

func LikedPostsHandler(likes *services.LikeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := paramID(c, "userId")
		if err != nil {
			return err
		}
		ids, err := likes.LikedPostIDs(c.Context(), userID)
		if err != nil {
			return fail(c, err)
		}
		hexIDs := make([]string, 0, len(ids))
		for _, id := range ids {
			hexIDs = append(hexIDs, id.Hex())
		}
		return c.JSON(dto.LikedPostsResponse{LikedPostIDs: hexIDs})
	}
}
