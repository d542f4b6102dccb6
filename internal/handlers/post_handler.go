package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"eventboard/dto"
	"eventboard/internal/middleware"
	"eventboard/internal/storage"
	"eventboard/internal/upload"
	"eventboard/services"
)

// CreatePostHandler godoc
// @Summary      Create a post
// @Description  Multipart form with title, content, optional categoryId, startingTime and photo file. New posts start unapproved with zero likes.
// @Tags         posts
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        title     formData  string  true   "Title"
// @Param        content   formData  string  true   "Content"
// @Param        categoryId formData string  false  "Category ID (hex)"
// @Param        startingTime formData string false "Event time, RFC 3339"
// @Param        photo     formData  file    false  "jpeg/jpg/png/gif"
// @Success      201  {object}  model.Post
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /posts/posts [post]
func CreatePostHandler(posts *services.PostService, uploadDir string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFromLocals(c)
		if err != nil {
			return err
		}

		var body dto.CreatePostDTO
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid body"})
		}

		categoryID, err := parseOptionalID(body.CategoryID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid categoryId"})
		}
		startingTime, err := parseOptionalTime(body.StartingTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid startingTime"})
		}

		photo, err := upload.SavePhoto(c, uploadDir)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
		}

		post, err := posts.Create(c.Context(), actor, services.CreatePostInput{
			Title:        body.Title,
			Content:      body.Content,
			CategoryID:   categoryID,
			StartingTime: startingTime,
			PhotoURL:     photo,
		})
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(post)
	}
}

// ListPostsHandler godoc
// @Summary      List posts
// @Description  Returns every post, newest first. Optional filters: approved, categoryId, from, to.
// @Tags         posts
// @Produce      json
// @Param        approved    query  bool    false  "Approval filter"
// @Param        categoryId  query  string  false  "Category ID (hex)"
// @Success      200  {array}  model.Post
// @Router       /posts/posts [get]
func ListPostsHandler(posts *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var filter storage.PostFilter

		if q := c.Query("approved"); q != "" {
			approved := q == "true"
			filter.Approved = &approved
		}
		if q := c.Query("categoryId"); q != "" {
			id, err := bson.ObjectIDFromHex(q)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid categoryId"})
			}
			filter.CategoryID = &id
		}
		if q := c.Query("from"); q != "" {
			t, err := time.Parse(time.RFC3339, q)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid from"})
			}
			filter.From = &t
		}
		if q := c.Query("to"); q != "" {
			t, err := time.Parse(time.RFC3339, q)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid to"})
			}
			filter.To = &t
		}

		all, err := posts.List(c.Context(), filter)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(all)
	}
}

func GetPostHandler(posts *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		postID, err := paramID(c, "postId")
		if err != nil {
			return err
		}
		post, err := posts.Get(c.Context(), postID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(post)
	}
}

func ListNonApprovedHandler(posts *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pending, err := posts.ListNonApproved(c.Context())
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(pending)
	}
}

// UpdatePostHandler replaces only the supplied fields; the stored photo
// survives when the request carries no new one.
func UpdatePostHandler(posts *services.PostService, uploadDir string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFromLocals(c)
		if err != nil {
			return err
		}
		postID, err := paramID(c, "postId")
		if err != nil {
			return err
		}

		var body dto.UpdatePostDTO
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid body"})
		}

		in := services.UpdatePostInput{Title: body.Title, Content: body.Content}
		if body.CategoryID != nil {
			id, err := bson.ObjectIDFromHex(*body.CategoryID)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid categoryId"})
			}
			in.CategoryID = &id
		}
		if body.StartingTime != nil {
			t, err := time.Parse(time.RFC3339, *body.StartingTime)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid startingTime"})
			}
			in.StartingTime = &t
		}

		photo, err := upload.SavePhoto(c, uploadDir)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
		}
		if photo != "" {
			in.PhotoURL = &photo
		}

		post, err := posts.Update(c.Context(), actor, postID, in)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(post)
	}
}

func DeletePostHandler(posts *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFromLocals(c)
		if err != nil {
			return err
		}
		postID, err := paramID(c, "postId")
		if err != nil {
			return err
		}
		if err := posts.Delete(c.Context(), actor, postID); err != nil {
			return fail(c, err)
		}
		return c.JSON(dto.MessageResponse{Message: "post deleted successfully"})
	}
}

// ApprovePostHandler godoc
// @Summary      Approve a post
// @Description  Pending -> Approved. Idempotent: approving twice succeeds.
// @Tags         posts
// @Security     BearerAuth
// @Param        postId  path      string  true  "Post ID (hex)"
// @Success      200     {object}  model.Post
// @Failure      403     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /posts/posts/{postId}/approve [put]
func ApprovePostHandler(posts *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFromLocals(c)
		if err != nil {
			return err
		}
		postID, err := paramID(c, "postId")
		if err != nil {
			return err
		}
		post, err := posts.Approve(c.Context(), actor, postID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(post)
	}
}

func UnapprovePostHandler(posts *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFromLocals(c)
		if err != nil {
			return err
		}
		postID, err := paramID(c, "postId")
		if err != nil {
			return err
		}
		post, err := posts.Unapprove(c.Context(), actor, postID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(post)
	}
}

func UserProfileHandler(posts *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := paramID(c, "userId")
		if err != nil {
			return err
		}
		user, err := posts.Profile(c.Context(), userID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(user)
	}
}

func UserPostsHandler(posts *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := paramID(c, "userId")
		if err != nil {
			return err
		}
		authored, err := posts.ListByAuthor(c.Context(), userID)
		if err != nil {
			return fail(c, err)
		}
		if len(authored) == 0 {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "no posts found for this user"})
		}
		return c.JSON(authored)
	}
}

func parseOptionalID(hex string) (*bson.ObjectID, error) {
	if hex == "" {
		return nil, nil
	}
	id, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseOptionalTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
