package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"eventboard/internal/storage"
	"eventboard/model"
)

type PostService struct {
	store storage.Storage
}

func NewPostService(store storage.Storage) *PostService {
	return &PostService{store: store}
}

type CreatePostInput struct {
	Title        string
	Content      string
	CategoryID   *bson.ObjectID
	StartingTime *time.Time
	PhotoURL     string
}

type UpdatePostInput struct {
	Title        *string
	Content      *string
	CategoryID   *bson.ObjectID
	StartingTime *time.Time
	PhotoURL     *string
}

func (s *PostService) Create(ctx context.Context, actor Actor, in CreatePostInput) (*model.Post, error) {
	if in.Title == "" || in.Content == "" {
		return nil, ErrMissingFields
	}

	author, err := requireActiveUser(ctx, s.store, actor.ID)
	if err != nil {
		return nil, err
	}

	// Category existence is validated before anything is written, so a
	// bad categoryId leaves no post behind.
	if in.CategoryID != nil {
		if _, err := s.store.GetCategory(ctx, *in.CategoryID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}

	post := &model.Post{
		Title:          in.Title,
		Content:        in.Content,
		CreatedAt:      time.Now().UTC(),
		StartingTime:   in.StartingTime,
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		PhotoURL:       in.PhotoURL,
		CategoryID:     in.CategoryID,
		IsApproved:     false,
		LikesCount:     0,
	}
	if err := s.store.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Get(ctx context.Context, id bson.ObjectID) (*model.Post, error) {
	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *PostService) List(ctx context.Context, filter storage.PostFilter) ([]model.Post, error) {
	return s.store.ListPosts(ctx, filter)
}

func (s *PostService) ListNonApproved(ctx context.Context) ([]model.Post, error) {
	approved := false
	return s.store.ListPosts(ctx, storage.PostFilter{Approved: &approved})
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID bson.ObjectID) ([]model.Post, error) {
	return s.store.ListPostsByAuthor(ctx, authorID)
}

func (s *PostService) Profile(ctx context.Context, userID bson.ObjectID) (*model.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Update replaces only the supplied fields. Approval state and the like
// counter are never touched here: an edit does not send a post back to
// the moderation queue.
func (s *PostService) Update(ctx context.Context, actor Actor, postID bson.ObjectID, in UpdatePostInput) (*model.Post, error) {
	if _, err := requireActiveUser(ctx, s.store, actor.ID); err != nil {
		return nil, err
	}

	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !actor.canModerate(post.AuthorID) {
		return nil, ErrForbidden
	}

	if in.CategoryID != nil {
		if _, err := s.store.GetCategory(ctx, *in.CategoryID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		post.CategoryID = in.CategoryID
	}
	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Content != nil {
		post.Content = *in.Content
	}
	if in.StartingTime != nil {
		post.StartingTime = in.StartingTime
	}
	if in.PhotoURL != nil {
		post.PhotoURL = *in.PhotoURL
	}

	if err := s.store.UpdatePost(ctx, post); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, actor Actor, postID bson.ObjectID) error {
	if _, err := requireActiveUser(ctx, s.store, actor.ID); err != nil {
		return err
	}

	post, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}
	if !actor.canModerate(post.AuthorID) {
		return ErrForbidden
	}

	if err := s.store.DeletePost(ctx, postID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}

// Approve is admin-only and idempotent: approving an approved post is a
// no-op success.
func (s *PostService) Approve(ctx context.Context, actor Actor, postID bson.ObjectID) (*model.Post, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}
	return s.setApproved(ctx, postID, true)
}

// Unapprove sends a post back to pending. Admins and the author may do
// it; also idempotent.
func (s *PostService) Unapprove(ctx context.Context, actor Actor, postID bson.ObjectID) (*model.Post, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !actor.canModerate(post.AuthorID) {
		return nil, ErrForbidden
	}
	return s.setApproved(ctx, postID, false)
}

func (s *PostService) setApproved(ctx context.Context, postID bson.ObjectID, approved bool) (*model.Post, error) {
	post, err := s.store.SetPostApproved(ctx, postID, approved)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}
