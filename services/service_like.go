package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"eventboard/internal/storage"
)

type LikeService struct {
	store storage.Storage
}

func NewLikeService(store storage.Storage) *LikeService {
	return &LikeService{store: store}
}

// Like records the (user, post) fact and bumps the post counter. The
// storage layer does both in one transaction; a concurrent duplicate
// loses on the unique index and surfaces here as ErrAlreadyLiked.
func (s *LikeService) Like(ctx context.Context, userID, postID bson.ObjectID) error {
	if _, err := requireActiveUser(ctx, s.store, userID); err != nil {
		return err
	}
	if _, err := s.store.GetPost(ctx, postID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	if err := s.store.InsertLike(ctx, userID, postID); err != nil {
		switch {
		case errors.Is(err, storage.ErrDuplicate):
			return ErrAlreadyLiked
		case errors.Is(err, storage.ErrNotFound):
			return ErrPostNotFound
		default:
			return err
		}
	}
	return nil
}

func (s *LikeService) Unlike(ctx context.Context, userID, postID bson.ObjectID) error {
	if _, err := requireActiveUser(ctx, s.store, userID); err != nil {
		return err
	}

	if err := s.store.DeleteLike(ctx, userID, postID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrLikeNotFound
		}
		return err
	}
	return nil
}

func (s *LikeService) LikedPostIDs(ctx context.Context, userID bson.ObjectID) ([]bson.ObjectID, error) {
	return s.store.ListLikedPostIDs(ctx, userID)
}
