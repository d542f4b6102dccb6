package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"eventboard/internal/storage"
	"eventboard/model"
)

// ModerationService covers the admin-only user operations. Blocking is
// a flag flip: existing posts and likes of the user stay visible and
// counted.
type ModerationService struct {
	store storage.Storage
}

func NewModerationService(store storage.Storage) *ModerationService {
	return &ModerationService{store: store}
}

func (s *ModerationService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.store.ListUsers(ctx)
}

func (s *ModerationService) ListBlockedUsers(ctx context.Context) ([]model.User, error) {
	return s.store.ListBlockedUsers(ctx)
}

func (s *ModerationService) BlockUser(ctx context.Context, userID bson.ObjectID) (*model.User, error) {
	return s.setBlocked(ctx, userID, true)
}

func (s *ModerationService) UnblockUser(ctx context.Context, userID bson.ObjectID) (*model.User, error) {
	return s.setBlocked(ctx, userID, false)
}

func (s *ModerationService) setBlocked(ctx context.Context, userID bson.ObjectID, blocked bool) (*model.User, error) {
	user, err := s.store.SetUserBlocked(ctx, userID, blocked)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
