package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"eventboard/internal/storage"
	"eventboard/internal/token"
	"eventboard/model"
)

const bcryptCost = 10

type AuthService struct {
	store  storage.Storage
	tokens *token.Manager
}

func NewAuthService(store storage.Storage, tokens *token.Manager) *AuthService {
	return &AuthService{store: store, tokens: tokens}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:  username,
		Email:     email,
		Password:  string(hash),
		Admin:     false,
		Blocked:   false,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// Login checks existence, then the blocked flag, then the password, in
// that order: a blocked user gets 403 regardless of what they typed.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	if user.Blocked {
		return "", ErrUserBlocked
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(user)
}

func (s *AuthService) UserStatus(ctx context.Context, userID bson.ObjectID) (bool, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, ErrUserNotFound
		}
		return false, err
	}
	return user.Blocked, nil
}

// requireActiveUser loads the actor's live record and rejects blocked
// users. Mutating services call this instead of trusting the blocked
// snapshot embedded in the token, which goes stale after a block.
func requireActiveUser(ctx context.Context, store storage.Storage, id bson.ObjectID) (*model.User, error) {
	user, err := store.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Blocked {
		return nil, ErrUserBlocked
	}
	return user, nil
}
