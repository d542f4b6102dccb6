package services

import "errors"

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserBlocked        = errors.New("user is blocked")
	ErrForbidden          = errors.New("forbidden")

	ErrUserNotFound     = errors.New("user not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrLikeNotFound     = errors.New("like not found")

	ErrAlreadyLiked  = errors.New("user has already liked this post")
	ErrCategoryInUse = errors.New("category is referenced by posts")
)
