package storage

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"eventboard/model"
)

var (
	// ErrNotFound is returned when the addressed document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint (user email,
	// like per user/post pair) rejects a write.
	ErrDuplicate = errors.New("duplicate")
)

// PostFilter narrows ListPosts. Nil fields are ignored.
type PostFilter struct {
	Approved   *bool
	CategoryID *bson.ObjectID
	From       *time.Time
	To         *time.Time
}

// Storage is the persistence boundary of the service. Implementations
// must guarantee that the like-ledger operations keep likes_count equal
// to the number of like documents for the post: the fact write and the
// counter update happen atomically or not at all.
type Storage interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id bson.ObjectID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	ListBlockedUsers(ctx context.Context) ([]model.User, error)
	SetUserBlocked(ctx context.Context, id bson.ObjectID, blocked bool) (*model.User, error)

	CreateCategory(ctx context.Context, category *model.Category) error
	GetCategory(ctx context.Context, id bson.ObjectID) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	UpdateCategory(ctx context.Context, id bson.ObjectID, name string) (*model.Category, error)
	DeleteCategory(ctx context.Context, id bson.ObjectID) error
	CountPostsInCategory(ctx context.Context, id bson.ObjectID) (int64, error)

	CreatePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id bson.ObjectID) (*model.Post, error)
	ListPosts(ctx context.Context, filter PostFilter) ([]model.Post, error)
	ListPostsByAuthor(ctx context.Context, authorID bson.ObjectID) ([]model.Post, error)
	UpdatePost(ctx context.Context, post *model.Post) error
	// DeletePost removes the post's like documents before the post
	// itself, in one transaction.
	DeletePost(ctx context.Context, id bson.ObjectID) error
	SetPostApproved(ctx context.Context, id bson.ObjectID, approved bool) (*model.Post, error)

	// InsertLike writes the like document and increments likes_count in
	// one transaction. ErrDuplicate when the pair already liked.
	InsertLike(ctx context.Context, userID, postID bson.ObjectID) error
	// DeleteLike removes the like document and decrements likes_count in
	// one transaction. ErrNotFound when no such like exists.
	DeleteLike(ctx context.Context, userID, postID bson.ObjectID) error
	ListLikedPostIDs(ctx context.Context, userID bson.ObjectID) ([]bson.ObjectID, error)

	Close(ctx context.Context) error
}
