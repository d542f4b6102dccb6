package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"eventboard/internal/storage/memory"
	"eventboard/model"
)

func likeFixture(t *testing.T) (*LikeService, *memory.Storage, *model.User, *model.User, *model.Post) {
	t.Helper()
	store := memory.New()
	alice := seedUser(t, store, "alice@x.com", false)
	bob := seedUser(t, store, "bob@x.com", false)

	post := &model.Post{Title: "t", Content: "c", AuthorID: alice.ID}
	require.NoError(t, store.CreatePost(context.Background(), post))

	return NewLikeService(store), store, alice, bob, post
}

func TestLikeUnlikeScenario(t *testing.T) {
	ctx := context.Background()
	likes, store, alice, bob, post := likeFixture(t)

	counter := func() int {
		t.Helper()
		p, err := store.GetPost(ctx, post.ID)
		require.NoError(t, err)
		return p.LikesCount
	}

	require.NoError(t, likes.Like(ctx, alice.ID, post.ID))
	assert.Equal(t, 1, counter())

	require.NoError(t, likes.Like(ctx, bob.ID, post.ID))
	assert.Equal(t, 2, counter())

	require.NoError(t, likes.Unlike(ctx, alice.ID, post.ID))
	assert.Equal(t, 1, counter())

	aliceLiked, err := likes.LikedPostIDs(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, aliceLiked)

	bobLiked, err := likes.LikedPostIDs(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []bson.ObjectID{post.ID}, bobLiked)
}

func TestLikeTwiceConflicts(t *testing.T) {
	ctx := context.Background()
	likes, store, alice, _, post := likeFixture(t)

	require.NoError(t, likes.Like(ctx, alice.ID, post.ID))
	assert.ErrorIs(t, likes.Like(ctx, alice.ID, post.ID), ErrAlreadyLiked)

	p, err := store.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, p.LikesCount, "exactly one increment despite two calls")

	liked, err := likes.LikedPostIDs(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, liked, 1, "exactly one like fact")
}

func TestUnlikeWithoutLike(t *testing.T) {
	ctx := context.Background()
	likes, store, alice, _, post := likeFixture(t)

	assert.ErrorIs(t, likes.Unlike(ctx, alice.ID, post.ID), ErrLikeNotFound)

	p, err := store.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, p.LikesCount, "failed unlike must not move the counter")
}

func TestLikeUnknownTargets(t *testing.T) {
	ctx := context.Background()
	likes, _, alice, _, post := likeFixture(t)

	assert.ErrorIs(t, likes.Like(ctx, bson.NewObjectID(), post.ID), ErrUserNotFound)
	assert.ErrorIs(t, likes.Like(ctx, alice.ID, bson.NewObjectID()), ErrPostNotFound)
}

func TestLikeBlockedUser(t *testing.T) {
	ctx := context.Background()
	likes, store, alice, _, post := likeFixture(t)

	_, err := store.SetUserBlocked(ctx, alice.ID, true)
	require.NoError(t, err)

	assert.ErrorIs(t, likes.Like(ctx, alice.ID, post.ID), ErrUserBlocked)
}
