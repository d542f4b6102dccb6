package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventboard/internal/middleware"
	"eventboard/internal/routes"
	"eventboard/internal/storage/memory"
	"eventboard/internal/token"
	"eventboard/model"
	"eventboard/services"
)

type testEnv struct {
	app    *fiber.App
	store  *memory.Storage
	tokens *token.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.New()
	tokens := token.NewManager("test-secret", time.Hour)

	app := fiber.New()
	app.Use(middleware.Auth(tokens))
	routes.Register(app, routes.Deps{
		Auth:       services.NewAuthService(store, tokens),
		Users:      services.NewModerationService(store),
		Categories: services.NewCategoryService(store),
		Posts:      services.NewPostService(store),
		Likes:      services.NewLikeService(store),
		UploadDir:  t.TempDir(),
	})

	return &testEnv{app: app, store: store, tokens: tokens}
}

func (e *testEnv) request(t *testing.T, method, path, bearer string, body any) *http.Response {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (e *testEnv) seedAdmin(t *testing.T) (*model.User, string) {
	t.Helper()
	admin := &model.User{Username: "Admin", Email: "admin@example.com", Admin: true}
	require.NoError(t, e.store.CreateUser(context.Background(), admin))
	tok, err := e.tokens.Issue(admin)
	require.NoError(t, err)
	return admin, tok
}

func (e *testEnv) registerAndLogin(t *testing.T, username, email, password string) (string, string) {
	t.Helper()

	resp := e.request(t, http.MethodPost, "/auth/register", "", fiber.Map{
		"username": username, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[struct {
		User model.User `json:"user"`
	}](t, resp)

	resp = e.request(t, http.MethodPost, "/auth/login", "", fiber.Map{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[struct {
		Token string `json:"token"`
	}](t, resp)

	return login.Token, created.User.ID.Hex()
}

func (e *testEnv) createCategory(t *testing.T, adminToken, name string) string {
	t.Helper()
	resp := e.request(t, http.MethodPost, "/category/categories", adminToken, fiber.Map{"name": name})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[model.Category](t, resp).ID.Hex()
}

func TestRegisterLoginCreateApproveFlow(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.seedAdmin(t)
	catID := env.createCategory(t, adminToken, "events")

	aliceToken, _ := env.registerAndLogin(t, "alice", "a@x.com", "pw12345678")

	resp := env.request(t, http.MethodPost, "/posts/posts", aliceToken, fiber.Map{
		"title": "opening night", "content": "doors at eight", "categoryId": catID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	post := decode[model.Post](t, resp)
	assert.False(t, post.IsApproved)
	assert.Equal(t, 0, post.LikesCount)

	approvePath := fmt.Sprintf("/posts/posts/%s/approve", post.ID.Hex())

	resp = env.request(t, http.MethodPut, approvePath, aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "approve is admin only")

	resp = env.request(t, http.MethodPut, approvePath, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[model.Post](t, resp).IsApproved)

	// Idempotent second approve.
	resp = env.request(t, http.MethodPut, approvePath, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[model.Post](t, resp).IsApproved)
}

func TestCreatePostUnknownCategory(t *testing.T) {
	env := newTestEnv(t)
	aliceToken, _ := env.registerAndLogin(t, "alice", "a@x.com", "pw12345678")

	resp := env.request(t, http.MethodPost, "/posts/posts", aliceToken, fiber.Map{
		"title": "t", "content": "c", "categoryId": "ffffffffffffffffffffffff",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/posts/posts", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]model.Post](t, resp), "no post record may exist after the failure")
}

func TestLikeEndpoints(t *testing.T) {
	env := newTestEnv(t)
	aliceToken, _ := env.registerAndLogin(t, "alice", "a@x.com", "pw12345678")
	bobToken, bobID := env.registerAndLogin(t, "bob", "b@x.com", "pw12345678")

	resp := env.request(t, http.MethodPost, "/posts/posts", aliceToken, fiber.Map{
		"title": "t", "content": "c",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	post := decode[model.Post](t, resp)
	likePath := fmt.Sprintf("/likes/posts/%s/like", post.ID.Hex())

	resp = env.request(t, http.MethodPost, likePath, "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "likes require a bearer token")

	resp = env.request(t, http.MethodPost, likePath, bobToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.request(t, http.MethodPost, likePath, bobToken, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "second like conflicts")

	resp = env.request(t, http.MethodGet, fmt.Sprintf("/posts/posts/%s", post.ID.Hex()), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[model.Post](t, resp).LikesCount)

	resp = env.request(t, http.MethodGet, "/likes/posts/"+bobID, bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	liked := decode[struct {
		LikedPostIDs []string `json:"likedPostIds"`
	}](t, resp)
	assert.Equal(t, []string{post.ID.Hex()}, liked.LikedPostIDs)

	resp = env.request(t, http.MethodPost, fmt.Sprintf("/likes/posts/%s/unlike", post.ID.Hex()), bobToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.request(t, http.MethodPost, fmt.Sprintf("/likes/posts/%s/unlike", post.ID.Hex()), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "unlike without a like fact")
}

func TestNonOwnerCannotMutatePost(t *testing.T) {
	env := newTestEnv(t)
	aliceToken, _ := env.registerAndLogin(t, "alice", "a@x.com", "pw12345678")
	malloryToken, _ := env.registerAndLogin(t, "mallory", "m@x.com", "pw12345678")

	resp := env.request(t, http.MethodPost, "/posts/posts", aliceToken, fiber.Map{
		"title": "t", "content": "c",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	post := decode[model.Post](t, resp)
	postPath := "/posts/posts/" + post.ID.Hex()

	resp = env.request(t, http.MethodPut, postPath, malloryToken, fiber.Map{"title": "hacked"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.request(t, http.MethodDelete, postPath, malloryToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.request(t, http.MethodGet, postPath, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "t", decode[model.Post](t, resp).Title, "post unchanged")
}

func TestBlockedUserSemantics(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.seedAdmin(t)
	aliceToken, aliceID := env.registerAndLogin(t, "alice", "a@x.com", "pw12345678")

	resp := env.request(t, http.MethodPut, "/users/users/"+aliceID+"/block", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Login is refused outright, wrong or right password.
	for _, pw := range []string{"pw12345678", "wrong"} {
		resp = env.request(t, http.MethodPost, "/auth/login", "", fiber.Map{
			"email": "a@x.com", "password": pw,
		})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	}

	// The stale token still passes signature checks, but mutating
	// endpoints re-check the live flag and refuse.
	resp = env.request(t, http.MethodPost, "/posts/posts", aliceToken, fiber.Map{
		"title": "t", "content": "c",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Read endpoints keep accepting it until expiry.
	resp = env.request(t, http.MethodGet, "/auth/user-status/"+aliceID, aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	status := decode[struct {
		IsBlocked bool `json:"isBlocked"`
	}](t, resp)
	assert.True(t, status.IsBlocked)

	// Unblock restores login.
	resp = env.request(t, http.MethodPut, "/users/users/"+aliceID+"/unblock", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = env.request(t, http.MethodPost, "/auth/login", "", fiber.Map{
		"email": "a@x.com", "password": "pw12345678",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminGates(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.seedAdmin(t)
	aliceToken, _ := env.registerAndLogin(t, "alice", "a@x.com", "pw12345678")

	cases := []struct {
		method, path string
	}{
		{http.MethodGet, "/users/users"},
		{http.MethodGet, "/users/users/blocked"},
		{http.MethodPost, "/category/categories"},
		{http.MethodGet, "/posts/post/non-approved"},
	}
	for _, tc := range cases {
		resp := env.request(t, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s anonymous", tc.method, tc.path)

		resp = env.request(t, tc.method, tc.path, aliceToken, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "%s %s non-admin", tc.method, tc.path)
	}

	resp := env.request(t, http.MethodGet, "/users/users", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndLogin(t, "alice", "a@x.com", "pw12345678")

	resp := env.request(t, http.MethodPost, "/auth/register", "", fiber.Map{
		"username": "alice2", "email": "a@x.com", "password": "pw12345678",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestDeleteReferencedCategoryConflicts(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.seedAdmin(t)
	catID := env.createCategory(t, adminToken, "events")
	aliceToken, _ := env.registerAndLogin(t, "alice", "a@x.com", "pw12345678")

	resp := env.request(t, http.MethodPost, "/posts/posts", aliceToken, fiber.Map{
		"title": "t", "content": "c", "categoryId": catID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.request(t, http.MethodDelete, "/category/categories/"+catID, adminToken, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestListPostsApprovalFilter(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.seedAdmin(t)
	aliceToken, _ := env.registerAndLogin(t, "alice", "a@x.com", "pw12345678")

	resp := env.request(t, http.MethodPost, "/posts/posts", aliceToken, fiber.Map{
		"title": "pending", "content": "c",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	pending := decode[model.Post](t, resp)

	resp = env.request(t, http.MethodPost, "/posts/posts", aliceToken, fiber.Map{
		"title": "published", "content": "c",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	published := decode[model.Post](t, resp)

	resp = env.request(t, http.MethodPut, fmt.Sprintf("/posts/posts/%s/approve", published.ID.Hex()), adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/posts/posts", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]model.Post](t, resp), 2, "unfiltered listing includes pending posts")

	resp = env.request(t, http.MethodGet, "/posts/posts?approved=true", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	approvedList := decode[[]model.Post](t, resp)
	require.Len(t, approvedList, 1)
	assert.Equal(t, published.ID, approvedList[0].ID)

	resp = env.request(t, http.MethodGet, "/posts/post/non-approved", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	pendingList := decode[[]model.Post](t, resp)
	require.Len(t, pendingList, 1)
	assert.Equal(t, pending.ID, pendingList[0].ID)
}

func TestUserProfileAndPosts(t *testing.T) {
	env := newTestEnv(t)
	aliceToken, aliceID := env.registerAndLogin(t, "alice", "a@x.com", "pw12345678")

	resp := env.request(t, http.MethodGet, "/posts/api/users/"+aliceID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	profile := decode[map[string]any](t, resp)
	assert.Equal(t, "alice", profile["username"])
	assert.NotContains(t, profile, "password", "hash must never be serialized")

	resp = env.request(t, http.MethodGet, "/posts/api/users/"+aliceID+"/posts", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "no posts yet")

	resp = env.request(t, http.MethodPost, "/posts/posts", aliceToken, fiber.Map{
		"title": "t", "content": "c",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/posts/api/users/"+aliceID+"/posts", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]model.Post](t, resp), 1)
}
