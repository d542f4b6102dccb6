package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"eventboard/internal/storage"
	"eventboard/model"
)

// Storage keeps everything in maps behind one mutex. The like-ledger
// methods mutate the fact map and the counter under the same lock,
// giving the same atomicity contract as the mongodb transactions.
type Storage struct {
	mu         sync.Mutex
	users      map[bson.ObjectID]model.User
	posts      map[bson.ObjectID]model.Post
	categories map[bson.ObjectID]model.Category
	likes      map[likeKey]model.Like
}

type likeKey struct {
	userID bson.ObjectID
	postID bson.ObjectID
}

func New() *Storage {
	return &Storage{
		users:      make(map[bson.ObjectID]model.User),
		posts:      make(map[bson.ObjectID]model.Post),
		categories: make(map[bson.ObjectID]model.Category),
		likes:      make(map[likeKey]model.Like),
	}
}

// --- users ---

func (s *Storage) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return storage.ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	s.users[user.ID] = *user
	return nil
}

func (s *Storage) GetUser(_ context.Context, id bson.ObjectID) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &u, nil
}

func (s *Storage) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Storage) ListUsers(_ context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID.Hex() < users[j].ID.Hex() })
	return users, nil
}

func (s *Storage) ListBlockedUsers(ctx context.Context) ([]model.User, error) {
	all, _ := s.ListUsers(ctx)
	blocked := []model.User{}
	for _, u := range all {
		if u.Blocked {
			blocked = append(blocked, u)
		}
	}
	return blocked, nil
}

func (s *Storage) SetUserBlocked(_ context.Context, id bson.ObjectID, blocked bool) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	u.Blocked = blocked
	s.users[id] = u
	return &u, nil
}

// --- categories ---

func (s *Storage) CreateCategory(_ context.Context, category *model.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if category.ID.IsZero() {
		category.ID = bson.NewObjectID()
	}
	s.categories[category.ID] = *category
	return nil
}

func (s *Storage) GetCategory(_ context.Context, id bson.ObjectID) (*model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &c, nil
}

func (s *Storage) ListCategories(_ context.Context) ([]model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories := make([]model.Category, 0, len(s.categories))
	for _, c := range s.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (s *Storage) UpdateCategory(_ context.Context, id bson.ObjectID, name string) (*model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	c.Name = name
	s.categories[id] = c
	return &c, nil
}

func (s *Storage) DeleteCategory(_ context.Context, id bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.categories, id)
	return nil
}

func (s *Storage) CountPostsInCategory(_ context.Context, id bson.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, p := range s.posts {
		if p.CategoryID != nil && *p.CategoryID == id {
			n++
		}
	}
	return n, nil
}

// --- posts ---

func (s *Storage) CreatePost(_ context.Context, post *model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if post.ID.IsZero() {
		post.ID = bson.NewObjectID()
	}
	s.posts[post.ID] = *post
	return nil
}

func (s *Storage) GetPost(_ context.Context, id bson.ObjectID) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &p, nil
}

func (s *Storage) ListPosts(_ context.Context, filter storage.PostFilter) ([]model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := []model.Post{}
	for _, p := range s.posts {
		if filter.Approved != nil && p.IsApproved != *filter.Approved {
			continue
		}
		if filter.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *filter.CategoryID) {
			continue
		}
		if filter.From != nil && p.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && p.CreatedAt.After(*filter.To) {
			continue
		}
		posts = append(posts, p)
	}
	sortPosts(posts)
	return posts, nil
}

func (s *Storage) ListPostsByAuthor(_ context.Context, authorID bson.ObjectID) ([]model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := []model.Post{}
	for _, p := range s.posts {
		if p.AuthorID == authorID {
			posts = append(posts, p)
		}
	}
	sortPosts(posts)
	return posts, nil
}

func sortPosts(posts []model.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID.Hex() > posts[j].ID.Hex()
	})
}

func (s *Storage) UpdatePost(_ context.Context, post *model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.posts[post.ID]
	if !ok {
		return storage.ErrNotFound
	}
	stored.Title = post.Title
	stored.Content = post.Content
	stored.StartingTime = post.StartingTime
	stored.PhotoURL = post.PhotoURL
	stored.CategoryID = post.CategoryID
	s.posts[post.ID] = stored
	return nil
}

func (s *Storage) DeletePost(_ context.Context, id bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return storage.ErrNotFound
	}
	for k := range s.likes {
		if k.postID == id {
			delete(s.likes, k)
		}
	}
	delete(s.posts, id)
	return nil
}

func (s *Storage) SetPostApproved(_ context.Context, id bson.ObjectID, approved bool) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	p.IsApproved = approved
	s.posts[id] = p
	return &p, nil
}

// --- likes ---

func (s *Storage) InsertLike(_ context.Context, userID, postID bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := likeKey{userID: userID, postID: postID}
	if _, ok := s.likes[key]; ok {
		return storage.ErrDuplicate
	}
	p, ok := s.posts[postID]
	if !ok {
		return storage.ErrNotFound
	}
	s.likes[key] = model.Like{
		ID:        bson.NewObjectID(),
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now().UTC(),
	}
	p.LikesCount++
	s.posts[postID] = p
	return nil
}

func (s *Storage) DeleteLike(_ context.Context, userID, postID bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := likeKey{userID: userID, postID: postID}
	if _, ok := s.likes[key]; !ok {
		return storage.ErrNotFound
	}
	delete(s.likes, key)
	if p, ok := s.posts[postID]; ok {
		p.LikesCount--
		s.posts[postID] = p
	}
	return nil
}

func (s *Storage) ListLikedPostIDs(_ context.Context, userID bson.ObjectID) ([]bson.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := []bson.ObjectID{}
	for k := range s.likes {
		if k.userID == userID {
			ids = append(ids, k.postID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Hex() < ids[j].Hex() })
	return ids, nil
}

func (s *Storage) Close(context.Context) error { return nil }
