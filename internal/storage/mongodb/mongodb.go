package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"eventboard/internal/storage"
	"eventboard/model"
)

// Storage is the MongoDB implementation of storage.Storage.
type Storage struct {
	client     *mongo.Client
	users      *mongo.Collection
	posts      *mongo.Collection
	categories *mongo.Collection
	likes      *mongo.Collection
}

func New(ctx context.Context, client *mongo.Client, dbName string) (*Storage, error) {
	db := client.Database(dbName)
	s := &Storage{
		client:     client,
		users:      db.Collection("users"),
		posts:      db.Collection("posts"),
		categories: db.Collection("categories"),
		likes:      db.Collection("likes"),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}
	return s, nil
}

func (s *Storage) ensureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	// Uniqueness of a like per (user, post) pair is enforced here, not in
	// application code: two concurrent likes race to this index and only
	// one insert wins.
	_, err = s.likes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "post_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = s.posts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
	})
	return err
}

// isDup reports whether err is a unique index violation (code 11000).
func isDup(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	return mongo.IsDuplicateKeyError(err)
}

// --- users ---

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	res, err := s.users.InsertOne(ctx, user)
	if err != nil {
		if isDup(err) {
			return storage.ErrDuplicate
		}
		return err
	}
	user.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	var u model.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.findUsers(ctx, bson.M{})
}

func (s *Storage) ListBlockedUsers(ctx context.Context) ([]model.User, error) {
	return s.findUsers(ctx, bson.M{"blocked": true})
}

func (s *Storage) findUsers(ctx context.Context, filter bson.M) ([]model.User, error) {
	cur, err := s.users.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []model.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Storage) SetUserBlocked(ctx context.Context, id bson.ObjectID, blocked bool) (*model.User, error) {
	var u model.User
	err := s.users.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"blocked": blocked}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// --- categories ---

func (s *Storage) CreateCategory(ctx context.Context, category *model.Category) error {
	res, err := s.categories.InsertOne(ctx, category)
	if err != nil {
		return err
	}
	category.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

func (s *Storage) GetCategory(ctx context.Context, id bson.ObjectID) (*model.Category, error) {
	var c model.Category
	err := s.categories.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Storage) ListCategories(ctx context.Context) ([]model.Category, error) {
	cur, err := s.categories.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	categories := []model.Category{}
	if err := cur.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *Storage) UpdateCategory(ctx context.Context, id bson.ObjectID, name string) (*model.Category, error) {
	var c model.Category
	err := s.categories.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"name": name}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Storage) DeleteCategory(ctx context.Context, id bson.ObjectID) error {
	res, err := s.categories.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Storage) CountPostsInCategory(ctx context.Context, id bson.ObjectID) (int64, error) {
	return s.posts.CountDocuments(ctx, bson.M{"category_id": id})
}

// --- posts ---

func (s *Storage) CreatePost(ctx context.Context, post *model.Post) error {
	res, err := s.posts.InsertOne(ctx, post)
	if err != nil {
		return err
	}
	post.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

func (s *Storage) GetPost(ctx context.Context, id bson.ObjectID) (*model.Post, error) {
	var p model.Post
	err := s.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Storage) ListPosts(ctx context.Context, filter storage.PostFilter) ([]model.Post, error) {
	match := bson.M{}
	if filter.Approved != nil {
		match["is_approved"] = *filter.Approved
	}
	if filter.CategoryID != nil {
		match["category_id"] = *filter.CategoryID
	}
	if filter.From != nil || filter.To != nil {
		rng := bson.M{}
		if filter.From != nil {
			rng["$gte"] = *filter.From
		}
		if filter.To != nil {
			rng["$lte"] = *filter.To
		}
		match["created_at"] = rng
	}
	return s.findPosts(ctx, match)
}

func (s *Storage) ListPostsByAuthor(ctx context.Context, authorID bson.ObjectID) ([]model.Post, error) {
	return s.findPosts(ctx, bson.M{"author_id": authorID})
}

func (s *Storage) findPosts(ctx context.Context, match bson.M) ([]model.Post, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	cur, err := s.posts.Find(ctx, match, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	posts := []model.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *Storage) UpdatePost(ctx context.Context, post *model.Post) error {
	update := bson.M{"$set": bson.M{
		"title":         post.Title,
		"content":       post.Content,
		"starting_time": post.StartingTime,
		"photo_url":     post.PhotoURL,
		"category_id":   post.CategoryID,
	}}
	res, err := s.posts.UpdateOne(ctx, bson.M{"_id": post.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Storage) DeletePost(ctx context.Context, id bson.ObjectID) error {
	return s.inTransaction(ctx, func(ctx context.Context) error {
		// Like documents must go before the post they reference.
		if _, err := s.likes.DeleteMany(ctx, bson.M{"post_id": id}); err != nil {
			return err
		}
		res, err := s.posts.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return storage.ErrNotFound
		}
		return nil
	})
}

func (s *Storage) SetPostApproved(ctx context.Context, id bson.ObjectID, approved bool) (*model.Post, error) {
	var p model.Post
	err := s.posts.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_approved": approved}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// --- likes ---

func (s *Storage) InsertLike(ctx context.Context, userID, postID bson.ObjectID) error {
	return s.inTransaction(ctx, func(ctx context.Context) error {
		like := model.Like{UserID: userID, PostID: postID, CreatedAt: time.Now().UTC()}
		if _, err := s.likes.InsertOne(ctx, like); err != nil {
			if isDup(err) {
				return storage.ErrDuplicate
			}
			return err
		}
		res, err := s.posts.UpdateOne(ctx,
			bson.M{"_id": postID},
			bson.M{"$inc": bson.M{"likes_count": 1}},
		)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return storage.ErrNotFound
		}
		return nil
	})
}

func (s *Storage) DeleteLike(ctx context.Context, userID, postID bson.ObjectID) error {
	return s.inTransaction(ctx, func(ctx context.Context) error {
		res, err := s.likes.DeleteOne(ctx, bson.M{"user_id": userID, "post_id": postID})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return storage.ErrNotFound
		}
		_, err = s.posts.UpdateOne(ctx,
			bson.M{"_id": postID},
			bson.M{"$inc": bson.M{"likes_count": -1}},
		)
		return err
	})
}

func (s *Storage) ListLikedPostIDs(ctx context.Context, userID bson.ObjectID) ([]bson.ObjectID, error) {
	cur, err := s.likes.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	ids := []bson.ObjectID{}
	for cur.Next(ctx) {
		var l model.Like
		if err := cur.Decode(&l); err != nil {
			return nil, err
		}
		ids = append(ids, l.PostID)
	}
	return ids, cur.Err()
}

// inTransaction runs fn inside a session transaction so the like fact
// and the denormalized counter cannot diverge on partial failure.
func (s *Storage) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(ctx context.Context) (any, error) {
		return nil, fn(ctx)
	})
	return err
}

func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
