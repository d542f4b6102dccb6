package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Like is the source of truth for a post's likes_count. At most one
// document exists per (user_id, post_id); the unique compound index in
// the mongodb storage is what enforces that under concurrent requests.
type Like struct {
	ID        bson.ObjectID `json:"id"        bson:"_id,omitempty"`
	UserID    bson.ObjectID `json:"userId"    bson:"user_id"`
	PostID    bson.ObjectID `json:"postId"    bson:"post_id"`
	CreatedAt time.Time     `json:"createdAt" bson:"created_at"`
}
