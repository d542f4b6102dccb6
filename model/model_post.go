package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Post struct {
	ID             bson.ObjectID  `json:"id"             bson:"_id,omitempty"`
	Title          string         `json:"title"          bson:"title"`
	Content        string         `json:"content"        bson:"content"`
	CreatedAt      time.Time      `json:"createdAt"      bson:"created_at"`
	StartingTime   *time.Time     `json:"startingTime"   bson:"starting_time,omitempty"`
	AuthorID       bson.ObjectID  `json:"authorId"       bson:"author_id"`
	AuthorUsername string         `json:"authorUsername" bson:"author_username"`
	PhotoURL       string         `json:"photoUrl"       bson:"photo_url"`
	CategoryID     *bson.ObjectID `json:"categoryId"     bson:"category_id,omitempty"`
	IsApproved     bool           `json:"isApproved"     bson:"is_approved"`
	LikesCount     int            `json:"likesCount"     bson:"likes_count"`
}
