package services

import "go.mongodb.org/mongo-driver/v2/bson"

// Actor is the caller identity extracted from a verified bearer token.
type Actor struct {
	ID      bson.ObjectID
	IsAdmin bool
}

func (a Actor) owns(authorID bson.ObjectID) bool {
	return a.ID == authorID
}

func (a Actor) canModerate(authorID bson.ObjectID) bool {
	return a.IsAdmin || a.owns(authorID)
}
