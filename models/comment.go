package models

import "go.mongodb.org/mongo-driver/v2/bson"

type Comment struct {
	ID      bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	PostID  bson.ObjectID `bson:"postId" json:"postId"`
	Content string        `bson:"content" json:"content"`
	Sender  string        `bson:"sender" json:"sender"`
}
