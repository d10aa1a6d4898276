package models

import "go.mongodb.org/mongo-driver/v2/bson"

type Post struct {
	ID        bson.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Content   string          `bson:"content" json:"content"`
	CreatedBy string          `bson:"createdBy" json:"createdBy"`
	Comments  []bson.ObjectID `bson:"comments" json:"comments"`
}
