package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email        string        `bson:"email" json:"email"`
	Username     string        `bson:"username" json:"username"`
	PasswordHash string        `bson:"passwordHash" json:"-"` // never expose
	// Refresh tokens currently valid for this user. A token is in this
	// list if and only if it has been issued and not yet consumed,
	// revoked or wiped by theft detection.
	RefreshTokens []string  `bson:"refreshTokens" json:"-"`
	AvatarURL     string    `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}
