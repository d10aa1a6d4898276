package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"postsapp/models"
)

// UserStore is the persistence layer for users and their valid
// refresh-token sets. Lookups return (nil, nil) when no user matches;
// errors are reserved for storage failures.
type UserStore struct {
	col *mongo.Collection
}

func NewUserStore(col *mongo.Collection) *UserStore {
	return &UserStore{col: col}
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

// FindByEmailOrUsername backs register's combined duplicate check.
func (s *UserStore) FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"username": username},
	}})
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := s.col.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user with an empty refresh-token set and returns
// the generated id.
func (s *UserStore) Create(ctx context.Context, email, username, passwordHash string) (string, error) {
	now := time.Now().UTC()
	res, err := s.col.InsertOne(ctx, models.User{
		Email:         email,
		Username:      username,
		PasswordHash:  passwordHash,
		RefreshTokens: []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return "", err
	}
	return res.InsertedID.(bson.ObjectID).Hex(), nil
}

func (s *UserStore) PushRefreshToken(ctx context.Context, id string, token string) error {
	return s.updateByID(ctx, id, bson.M{
		"$push": bson.M{"refreshTokens": token},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
}

// ConsumeRefreshToken atomically removes the token from the user's set
// and reports whether it was present. The filter includes the token
// itself, so two concurrent refreshes presenting the same token cannot
// both succeed: the second update matches nothing.
func (s *UserStore) ConsumeRefreshToken(ctx context.Context, id string, token string) (bool, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": oid, "refreshTokens": token},
		bson.M{
			"$pull": bson.M{"refreshTokens": token},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// RemoveRefreshToken is a plain revocation: removing a token that is not
// in the set is a no-op, not an error.
func (s *UserStore) RemoveRefreshToken(ctx context.Context, id string, token string) error {
	return s.updateByID(ctx, id, bson.M{
		"$pull": bson.M{"refreshTokens": token},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
}

// ClearRefreshTokens revokes every outstanding session for the user.
func (s *UserStore) ClearRefreshTokens(ctx context.Context, id string) error {
	return s.updateByID(ctx, id, bson.M{
		"$set": bson.M{"refreshTokens": []string{}, "updatedAt": time.Now().UTC()},
	})
}

func (s *UserStore) UpdateAvatar(ctx context.Context, id string, url string) error {
	return s.updateByID(ctx, id, bson.M{
		"$set": bson.M{"avatarUrl": url, "updatedAt": time.Now().UTC()},
	})
}

func (s *UserStore) updateByID(ctx context.Context, id string, update bson.M) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = s.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}
