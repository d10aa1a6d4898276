package auth

import (
	"context"

	"postsapp/models"
	"postsapp/tokens"
)

// UserStore — only the methods the session manager uses. Lookups return
// (nil, nil) when no user matches.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, email, username, passwordHash string) (string, error)
	PushRefreshToken(ctx context.Context, id string, token string) error
	ConsumeRefreshToken(ctx context.Context, id string, token string) (bool, error)
	RemoveRefreshToken(ctx context.Context, id string, token string) error
	ClearRefreshTokens(ctx context.Context, id string) error
}

// TokenManager issues and verifies token pairs.
type TokenManager interface {
	Issue(userID string) (accessToken, refreshToken string, err error)
	Verify(tokenStr string) (*tokens.Claims, error)
}
