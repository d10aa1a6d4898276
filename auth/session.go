package auth

import (
	"context"
	"log"

	"postsapp/utils"
)

// TokenPair is what every successful auth operation hands back to the
// client.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	UserID       string
}

// SessionManager orchestrates the session lifecycle: registration,
// login, refresh-token rotation and logout. Refresh tokens are
// single-use; replaying a consumed one revokes every session the user
// has.
type SessionManager struct {
	store  UserStore
	tokens TokenManager
}

func NewSessionManager(store UserStore, tokens TokenManager) *SessionManager {
	return &SessionManager{store: store, tokens: tokens}
}

// Register creates a user and opens their first session. This is the
// only path that creates users.
func (s *SessionManager) Register(ctx context.Context, email, password, username string) (*TokenPair, error) {
	existing, err := s.store.FindByEmailOrUsername(ctx, email, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	userID, err := s.store.Create(ctx, email, username, hash)
	if err != nil {
		if utils.IsDuplicateKey(err) {
			// lost the race against a concurrent register
			return nil, ErrUserExists
		}
		return nil, err
	}

	return s.openSession(ctx, userID)
}

// Login verifies credentials and opens an additional session. Earlier
// refresh tokens stay valid; login is additive.
func (s *SessionManager) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := utils.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.openSession(ctx, user.ID.Hex())
}

// Refresh rotates a refresh token: the presented token is consumed and a
// fresh pair is issued. A token that verifies and names a real user but
// is no longer in that user's set has been replayed after rotation;
// that is treated as theft and every session for the user is revoked.
func (s *SessionManager) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.store.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidRefreshToken
	}

	consumed, err := s.store.ConsumeRefreshToken(ctx, claims.UserID, refreshToken)
	if err != nil {
		return nil, err
	}
	if !consumed {
		log.Printf("possible refresh token theft for user %s, revoking all sessions", claims.UserID)
		if err := s.store.ClearRefreshTokens(ctx, claims.UserID); err != nil {
			return nil, err
		}
		return nil, ErrInvalidRefreshToken
	}

	return s.openSession(ctx, claims.UserID)
}

// Logout revokes the presented refresh token. Removing a token that was
// already consumed or never issued is a no-op; the call still succeeds.
func (s *SessionManager) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}

	user, err := s.store.FindByID(ctx, claims.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidRefreshToken
	}

	return s.store.RemoveRefreshToken(ctx, claims.UserID, refreshToken)
}

func (s *SessionManager) openSession(ctx context.Context, userID string) (*TokenPair, error) {
	accessToken, refreshToken, err := s.tokens.Issue(userID)
	if err != nil {
		return nil, err
	}
	if err := s.store.PushRefreshToken(ctx, userID, refreshToken); err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       userID,
	}, nil
}
