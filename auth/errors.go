package auth

import "errors"

var (
	// ErrUserExists covers duplicate email and duplicate username alike.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned for unknown email and wrong
	// password alike, so login responses don't reveal which accounts
	// exist.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidRefreshToken covers every refresh/logout failure:
	// bad signature, expired, unknown user, revoked or reused token.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)
