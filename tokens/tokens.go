package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for every verification failure. Callers
// cannot tell a forged token from an expired one; the distinction is
// deliberately withheld.
var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID string `json:"_id"`
	// Nonce makes two refresh tokens minted for the same user within
	// the same second textually distinct. Access tokens leave it empty.
	Nonce string `json:"nonce,omitempty"`
	jwt.RegisteredClaims
}

// Manager issues and verifies the access/refresh token pair. The secret
// and lifetimes are injected at construction; there is no fallback
// secret.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Issue mints a new access/refresh pair for the given user. It has no
// side effects; persisting the refresh token is the caller's job.
func (m *Manager) Issue(userID string) (accessToken, refreshToken string, err error) {
	now := time.Now()

	accessToken, err = m.sign(Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	if err != nil {
		return "", "", err
	}

	refreshToken, err = m.sign(Claims{
		UserID: userID,
		Nonce:  uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// Verify checks the signature and expiry of a token and returns the
// identity it carries. Any failure maps to ErrInvalidToken.
func (m *Manager) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (m *Manager) sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}
