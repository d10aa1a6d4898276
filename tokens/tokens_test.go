package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManager_IssueAndVerify(t *testing.T) {
	m := NewManager("test-secret-123", time.Hour, 7*24*time.Hour)

	access, refresh, err := m.Issue("user-42")
	assert.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	accessClaims, err := m.Verify(access)
	assert.NoError(t, err)
	assert.Equal(t, "user-42", accessClaims.UserID)
	assert.Empty(t, accessClaims.Nonce)

	refreshClaims, err := m.Verify(refresh)
	assert.NoError(t, err)
	assert.Equal(t, "user-42", refreshClaims.UserID)
	assert.NotEmpty(t, refreshClaims.Nonce)
}

func TestManager_RefreshTokensAreUnique(t *testing.T) {
	m := NewManager("test-secret-123", time.Hour, 7*24*time.Hour)

	// same user, same instant: the nonce must keep them distinct
	_, first, err := m.Issue("user-42")
	assert.NoError(t, err)
	_, second, err := m.Issue("user-42")
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestManager_Verify_WrongSecret(t *testing.T) {
	issuer := NewManager("real-secret", time.Hour, time.Hour)
	verifier := NewManager("other-secret", time.Hour, time.Hour)

	access, _, err := issuer.Issue("user-42")
	assert.NoError(t, err)

	claims, err := verifier.Verify(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestManager_Verify_Expired(t *testing.T) {
	m := NewManager("test-secret-123", -time.Minute, -time.Minute)

	access, refresh, err := m.Issue("user-42")
	assert.NoError(t, err)

	_, err = m.Verify(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.Verify(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_Verify_Malformed(t *testing.T) {
	m := NewManager("test-secret-123", time.Hour, time.Hour)

	for _, tokenStr := range []string{"", "garbage", "a.b.c"} {
		_, err := m.Verify(tokenStr)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
