package auth

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"

	"postsapp/models"
)

// fakeUserStore keeps users and their refresh-token sets in memory so
// the whole session lifecycle can be driven end to end, token set
// included, without a database.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*models.User{}}
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) FindByEmailOrUsername(_ context.Context, email, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email || u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id], nil
}

func (f *fakeUserStore) Create(_ context.Context, email, username, passwordHash string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := &models.User{
		ID:            bson.NewObjectID(),
		Email:         email,
		Username:      username,
		PasswordHash:  passwordHash,
		RefreshTokens: []string{},
	}
	f.users[u.ID.Hex()] = u
	return u.ID.Hex(), nil
}

func (f *fakeUserStore) PushRefreshToken(_ context.Context, id string, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[id].RefreshTokens = append(f.users[id].RefreshTokens, token)
	return nil
}

func (f *fakeUserStore) ConsumeRefreshToken(_ context.Context, id string, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.users[id]
	for i, t := range u.RefreshTokens {
		if t == token {
			u.RefreshTokens = append(u.RefreshTokens[:i], u.RefreshTokens[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) RemoveRefreshToken(ctx context.Context, id string, token string) error {
	_, err := f.ConsumeRefreshToken(ctx, id, token)
	return err
}

func (f *fakeUserStore) ClearRefreshTokens(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[id].RefreshTokens = []string{}
	return nil
}

func (f *fakeUserStore) tokenSet(id string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.users[id].RefreshTokens...)
}

// register user A → rt0 → refresh(rt0) → rt1 → refresh(rt0) again →
// 401 → refresh(rt1) → 401: replaying a rotated token must kill the
// freshly issued one too.
func TestSessionManager_RotationChain_ReplayRevokesEverything(t *testing.T) {
	store := newFakeUserStore()
	sessions := NewSessionManager(store, newTestManager())
	ctx := context.Background()

	reg, err := sessions.Register(ctx, "a@x.com", "pw", "alice")
	assert.NoError(t, err)
	rt0 := reg.RefreshToken

	pair, err := sessions.Refresh(ctx, rt0)
	assert.NoError(t, err)
	rt1 := pair.RefreshToken
	assert.NotEqual(t, rt0, rt1)

	// the rotated-out token is gone, the new one is live
	assert.Equal(t, []string{rt1}, store.tokenSet(reg.UserID))

	_, err = sessions.Refresh(ctx, rt0)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	// theft detection wiped the whole set, so rt1 is dead as well
	assert.Empty(t, store.tokenSet(reg.UserID))
	_, err = sessions.Refresh(ctx, rt1)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestSessionManager_LogoutThenRefreshFails(t *testing.T) {
	store := newFakeUserStore()
	sessions := NewSessionManager(store, newTestManager())
	ctx := context.Background()

	reg, err := sessions.Register(ctx, "b@x.com", "pw", "bob")
	assert.NoError(t, err)

	assert.NoError(t, sessions.Logout(ctx, reg.RefreshToken))
	assert.Empty(t, store.tokenSet(reg.UserID))

	_, err = sessions.Refresh(ctx, reg.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestSessionManager_LoginIsAdditive(t *testing.T) {
	store := newFakeUserStore()
	sessions := NewSessionManager(store, newTestManager())
	ctx := context.Background()

	reg, err := sessions.Register(ctx, "c@x.com", "pw", "carol")
	assert.NoError(t, err)

	login, err := sessions.Login(ctx, "c@x.com", "pw")
	assert.NoError(t, err)
	assert.Len(t, store.tokenSet(reg.UserID), 2)

	// the earlier session's token survives the new login
	_, err = sessions.Refresh(ctx, reg.RefreshToken)
	assert.NoError(t, err)
	// and the second session is untouched by the first one's rotation
	_, err = sessions.Refresh(ctx, login.RefreshToken)
	assert.NoError(t, err)
}
