package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/vibewalk/internal/models"
	"github.com/mmynk/vibewalk/internal/storage"
)

// memUsers is an in-memory storage.UserStore.
type memUsers struct {
	mu     sync.Mutex
	byName map[string]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{byName: make(map[string]*models.User)}
}

func (m *memUsers) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byName[user.Username]; ok {
		return storage.ErrUsernameTaken
	}
	m.byName[user.Username] = user
	return nil
}

func (m *memUsers) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byName[username], nil
}

func (m *memUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byName {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func TestRegister(t *testing.T) {
	users := newMemUsers()
	a := NewPasswordAuthenticator(users)
	ctx := context.Background()

	user, err := a.Register(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "secret", user.PasswordHash, "password must be stored hashed")

	_, err = a.Register(ctx, "alice", "another")
	assert.ErrorIs(t, err, ErrUsernameExists)
	assert.Len(t, users.byName, 1)

	_, err = a.Register(ctx, "  ", "secret")
	assert.ErrorIs(t, err, ErrMissingInput)
	_, err = a.Register(ctx, "carol", "")
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestAuthenticate(t *testing.T) {
	a := NewPasswordAuthenticator(newMemUsers())
	ctx := context.Background()

	registered, err := a.Register(ctx, "alice", "secret")
	require.NoError(t, err)

	user, err := a.Authenticate(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, wrongPassword := a.Authenticate(ctx, "alice", "wrong")
	_, unknownUser := a.Authenticate(ctx, "nobody", "x")
	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

// brokenUsers fails every lookup.
type brokenUsers struct{ memUsers }

var errDiskFull = errors.New("disk I/O error")

func (*brokenUsers) GetUserByUsername(context.Context, string) (*models.User, error) {
	return nil, errDiskFull
}

func TestAuthenticateStoreFailure(t *testing.T) {
	a := NewPasswordAuthenticator(&brokenUsers{})

	_, err := a.Authenticate(context.Background(), "alice", "secret")
	require.Error(t, err)
	assert.ErrorIs(t, err, errDiskFull)
	assert.NotErrorIs(t, err, ErrInvalidCredentials, "store failures must not look like bad credentials")
}

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	user := models.NewUser("alice", "hash")

	token, err := m.Generate(user)
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)

	_, err = NewJWTManager("other-secret", time.Hour).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := NewJWTManager("test-secret", -time.Minute).Generate(user)
	require.NoError(t, err)
	_, err = m.Validate(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
