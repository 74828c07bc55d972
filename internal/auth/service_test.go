package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/KRTNP/User-Management-System-For-Train/internal/auth"
	"github.com/KRTNP/User-Management-System-For-Train/internal/auth/password"
	"github.com/KRTNP/User-Management-System-For-Train/internal/shared"
	"github.com/KRTNP/User-Management-System-For-Train/internal/users"
)

type memoryDirectory struct {
	users  map[int64]*users.User
	nextID int64
}

func newMemoryDirectory() *memoryDirectory {
	return &memoryDirectory{users: make(map[int64]*users.User)}
}

func (d *memoryDirectory) FindByID(_ context.Context, id int64) (*users.User, error) {
	if user, ok := d.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (d *memoryDirectory) FindByUsername(_ context.Context, username string) (*users.User, error) {
	for _, user := range d.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (d *memoryDirectory) FindByEmail(_ context.Context, email string) (*users.User, error) {
	for _, user := range d.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (d *memoryDirectory) Insert(_ context.Context, username, email, passwordHash string, role shared.Role) (*users.User, error) {
	for _, user := range d.users {
		if user.Username == username || user.Email == email {
			return nil, shared.ErrDuplicate
		}
	}
	d.nextID++
	now := time.Now()
	user := &users.User{
		ID:           d.nextID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	d.users[user.ID] = user
	copied := *user
	return &copied, nil
}

func newAuthService(directory *memoryDirectory) (*auth.Service, *auth.TokenCodec) {
	codec := auth.NewTokenCodec([]byte("service-test-secret"), time.Hour)
	return auth.NewService(directory, password.NewHasher(password.MinCost), codec), codec
}

func TestRegisterAssignsUserRole(t *testing.T) {
	directory := newMemoryDirectory()
	service, codec := newAuthService(directory)
	ctx := context.Background()

	raw, user, err := service.Register(ctx, "alice", "alice@example.com", "secret-pass-1")
	require.NoError(t, err)
	require.Equal(t, shared.RoleUser, user.Role)
	require.NotEqual(t, "secret-pass-1", user.PasswordHash)

	token, err := codec.Validate(raw)
	require.NoError(t, err)
	require.Equal(t, user.ID, token.UserID)
	require.Equal(t, "alice", token.Username)
	require.Equal(t, shared.RoleUser, token.Role)
}

func TestRegisterDuplicateShortCircuits(t *testing.T) {
	directory := newMemoryDirectory()
	service, _ := newAuthService(directory)
	ctx := context.Background()

	_, first, err := service.Register(ctx, "admin", "admin@example.com", "secret-pass-1")
	require.NoError(t, err)

	_, _, err = service.Register(ctx, "admin", "other@example.com", "secret-pass-2")
	require.ErrorIs(t, err, shared.ErrDuplicate)

	_, _, err = service.Register(ctx, "other", "admin@example.com", "secret-pass-2")
	require.ErrorIs(t, err, shared.ErrDuplicate)

	// First account untouched by the failed attempts.
	stored, err := directory.FindByID(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, "admin", stored.Username)
	require.Equal(t, "admin@example.com", stored.Email)
}

func TestLoginGenericFailure(t *testing.T) {
	directory := newMemoryDirectory()
	service, _ := newAuthService(directory)
	ctx := context.Background()

	_, _, err := service.Register(ctx, "alice", "alice@example.com", "secret-pass-1")
	require.NoError(t, err)

	_, _, wrongPassword := service.Login(ctx, "alice", "wrong-password")
	require.ErrorIs(t, wrongPassword, shared.ErrInvalidCredentials)

	_, _, unknownUser := service.Login(ctx, "nobody", "secret-pass-1")
	require.ErrorIs(t, unknownUser, shared.ErrInvalidCredentials)

	// Identical error either way: no account enumeration.
	require.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestLoginSuccessIssuesToken(t *testing.T) {
	directory := newMemoryDirectory()
	service, codec := newAuthService(directory)
	ctx := context.Background()

	_, registered, err := service.Register(ctx, "alice", "alice@example.com", "secret-pass-1")
	require.NoError(t, err)

	raw, user, err := service.Login(ctx, "alice", "secret-pass-1")
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)

	token, err := codec.Validate(raw)
	require.NoError(t, err)
	require.Equal(t, registered.ID, token.UserID)
}

func TestWhoamiTokenOutlivesAccount(t *testing.T) {
	directory := newMemoryDirectory()
	service, _ := newAuthService(directory)
	ctx := context.Background()

	_, user, err := service.Register(ctx, "alice", "alice@example.com", "secret-pass-1")
	require.NoError(t, err)

	found, err := service.Whoami(ctx, shared.Claims{UserID: user.ID})
	require.NoError(t, err)
	require.Equal(t, user.ID, found.ID)

	delete(directory.users, user.ID)
	_, err = service.Whoami(ctx, shared.Claims{UserID: user.ID})
	require.ErrorIs(t, err, shared.ErrNotFound)
}
