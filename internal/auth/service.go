package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/KRTNP/User-Management-System-For-Train/internal/auth/password"
	"github.com/KRTNP/User-Management-System-For-Train/internal/shared"
	"github.com/KRTNP/User-Management-System-For-Train/internal/users"
)

// Directory is the narrow slice of the user store the auth flows need.
type Directory interface {
	FindByID(ctx context.Context, id int64) (*users.User, error)
	FindByUsername(ctx context.Context, username string) (*users.User, error)
	FindByEmail(ctx context.Context, email string) (*users.User, error)
	Insert(ctx context.Context, username, email, passwordHash string, role shared.Role) (*users.User, error)
}

// Service wraps registration and login business rules.
type Service struct {
	directory Directory
	hasher    password.Hasher
	tokens    *TokenCodec
}

// NewService constructs a new Service.
func NewService(directory Directory, hasher password.Hasher, tokens *TokenCodec) *Service {
	return &Service{directory: directory, hasher: hasher, tokens: tokens}
}

// Register creates an account with role user. Self-registration can
// never mint an admin; that path exists only on the admin-facing user
// service. Uniqueness pre-checks run before hashing.
func (s *Service) Register(ctx context.Context, username, email, plainPassword string) (string, *users.User, error) {
	if _, err := s.directory.FindByUsername(ctx, username); err == nil {
		return "", nil, fmt.Errorf("%w: username already taken", shared.ErrDuplicate)
	} else if !errors.Is(err, shared.ErrNotFound) {
		return "", nil, err
	}
	if _, err := s.directory.FindByEmail(ctx, email); err == nil {
		return "", nil, fmt.Errorf("%w: email already registered", shared.ErrDuplicate)
	} else if !errors.Is(err, shared.ErrNotFound) {
		return "", nil, err
	}

	hash, err := s.hasher.Hash(plainPassword)
	if err != nil {
		return "", nil, err
	}
	user, err := s.directory.Insert(ctx, username, email, hash, shared.RoleUser)
	if err != nil {
		// The store's uniqueness constraints catch pre-check races.
		return "", nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Login validates username/password credentials and issues a token.
// Unknown usernames and wrong passwords produce the identical generic
// error: callers must not be able to enumerate accounts.
func (s *Service) Login(ctx context.Context, username, plainPassword string) (string, *users.User, error) {
	user, err := s.directory.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return "", nil, shared.ErrInvalidCredentials
		}
		return "", nil, err
	}
	ok, err := s.hasher.Verify(plainPassword, user.PasswordHash)
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, shared.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Whoami resolves validated claims back to the stored record. A token
// can outlive its account; that surfaces as shared.ErrNotFound.
func (s *Service) Whoami(ctx context.Context, claims shared.Claims) (*users.User, error) {
	return s.directory.FindByID(ctx, claims.UserID)
}
