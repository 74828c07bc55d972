package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/KRTNP/User-Management-System-For-Train/internal/auth/password"
	"github.com/KRTNP/User-Management-System-For-Train/internal/shared"
)

// RepositoryPort defines data access methods for the user directory.
type RepositoryPort interface {
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Insert(ctx context.Context, username, email, passwordHash string, role shared.Role) (*User, error)
	Update(ctx context.Context, id int64, fields UpdateFields) (*User, error)
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]User, error)
}

// CreateInput carries the fields for an admin-created user. Unlike
// self-registration, the caller may supply a role.
type CreateInput struct {
	Username string
	Email    string
	Password string
	Role     shared.Role
}

// UpdateInput is the admin-facing sparse update. Password, when set,
// is plaintext and gets hashed before it reaches the store.
type UpdateInput struct {
	Username *string
	Email    *string
	Password *string
	Role     *shared.Role
}

// Service handles user management business logic.
type Service struct {
	repo   RepositoryPort
	hasher password.Hasher
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, hasher password.Hasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

// List returns all users, newest created first.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Get returns one user by id.
func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// Create inserts a user on behalf of an admin caller. An empty role
// defaults to user; anything outside the enumeration is rejected.
func (s *Service) Create(ctx context.Context, input CreateInput) (*User, error) {
	role := input.Role
	if role == "" {
		role = shared.RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", shared.ErrValidation, role)
	}
	if err := s.checkUsernameFree(ctx, input.Username); err != nil {
		return nil, err
	}
	if err := s.checkEmailFree(ctx, input.Email); err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	return s.repo.Insert(ctx, input.Username, input.Email, hash, role)
}

// Update applies a sparse patch to the target user. The self-demotion
// guard runs after the target is loaded and before the store mutation:
// an admin may not change their own role away from admin.
func (s *Service) Update(ctx context.Context, actor shared.Claims, id int64, input UpdateInput) (*User, error) {
	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Role != nil && !input.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", shared.ErrValidation, *input.Role)
	}
	if actor.UserID == target.ID && input.Role != nil && *input.Role != shared.RoleAdmin {
		return nil, shared.ErrSelfDemotion
	}

	if input.Username != nil && *input.Username != target.Username {
		if err := s.checkUsernameFree(ctx, *input.Username); err != nil {
			return nil, err
		}
	}
	if input.Email != nil && *input.Email != target.Email {
		if err := s.checkEmailFree(ctx, *input.Email); err != nil {
			return nil, err
		}
	}

	fields := UpdateFields{
		Username: input.Username,
		Email:    input.Email,
		Role:     input.Role,
	}
	if input.Password != nil {
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		fields.PasswordHash = &hash
	}
	return s.repo.Update(ctx, id, fields)
}

// Delete removes the target user. The self-deletion guard runs after
// the target is loaded and before the store mutation.
func (s *Service) Delete(ctx context.Context, actor shared.Claims, id int64) error {
	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if actor.UserID == target.ID {
		return shared.ErrSelfDeletion
	}
	existed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return shared.ErrNotFound
	}
	return nil
}

func (s *Service) checkUsernameFree(ctx context.Context, username string) error {
	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return fmt.Errorf("%w: username already taken", shared.ErrDuplicate)
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	return nil
}

func (s *Service) checkEmailFree(ctx context.Context, email string) error {
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return fmt.Errorf("%w: email already registered", shared.ErrDuplicate)
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	return nil
}
