package users

import (
	"time"

	"github.com/KRTNP/User-Management-System-For-Train/internal/shared"
)

// User represents one account in the directory. The stored credential
// never serializes: every JSON representation of a user omits it.
type User struct {
	ID           int64       `json:"id"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         shared.Role `json:"role"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// UpdateFields is a sparse patch over a user record. Nil fields are
// left untouched; the allowed-field list is enforced by the type
// system rather than a runtime filter.
type UpdateFields struct {
	Username     *string
	Email        *string
	PasswordHash *string
	Role         *shared.Role
}

// Empty reports whether the patch carries no changes.
func (f UpdateFields) Empty() bool {
	return f.Username == nil && f.Email == nil && f.PasswordHash == nil && f.Role == nil
}
