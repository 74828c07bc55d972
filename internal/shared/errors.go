package shared

import "errors"

var (
	// ErrNotFound indicates the target record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure. Deliberately generic:
	// callers must not learn whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrValidation indicates malformed input shape.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate indicates a username or email uniqueness violation.
	ErrDuplicate = errors.New("duplicate")
	// ErrUnauthorized indicates a missing, malformed or expired token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates a valid token with insufficient role.
	ErrForbidden = errors.New("forbidden")
	// ErrSelfDemotion occurs when an admin tries to drop their own admin role.
	ErrSelfDemotion = errors.New("admins cannot change their own role")
	// ErrSelfDeletion occurs when an admin targets their own account for deletion.
	ErrSelfDeletion = errors.New("admins cannot delete their own account")
)

// Expected reports whether the error is an anticipated user-facing
// outcome. Anything else is an internal failure that should alert an
// operator.
func Expected(err error) bool {
	for _, known := range []error{
		ErrNotFound, ErrValidation, ErrInvalidCredentials, ErrDuplicate,
		ErrUnauthorized, ErrForbidden, ErrSelfDemotion, ErrSelfDeletion,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
