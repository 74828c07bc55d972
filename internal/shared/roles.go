package shared

// Role is the closed role enumeration for access control decisions.
type Role string

const (
	// RoleAdmin grants access to every protected operation.
	RoleAdmin Role = "admin"
	// RoleUser is the default role assigned on self-registration.
	RoleUser Role = "user"
)

// Valid reports whether the role is one of the enumerated values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Satisfies reports whether a subject holding this role meets the
// required role. Admin is a strict superset of user capabilities.
func (r Role) Satisfies(required Role) bool {
	if required == RoleAdmin {
		return r == RoleAdmin
	}
	return r.Valid()
}
