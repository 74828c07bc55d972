package shared

import "time"

// Token is the result of validating a session token: the identity
// claims plus the metadata the middleware layer needs (the token ID
// feeds the optional revocation check).
type Token struct {
	Claims
	ID        string
	ExpiresAt time.Time
}
