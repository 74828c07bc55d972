// Package password implements the one-way credential hashing contract.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor applied when none is configured.
const DefaultCost = 12

// MinCost is the lowest work factor the service accepts.
const MinCost = 10

var (
	// ErrHashingFailed indicates the underlying crypto primitive failed.
	// Fatal to the calling operation; there is no plaintext fallback.
	ErrHashingFailed = errors.New("password hashing failed")
	// ErrCorruptCredential indicates the stored hash is not valid bcrypt data.
	ErrCorruptCredential = errors.New("corrupt stored credential")
)

// Hasher produces and verifies salted bcrypt credentials.
type Hasher struct {
	cost int
}

// NewHasher builds a Hasher with the given work factor. Costs below
// MinCost are raised to DefaultCost.
func NewHasher(cost int) Hasher {
	if cost < MinCost {
		cost = DefaultCost
	}
	return Hasher{cost: cost}
}

// Hash derives a salted one-way hash of the plaintext. bcrypt embeds a
// random salt, so two calls with the same input produce different outputs.
func (h Hasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashingFailed, err)
	}
	return string(hashed), nil
}

// Verify recomputes the hash using the salt embedded in credential and
// compares. A mismatch is (false, nil); only malformed stored data is
// an error.
func (h Hasher) Verify(plain, credential string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(credential), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrCorruptCredential, err)
	}
}
