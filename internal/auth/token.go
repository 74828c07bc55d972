package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/KRTNP/User-Management-System-For-Train/internal/shared"
	"github.com/KRTNP/User-Management-System-For-Train/internal/users"
)

// DefaultTokenTTL applies when configuration supplies none.
const DefaultTokenTTL = time.Hour

var (
	// ErrTokenInvalid covers bad signatures, malformed structure and
	// unexpected signing methods.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired means the signature checked out but the token is stale.
	ErrTokenExpired = errors.New("token expired")
)

type tokenClaims struct {
	Username string      `json:"username"`
	Role     shared.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenCodec issues and validates signed, self-contained session
// tokens. Validity is a pure function of the token bytes and the
// process-wide secret; nothing is persisted, so rotating the secret
// invalidates every outstanding token.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec constructs a codec with the given signing secret and TTL.
func NewTokenCodec(secret []byte, ttl time.Duration) *TokenCodec {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenCodec{secret: secret, ttl: ttl}
}

// Issue mints an HS256-signed token over the user's identity and role.
// Each token carries a unique ID so the revocation hook can key on it.
func (c *TokenCodec) Issue(user *users.User) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate checks signature integrity first, then expiry, and returns
// the embedded claims. Expired and forged tokens yield distinct errors
// so callers can tell stale from hostile in their logs, even though
// both map to the same HTTP outcome.
func (c *TokenCodec) Validate(raw string) (shared.Token, error) {
	parsed, err := jwt.ParseWithClaims(raw, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return shared.Token{}, ErrTokenExpired
		}
		return shared.Token{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return shared.Token{}, ErrTokenInvalid
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return shared.Token{}, fmt.Errorf("%w: bad subject", ErrTokenInvalid)
	}
	if !claims.Role.Valid() {
		return shared.Token{}, fmt.Errorf("%w: bad role", ErrTokenInvalid)
	}

	return shared.Token{
		Claims: shared.Claims{
			UserID:   userID,
			Username: claims.Username,
			Role:     claims.Role,
		},
		ID:        claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
