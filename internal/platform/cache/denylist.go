package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist is a short-lived token denylist keyed by token ID. It backs
// the revocation-check hook of the authorization middleware; entries
// only need to live as long as the token they shadow, so every key
// carries a TTL. Token validation stays stateless when no denylist is
// configured.
type Denylist struct {
	client *redis.Client
	prefix string
}

// NewDenylist constructs a denylist on top of an existing Redis client.
func NewDenylist(client *redis.Client, prefix string) *Denylist {
	if prefix == "" {
		prefix = "token_denylist"
	}
	return &Denylist{client: client, prefix: prefix}
}

// Revoke marks a token ID as revoked until its natural expiry.
func (d *Denylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, d.key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("platform/cache: revoke token: %w", err)
	}
	return nil
}

// Revoked reports whether a token ID has been revoked.
func (d *Denylist) Revoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("platform/cache: check token: %w", err)
	}
	return n > 0, nil
}

func (d *Denylist) key(tokenID string) string {
	return d.prefix + ":" + tokenID
}
