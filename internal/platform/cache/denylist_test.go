package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/KRTNP/User-Management-System-For-Train/internal/platform/cache"
)

func newDenylist(t *testing.T) (*cache.Denylist, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewDenylist(client, "test_denylist"), mr
}

func TestDenylistRevoke(t *testing.T) {
	denylist, _ := newDenylist(t)
	ctx := context.Background()

	revoked, err := denylist.Revoked(ctx, "token-1")
	require.NoError(t, err)
	require.False(t, revoked)

	require.NoError(t, denylist.Revoke(ctx, "token-1", time.Minute))

	revoked, err = denylist.Revoked(ctx, "token-1")
	require.NoError(t, err)
	require.True(t, revoked)

	// Other tokens stay valid.
	revoked, err = denylist.Revoked(ctx, "token-2")
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestDenylistEntriesExpire(t *testing.T) {
	denylist, mr := newDenylist(t)
	ctx := context.Background()

	require.NoError(t, denylist.Revoke(ctx, "token-1", time.Minute))
	mr.FastForward(2 * time.Minute)

	revoked, err := denylist.Revoked(ctx, "token-1")
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestDenylistZeroTTLIsNoop(t *testing.T) {
	denylist, _ := newDenylist(t)
	ctx := context.Background()

	require.NoError(t, denylist.Revoke(ctx, "token-1", 0))

	revoked, err := denylist.Revoked(ctx, "token-1")
	require.NoError(t, err)
	require.False(t, revoked)
}
