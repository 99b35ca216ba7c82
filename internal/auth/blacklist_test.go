package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBlacklist(t *testing.T) {
	b := NewMemoryBlacklist()
	defer b.Close()
	ctx := context.Background()

	revoked, err := b.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, b.Revoke(ctx, "token-a", time.Hour))
	revoked, err = b.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMemoryBlacklistIgnoresExpiredTokens(t *testing.T) {
	b := NewMemoryBlacklist()
	defer b.Close()
	ctx := context.Background()

	require.NoError(t, b.Revoke(ctx, "stale", -time.Minute))
	revoked, err := b.IsRevoked(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisBlacklist(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	b := NewRedisBlacklist(client)
	ctx := context.Background()

	revoked, err := b.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, b.Revoke(ctx, "token-a", time.Hour))
	revoked, err = b.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Redis drops the key once the token would have expired anyway.
	server.FastForward(2 * time.Hour)
	revoked, err = b.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, revoked)
}
