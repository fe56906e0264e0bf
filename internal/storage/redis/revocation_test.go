package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/authgate/internal/model"
)

func newTestCache(t *testing.T) (*RevocationCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRevocationCache(client, time.Second), mr
}

func TestRevocationCache_RevokeAndCheck(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	revoked, err := cache.IsRevoked(ctx, "tok-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, cache.Revoke(ctx, "tok-1", time.Minute))

	revoked, err = cache.IsRevoked(ctx, "tok-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	val, err := mr.Get("revoked:tok-1")
	require.NoError(t, err)
	assert.Equal(t, "1", val)
	assert.Equal(t, time.Minute, mr.TTL("revoked:tok-1"))

	revoked, err = cache.IsRevoked(ctx, "tok-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevocationCache_EntryExpires(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	require.NoError(t, cache.Revoke(ctx, "tok", 30*time.Second))
	mr.FastForward(31 * time.Second)

	revoked, err := cache.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevocationCache_NonPositiveTTL(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	require.NoError(t, cache.Revoke(ctx, "tok", 0))
	assert.False(t, mr.Exists("revoked:tok"))
}

func TestRevocationCache_Unavailable(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)
	mr.Close()

	_, err := cache.IsRevoked(ctx, "tok")
	require.ErrorIs(t, err, model.ErrUpstreamUnavailable)

	err = cache.Revoke(ctx, "tok", time.Minute)
	require.ErrorIs(t, err, model.ErrUpstreamUnavailable)
}

func TestNewClient(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	client, err := NewClient(ctx, Options{Addr: mr.Addr(), Timeout: time.Second})
	require.NoError(t, err)
	defer client.Close()

	mr.Close()
	_, err = NewClient(ctx, Options{Addr: mr.Addr(), Timeout: 200 * time.Millisecond})
	require.Error(t, err)
}
