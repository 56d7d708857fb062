package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(&Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestJSONRoundTripAndMiss(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	var got []int
	found, err := client.GetJSON(ctx, "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, client.SetJSON(ctx, "numbers", []int{1, 2, 3}, time.Minute))
	found, err = client.GetJSON(ctx, "numbers", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestDeleteByPrefix(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.SetJSON(ctx, "products:list:a", 1, time.Minute))
	require.NoError(t, client.SetJSON(ctx, "products:list:b", 2, time.Minute))
	require.NoError(t, client.SetJSON(ctx, "orders:1", 3, time.Minute))

	require.NoError(t, client.DeleteByPrefix(ctx, "products:list:"))

	assert.False(t, mr.Exists("products:list:a"))
	assert.False(t, mr.Exists("products:list:b"))
	assert.True(t, mr.Exists("orders:1"))
}

func TestLockIsExclusiveAndTokenBound(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	ok, err := client.AcquireLock(ctx, "lock:k", "owner-1", 5*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.AcquireLock(ctx, "lock:k", "owner-2", 5*time.Second)
	require.NoError(t, err)
	assert.False(t, ok)

	// a foreign token must not release someone else's lock
	require.NoError(t, client.ReleaseLock(ctx, "lock:k", "owner-2"))
	assert.True(t, mr.Exists("lock:k"))

	require.NoError(t, client.ReleaseLock(ctx, "lock:k", "owner-1"))
	assert.False(t, mr.Exists("lock:k"))
}
