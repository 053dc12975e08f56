package replay

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"webhook-verifier/internal/common/errors"
	"webhook-verifier/internal/redis"
)

func newTestGuard(t *testing.T) (*RedisGuard, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client, err := redis.NewClient(&redis.Config{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return NewRedisGuard(client), mr
}

func TestRedisGuard_Seen(t *testing.T) {
	guard, mr := newTestGuard(t)
	ctx := context.Background()
	key := Key("stripe", "t=1,v1=abc")

	seen, err := guard.Seen(ctx, key, 10*time.Minute)
	require.NoError(t, err)
	assert.False(t, seen, "first delivery")

	seen, err = guard.Seen(ctx, key, 10*time.Minute)
	require.NoError(t, err)
	assert.True(t, seen, "replayed delivery")

	other, err := guard.Seen(ctx, Key("stripe", "t=1,v1=abd"), 10*time.Minute)
	require.NoError(t, err)
	assert.False(t, other)

	assert.Equal(t, 10*time.Minute, mr.TTL(key))

	mr.FastForward(11 * time.Minute)

	seen, err = guard.Seen(ctx, key, 10*time.Minute)
	require.NoError(t, err)
	assert.False(t, seen, "expired key is accepted again")
}

func TestRedisGuard_InvalidTTL(t *testing.T) {
	guard, _ := newTestGuard(t)

	_, err := guard.Seen(context.Background(), "k", 0)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeValidation))
}

func TestRedisGuard_StoreDown(t *testing.T) {
	guard, mr := newTestGuard(t)
	mr.Close()

	_, err := guard.Seen(context.Background(), "k", time.Minute)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeConnection))
}

func TestKey(t *testing.T) {
	key := Key("razorpay", "deadbeef")

	assert.True(t, strings.HasPrefix(key, "replay:razorpay:"))
	assert.NotContains(t, key, "deadbeef")
	assert.Equal(t, key, Key("razorpay", "deadbeef"))
	assert.NotEqual(t, key, Key("stripe", "deadbeef"))
	assert.Len(t, strings.TrimPrefix(key, "replay:razorpay:"), 64)
}
