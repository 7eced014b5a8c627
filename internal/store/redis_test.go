package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/dukamarket/checkout-api/pkg/errors"
)

// setupTestRedis creates a miniredis server and a RedisStore against it.
func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisStoreWithClient(client, zap.NewNop()), mr
}

func TestRedisStore_SaveUsesPrefixedKeys(t *testing.T) {
	s, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleSnapshot("ord-9")))

	assert.True(t, mr.Exists("order_ord-9"))
	last, err := mr.Get("lastOrderId")
	require.NoError(t, err)
	assert.Equal(t, "ord-9", last)
}

func TestRedisStore_SaveSetsRetentionTTL(t *testing.T) {
	s, mr := setupTestRedis(t)

	require.NoError(t, s.Save(context.Background(), sampleSnapshot("ord-9")))

	assert.Equal(t, snapshotTTL, mr.TTL("order_ord-9"))
}

func TestRedisStore_LoadRoundTrip(t *testing.T) {
	s, _ := setupTestRedis(t)
	ctx := context.Background()

	want := sampleSnapshot("ord-9")
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx, "ord-9")
	require.NoError(t, err)
	assert.Equal(t, want.OrderID, got.OrderID)
	assert.Equal(t, want.Shipping, got.Shipping)
	assert.Equal(t, want.Sellers, got.Sellers)
}

func TestRedisStore_LoadMissing(t *testing.T) {
	s, _ := setupTestRedis(t)

	_, err := s.Load(context.Background(), "missing")
	var notFound *apperrors.ErrNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.ID)
}

func TestRedisStore_CorruptSnapshotTreatedAsNotFound(t *testing.T) {
	s, mr := setupTestRedis(t)

	require.NoError(t, mr.Set("order_bad", "{not json"))

	_, err := s.Load(context.Background(), "bad")
	var notFound *apperrors.ErrNotFound
	require.ErrorAs(t, err, &notFound)
}

func TestRedisStore_ClearCartFlagConsumedOnce(t *testing.T) {
	s, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, s.SetClearCartFlag(ctx, "ord-9"))

	set, err := s.ConsumeClearCartFlag(ctx, "ord-9")
	require.NoError(t, err)
	assert.True(t, set)

	set, err = s.ConsumeClearCartFlag(ctx, "ord-9")
	require.NoError(t, err)
	assert.False(t, set)
}
