package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
}

func newCache(t *testing.T) (*miniredis.Miniredis, *Cache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	Instrument(client)
	t.Cleanup(func() { _ = client.Close() })
	return mr, New(client)
}

func TestAside_LoadsOnceThenServesFromRedis(t *testing.T) {
	mr, c := newCache(t)
	ctx := context.Background()

	calls := 0
	load := func(context.Context) (payload, error) {
		calls++
		return payload{Name: "AI Agents"}, nil
	}

	first, err := Aside(ctx, c, TrendKey("t1"), TrendTTL, load)
	require.NoError(t, err)
	second, err := Aside(ctx, c, TrendKey("t1"), TrendTTL, load)
	require.NoError(t, err)

	assert.Equal(t, "AI Agents", first.Name)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, TrendTTL, mr.TTL("trend:t1"))

	c.InvalidateTrend(ctx, "t1")
	assert.False(t, mr.Exists("trend:t1"))

	_, err = Aside(ctx, c, TrendKey("t1"), TrendTTL, load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestAside_LoadErrorIsNotCached(t *testing.T) {
	mr, c := newCache(t)
	boom := errors.New("boom")

	_, err := Aside(context.Background(), c, "k", time.Minute, func(context.Context) (payload, error) {
		return payload{}, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("k"))
}

func TestAside_CorruptEntryIsReloaded(t *testing.T) {
	mr, c := newCache(t)
	require.NoError(t, mr.Set("k", "{not json"))

	got, err := Aside(context.Background(), c, "k", time.Minute, func(context.Context) (payload, error) {
		return payload{Name: "fresh"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.Name)
}

func TestAside_DisabledCacheCallsLoader(t *testing.T) {
	var c *Cache
	assert.False(t, c.Enabled())
	assert.False(t, New(nil).Enabled())

	calls := 0
	for i := 0; i < 2; i++ {
		_, err := Aside(context.Background(), New(nil), "k", time.Minute, func(context.Context) (payload, error) {
			calls++
			return payload{}, nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)

	New(nil).Invalidate(context.Background(), "k")
}

func TestConnect_UnreachableReturnsNil(t *testing.T) {
	assert.Nil(t, Connect("redis://%zz"))

	mr := miniredis.RunT(t)
	client := Connect(mr.Addr())
	require.NotNil(t, client)
	_ = client.Close()
}
