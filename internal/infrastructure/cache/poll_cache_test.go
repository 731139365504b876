package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/votiy-api/internal/domain/entity"
	"github.com/oksasatya/votiy-api/pkg/helpers"
)

func newCache(t *testing.T, ttl time.Duration) (*PollCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewPollCache(rdb, ttl, helpers.NopLogger()), mr
}

func TestPollCache_RoundTrip(t *testing.T) {
	c, mr := newCache(t, time.Minute)
	ctx := context.Background()

	_, ok := c.GetPublic(ctx)
	assert.False(t, ok)

	polls := []entity.Poll{{
		ID:        7,
		Title:     "Lunch?",
		CreatorID: "u1",
		IsPublic:  true,
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Creator:   &entity.CreatorName{FirstName: "Ada", LastName: "L"},
		Options:   []entity.PollOption{{ID: 8, PollID: 7, Text: "Pizza"}},
	}}
	c.SetPublic(ctx, polls)

	got, ok := c.GetPublic(ctx)
	require.True(t, ok)
	assert.Equal(t, polls, got)
	assert.True(t, mr.TTL(publicPollsKey) > 0)

	c.Invalidate(ctx)
	_, ok = c.GetPublic(ctx)
	assert.False(t, ok)
}

func TestPollCache_EmptyListIsAHit(t *testing.T) {
	c, _ := newCache(t, time.Minute)
	ctx := context.Background()

	c.SetPublic(ctx, nil)
	got, ok := c.GetPublic(ctx)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestPollCache_ZeroTTLDisables(t *testing.T) {
	c, mr := newCache(t, 0)
	c.SetPublic(context.Background(), []entity.Poll{{ID: 1}})
	assert.False(t, mr.Exists(publicPollsKey))
}

func TestPollCache_RedisDownIsAMiss(t *testing.T) {
	c, mr := newCache(t, time.Minute)
	mr.Close()

	ctx := context.Background()
	c.SetPublic(ctx, []entity.Poll{{ID: 1}})
	_, ok := c.GetPublic(ctx)
	assert.False(t, ok)
	c.Invalidate(ctx)
}
