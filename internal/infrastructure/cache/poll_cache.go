package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/votiy-api/internal/domain/entity"
	"github.com/oksasatya/votiy-api/pkg/helpers"
)

const publicPollsKey = "polls:public"

// PollCache stores the public poll listing in Redis. Every Redis failure is
// logged and treated as a miss.
type PollCache struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	logger logrus.FieldLogger
}

func NewPollCache(rdb redis.Cmdable, ttl time.Duration, logger logrus.FieldLogger) *PollCache {
	return &PollCache{rdb: rdb, ttl: ttl, logger: logger}
}

func (c *PollCache) GetPublic(ctx context.Context) ([]entity.Poll, bool) {
	var polls []entity.Poll
	ok, err := helpers.RedisGetJSON(ctx, c.rdb, publicPollsKey, &polls)
	if err != nil {
		c.logger.WithError(err).Warn("read public polls cache failed")
		return nil, false
	}
	return polls, ok
}

func (c *PollCache) SetPublic(ctx context.Context, polls []entity.Poll) {
	if c.ttl <= 0 {
		return
	}
	if polls == nil {
		polls = []entity.Poll{}
	}
	if err := helpers.RedisSetJSON(ctx, c.rdb, publicPollsKey, polls, c.ttl); err != nil {
		c.logger.WithError(err).Warn("write public polls cache failed")
	}
}

func (c *PollCache) Invalidate(ctx context.Context) {
	if err := helpers.RedisDel(ctx, c.rdb, publicPollsKey); err != nil {
		c.logger.WithError(err).Warn("invalidate public polls cache failed")
	}
}
