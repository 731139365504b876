package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Limiter builds RateLimit handlers against one Redis client. A nil Limiter,
// or one built without a client, yields pass-through handlers.
type Limiter struct {
	rdb   redis.Scripter
	allow AllowFunc
}

func NewLimiter(rdb *redis.Client, allow AllowFunc) *Limiter {
	if rdb == nil {
		return &Limiter{allow: allow}
	}
	return &Limiter{rdb: rdb, allow: allow}
}

func (l *Limiter) build(max int, window time.Duration, keyFn KeyFunc) gin.HandlerFunc {
	if l == nil || l.rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return RateLimit(l.rdb, max, window, keyFn, l.allow)
}

func (l *Limiter) PerIP(max int, window time.Duration) gin.HandlerFunc {
	return l.build(max, window, KeyByIP())
}

func (l *Limiter) PerIPAndPath(max int, window time.Duration) gin.HandlerFunc {
	return l.build(max, window, KeyByIPAndPath())
}

func (l *Limiter) PerUser(max int, window time.Duration) gin.HandlerFunc {
	return l.build(max, window, KeyByUserID())
}
