package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health pings Postgres and Redis and reports per-dependency status.
// Returns 503 when either dependency is down so load balancers pull the
// instance out of rotation. No credentials or internals in the body.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbOK := false
		if sqlDB, err := db.DB(); err == nil && sqlDB.PingContext(ctx) == nil {
			dbOK = true
		}
		redisOK := rdb.Ping(ctx).Err() == nil

		code := http.StatusOK
		if !dbOK || !redisOK {
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"ok":    code == http.StatusOK,
			"db":    statusWord(dbOK),
			"redis": statusWord(redisOK),
		})
	}
}

func statusWord(ok bool) string {
	if ok {
		return "connected"
	}
	return "error"
}
