package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/pratama/phoneverify/internal/utils"
)

// RateLimiterConfig contains configuration for the rate limiter
type RateLimiterConfig struct {
	RedisClient *redis.Client
	Key         string        // Key prefix for Redis
	Limit       int           // Maximum number of requests
	Period      time.Duration // Time period for the limit
}

// RateLimiterMiddleware limits requests per client IP using Redis.
// This is edge abuse control; the per-session resend cooldown is
// enforced separately inside the verification state machine.
func RateLimiterMiddleware(config RateLimiterConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identifier := c.RealIP()

			key := fmt.Sprintf("%s:%s:%s", config.Key, c.Path(), identifier)

			ctx := context.Background()

			val, err := config.RedisClient.Get(ctx, key).Result()
			if err != nil && err != redis.Nil {
				return utils.ErrorResponseHandler(c, http.StatusInternalServerError, "Rate limiter error")
			}

			if err == redis.Nil {
				// First request in this window
				if err := config.RedisClient.Set(ctx, key, 1, config.Period).Err(); err != nil {
					return utils.ErrorResponseHandler(c, http.StatusInternalServerError, "Rate limiter error")
				}
				return next(c)
			}

			count, _ := strconv.Atoi(val)
			count++

			if count > config.Limit {
				ttl, err := config.RedisClient.TTL(ctx, key).Result()
				if err == nil {
					c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(config.Limit))
					c.Response().Header().Set("X-RateLimit-Remaining", "0")
					c.Response().Header().Set("Retry-After", strconv.FormatInt(int64(ttl.Seconds()), 10))
				}
				return utils.ErrorResponseHandler(c, http.StatusTooManyRequests, "Rate limit exceeded")
			}

			if err := config.RedisClient.Set(ctx, key, count, config.RedisClient.TTL(ctx, key).Val()).Err(); err != nil {
				return utils.ErrorResponseHandler(c, http.StatusInternalServerError, "Rate limiter error")
			}

			return next(c)
		}
	}
}
