package middleware

// Fixed-window rate limiter for the login endpoint, keyed on client IP.
// Login is the only route worth limiting here: it is unauthenticated and
// does a bcrypt comparison per attempt. A nil Redis client disables the
// limiter so the API keeps working without Redis.

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	loginWindow      = time.Minute
	loginMaxAttempts = 10
)

// LoginRateLimit counts attempts per IP per window in Redis and rejects
// with 429 once the window budget is spent.
func LoginRateLimit(rdb *redis.Client) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rdb == nil {
				return next(c)
			}
			key := "rl:login:" + c.RealIP()

			ctx, cancel := context.WithTimeout(c.Request().Context(), 500*time.Millisecond)
			defer cancel()
			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				// Redis down: let the request through rather than lock
				// everyone out.
				return next(c)
			}
			if n == 1 {
				_ = rdb.Expire(ctx, key, loginWindow).Err()
			}
			if n > loginMaxAttempts {
				return c.JSON(http.StatusTooManyRequests, echo.Map{"detail": "demasiados intentos, espere un momento"})
			}
			return next(c)
		}
	}
}
