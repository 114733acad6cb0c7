package middleware

// Redis-backed response cache for the read-only catalog endpoints. Catalog
// tables (categories, risk levels, technology types, manufacturers) change
// rarely but are read on every equipment form load, so short-lived caching
// takes real pressure off the database. The cache key is the request path
// plus query string; only 200 responses to GET are stored.

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const cacheTTL = 30 * time.Second

// bodyCapture tees the response body so it can be stored after the handler
// ran.
type bodyCapture struct {
	http.ResponseWriter
	buf    *bytes.Buffer
	status int
}

func (w *bodyCapture) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// CacheGET returns caching middleware bound to the given Redis client. A nil
// client disables caching and the middleware becomes a passthrough.
func CacheGET(rdb *redis.Client) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rdb == nil || c.Request().Method != http.MethodGet {
				return next(c)
			}
			key := "cache:" + c.Request().URL.RequestURI()

			ctx, cancel := context.WithTimeout(c.Request().Context(), 500*time.Millisecond)
			hit, err := rdb.Get(ctx, key).Bytes()
			cancel()
			if err == nil {
				return c.JSONBlob(http.StatusOK, hit)
			}

			cap := &bodyCapture{ResponseWriter: c.Response().Writer, buf: &bytes.Buffer{}, status: http.StatusOK}
			c.Response().Writer = cap
			if err := next(c); err != nil {
				return err
			}
			if cap.status == http.StatusOK && cap.buf.Len() > 0 {
				ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
				_ = rdb.Set(ctx, key, cap.buf.Bytes(), cacheTTL).Err()
				cancel()
			}
			return nil
		}
	}
}
