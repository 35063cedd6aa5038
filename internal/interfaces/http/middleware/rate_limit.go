package middleware

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "obra-connect.backend/internal/domain/errors"
	"obra-connect.backend/internal/interfaces/http/response"
	"obra-connect.backend/pkg/logger"
	"obra-connect.backend/pkg/metrics"
	"obra-connect.backend/pkg/ratelimit"
)

// RateLimitMiddleware limits requests per client IP through store.
// A failing store lets the request through.
func RateLimitMiddleware(store ratelimit.Store, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		res, err := store.Allow(c.Request.Context(), key)
		if err != nil {
			logger.Warn(c.Request.Context(), "Rate limit store unavailable", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		if !res.Allowed {
			m.RateLimited()
			retry := int(math.Ceil(res.RetryAfter.Seconds()))
			if retry < 1 {
				retry = 1
			}
			c.Header("Retry-After", strconv.Itoa(retry))
			logger.Warn(c.Request.Context(), "Rate limit exceeded",
				zap.String("client_ip", key),
				zap.String("path", c.Request.URL.Path),
			)
			response.Error(c, domainerrors.RateLimited("too many requests, try again later"))
			return
		}
		c.Next()
	}
}
