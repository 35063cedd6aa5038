package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "obra-connect.backend/internal/domain/errors"
	"obra-connect.backend/internal/interfaces/http/response"
	"obra-connect.backend/pkg/logger"
	"obra-connect.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second
	// RetentionDuration is how long we keep the response
	RetentionDuration = 24 * time.Hour

	processingMarker = "processing"
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type storedResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the stored 2xx response of a request that
// already ran under the same Idempotency-Key for the same user. Keys of
// failed requests are released so the client can retry.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > 128 {
			response.Error(c, domainerrors.FieldError(IdempotencyHeader, "too long"))
			return
		}

		userID := "anonymous"
		if user, ok := CurrentUser(c); ok {
			userID = user.ID.String()
		}
		storageKey := fmt.Sprintf("idempotency:%s:%s:%s", userID, c.FullPath(), key)
		ctx := c.Request.Context()

		val, err := redisGet(ctx, storageKey)
		switch {
		case err == nil:
			replay(c, val)
			return
		case !redis.IsNil(err):
			logger.Warn(ctx, "Idempotency store unavailable", zap.Error(err))
			c.Next()
			return
		}

		acquired, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil {
			logger.Warn(ctx, "Idempotency lock failed", zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			conflict(c)
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			stored, _ := json.Marshal(storedResponse{Status: status, Body: w.body.String()})
			if err := redisSet(ctx, storageKey, string(stored), RetentionDuration); err != nil {
				logger.Warn(ctx, "Idempotency response not stored", zap.Error(err))
			}
			return
		}
		if _, err := redisDel(ctx, storageKey); err != nil {
			logger.Warn(ctx, "Idempotency key not released", zap.Error(err))
		}
	}
}

func replay(c *gin.Context, val string) {
	if val == processingMarker {
		conflict(c)
		return
	}
	var stored storedResponse
	if err := json.Unmarshal([]byte(val), &stored); err != nil || stored.Status == 0 {
		conflict(c)
		return
	}
	c.Header("X-Idempotency-Hit", "true")
	c.Data(stored.Status, "application/json; charset=utf-8", []byte(stored.Body))
	c.Abort()
}

func conflict(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusConflict, gin.H{
		"error":   "IDEMPOTENCY_CONFLICT",
		"message": "a request with this idempotency key is already in progress",
	})
}
