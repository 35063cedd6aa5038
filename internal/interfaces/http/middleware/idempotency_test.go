package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"obra-connect.backend/internal/domain/entities"
	redispkg "obra-connect.backend/pkg/redis"
)

func startMiniRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	srv := miniredis.RunT(t)
	cli := redisv9.NewClient(&redisv9.Options{Addr: srv.Addr()})
	redispkg.SetClient(cli)
	t.Cleanup(func() { _ = cli.Close() })
	return srv
}

func idempotentRouter(user *entities.User, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if user != nil {
			setUser(c, user)
		}
		c.Next()
	})
	r.Use(IdempotencyMiddleware())
	r.POST("/x", handler)
	return r
}

func postWithKey(r *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	if key != "" {
		req.Header.Set(IdempotencyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotencyMiddleware_NoHeaderPassthrough(t *testing.T) {
	calls := 0
	r := idempotentRouter(nil, func(c *gin.Context) { calls++; c.Status(http.StatusNoContent) })
	require.Equal(t, http.StatusNoContent, postWithKey(r, "").Code)
	require.Equal(t, http.StatusNoContent, postWithKey(r, "").Code)
	require.Equal(t, 2, calls)
}

func TestIdempotencyMiddleware_StoresAndReplaysSuccess(t *testing.T) {
	startMiniRedis(t)
	user := &entities.User{ID: uuid.New(), Role: entities.UserRoleProfessional}
	calls := 0
	r := idempotentRouter(user, func(c *gin.Context) {
		calls++
		c.String(http.StatusCreated, `{"id":1}`)
	})

	require.Equal(t, http.StatusCreated, postWithKey(r, "key-3").Code)

	w := postWithKey(r, "key-3")
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "true", w.Header().Get("X-Idempotency-Hit"))
	require.Equal(t, `{"id":1}`, w.Body.String())
	require.Equal(t, 1, calls)

	other := idempotentRouter(&entities.User{ID: uuid.New()}, func(c *gin.Context) {
		calls++
		c.String(http.StatusCreated, `{"id":2}`)
	})
	require.Equal(t, `{"id":2}`, postWithKey(other, "key-3").Body.String())
}

func TestIdempotencyMiddleware_ProcessingConflict(t *testing.T) {
	srv := startMiniRedis(t)
	user := &entities.User{ID: uuid.New()}
	require.NoError(t, srv.Set("idempotency:"+user.ID.String()+":/x:key-1", processingMarker))

	r := idempotentRouter(user, func(c *gin.Context) { c.Status(http.StatusCreated) })
	w := postWithKey(r, "key-1")
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "IDEMPOTENCY_CONFLICT")
}

func TestIdempotencyMiddleware_ReleasesKeyOnFailure(t *testing.T) {
	srv := startMiniRedis(t)
	user := &entities.User{ID: uuid.New()}
	status := http.StatusBadRequest
	r := idempotentRouter(user, func(c *gin.Context) { c.String(status, "bad") })

	require.Equal(t, http.StatusBadRequest, postWithKey(r, "key-4").Code)
	require.False(t, srv.Exists("idempotency:"+user.ID.String()+":/x:key-4"))

	status = http.StatusCreated
	require.Equal(t, http.StatusCreated, postWithKey(r, "key-4").Code)
}

func TestIdempotencyMiddleware_RejectsLongKey(t *testing.T) {
	r := idempotentRouter(nil, func(c *gin.Context) { c.Status(http.StatusCreated) })
	long := make([]byte, 129)
	for i := range long {
		long[i] = 'k'
	}
	require.Equal(t, http.StatusBadRequest, postWithKey(r, string(long)).Code)
}

func TestIdempotencyMiddleware_WithHookedRedis(t *testing.T) {
	origGet, origSet, origSetNX, origDel := redisGet, redisSet, redisSetNX, redisDel
	t.Cleanup(func() {
		redisGet, redisSet, redisSetNX, redisDel = origGet, origSet, origSetNX, origDel
	})

	t.Run("store error fails open", func(t *testing.T) {
		redisGet = func(context.Context, string) (string, error) { return "", errors.New("connection refused") }
		r := idempotentRouter(nil, func(c *gin.Context) { c.Status(http.StatusAccepted) })
		require.Equal(t, http.StatusAccepted, postWithKey(r, "k").Code)
	})

	t.Run("lost lock race", func(t *testing.T) {
		redisGet = func(context.Context, string) (string, error) { return "", redisv9.Nil }
		redisSetNX = func(context.Context, string, interface{}, time.Duration) (bool, error) { return false, nil }
		r := idempotentRouter(nil, func(c *gin.Context) { c.Status(http.StatusCreated) })
		require.Equal(t, http.StatusConflict, postWithKey(r, "k").Code)
	})

	t.Run("garbage stored value", func(t *testing.T) {
		redisGet = func(context.Context, string) (string, error) { return "not-json", nil }
		r := idempotentRouter(nil, func(c *gin.Context) { c.Status(http.StatusCreated) })
		require.Equal(t, http.StatusConflict, postWithKey(r, "k").Code)
	})

	t.Run("store result errors are swallowed", func(t *testing.T) {
		redisGet = func(context.Context, string) (string, error) { return "", redisv9.Nil }
		redisSetNX = func(context.Context, string, interface{}, time.Duration) (bool, error) { return true, nil }
		redisSet = func(context.Context, string, interface{}, time.Duration) error { return errors.New("oom") }
		redisDel = func(context.Context, ...string) (int64, error) { return 0, errors.New("oom") }

		ok := idempotentRouter(nil, func(c *gin.Context) { c.String(http.StatusCreated, `{}`) })
		require.Equal(t, http.StatusCreated, postWithKey(ok, "k").Code)
		fail := idempotentRouter(nil, func(c *gin.Context) { c.String(http.StatusBadRequest, "bad") })
		require.Equal(t, http.StatusBadRequest, postWithKey(fail, "k").Code)
	})
}
