package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obra-connect.backend/pkg/redis"
)

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	srv := miniredis.RunT(t)
	cli := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	redis.SetClient(cli)
	t.Cleanup(func() { _ = cli.Close() })
	return srv
}

func TestResetCodeStore_Lifecycle(t *testing.T) {
	srv := setupRedis(t)
	store := NewResetCodeStore()
	ctx := context.Background()

	_, found, err := store.Digest(ctx, "joao@x.com")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Save(ctx, "Joao@X.com", "digest-1", 15*time.Minute))
	digest, found, err := store.Digest(ctx, "joao@x.com")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "digest-1", digest)
	assert.True(t, srv.TTL(resetCodePrefix+"joao@x.com") > 0)

	n, err := store.RegisterFailure(ctx, "joao@x.com", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = store.RegisterFailure(ctx, "joao@x.com", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, store.Save(ctx, "joao@x.com", "digest-2", 15*time.Minute))
	failures, err := store.Failures(ctx, "joao@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(2), failures)
	n, err = store.RegisterFailure(ctx, "joao@x.com", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	ok, err := store.Consume(ctx, "joao@x.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Consume(ctx, "joao@x.com")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, srv.Exists(resetAttemptsPrefix+"joao@x.com"))
}

func TestResetCodeStore_FailuresOutliveNewCodes(t *testing.T) {
	srv := setupRedis(t)
	store := NewResetCodeStore()
	ctx := context.Background()

	failures, err := store.Failures(ctx, "joao@x.com")
	require.NoError(t, err)
	assert.Zero(t, failures)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Save(ctx, "joao@x.com", "digest", 15*time.Minute))
		_, err := store.RegisterFailure(ctx, "joao@x.com", 15*time.Minute)
		require.NoError(t, err)
	}
	require.NoError(t, store.Save(ctx, "joao@x.com", "digest-new", 15*time.Minute))

	failures, err = store.Failures(ctx, "Joao@X.com")
	require.NoError(t, err)
	assert.Equal(t, int64(5), failures)

	srv.FastForward(16 * time.Minute)
	failures, err = store.Failures(ctx, "joao@x.com")
	require.NoError(t, err)
	assert.Zero(t, failures)
}

func TestResetCodeStore_Expiry(t *testing.T) {
	srv := setupRedis(t)
	store := NewResetCodeStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "a@b.com", "d", time.Minute))
	srv.FastForward(2 * time.Minute)

	_, found, err := store.Digest(ctx, "a@b.com")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestResetCodeStore_Errors(t *testing.T) {
	origGet, origDel := getResetValue, delResetValue
	t.Cleanup(func() {
		getResetValue = origGet
		delResetValue = origDel
	})

	store := NewResetCodeStore()
	ctx := context.Background()

	getResetValue = func(context.Context, string) (string, error) { return "", errors.New("conn reset") }
	_, _, err := store.Digest(ctx, "a@b.com")
	require.Error(t, err)

	_, err = store.Failures(ctx, "a@b.com")
	require.Error(t, err)

	delResetValue = func(context.Context, ...string) (int64, error) { return 0, errors.New("conn reset") }
	_, err = store.Consume(ctx, "a@b.com")
	require.Error(t, err)
}
