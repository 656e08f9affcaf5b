package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_SetAndGet(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	s, err := OpenRedisStore(ctx, "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, s.Close()) })

	_, err = s.Get(ctx, "user_id")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.SetValues(ctx, map[string]string{"user_token": "tok", "user_id": "7"}))

	v, err := s.Get(ctx, "user_id")
	require.NoError(t, err)
	assert.Equal(t, "7", v)

	// keys are namespaced
	raw, err := mr.Get("storefront:user_token")
	require.NoError(t, err)
	assert.Equal(t, "tok", raw)
}

func TestRedisStore_ConnectionError(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStore(client)
	t.Cleanup(func() { _ = s.Close() })

	mr.Close()

	_, err := s.Get(context.Background(), "user_id")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
