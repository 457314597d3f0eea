package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewWithClient(client), mr
}

func TestGetSetJSON(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, c.SetJSON(ctx, "k", payload{Name: "jane", Count: 3}, time.Minute))

	var got payload
	require.NoError(t, c.GetJSON(ctx, "k", &got))
	assert.Equal(t, "jane", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestGetJSONMiss(t *testing.T) {
	c, _ := newTestCache(t)

	var got map[string]string
	err := c.GetJSON(context.Background(), "absent", &got)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "k", "v", time.Minute))
	mr.FastForward(2 * time.Minute)

	var got string
	assert.ErrorIs(t, c.GetJSON(ctx, "k", &got), ErrMiss)
}

func TestDeletePrefix(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "directory:list:1", "a", time.Minute))
	require.NoError(t, c.SetJSON(ctx, "directory:profile:jane-doe", "b", time.Minute))
	require.NoError(t, c.SetJSON(ctx, "oauth:state:xyz", "c", time.Minute))

	require.NoError(t, c.DeletePrefix(ctx, "directory:"))

	var got string
	assert.ErrorIs(t, c.GetJSON(ctx, "directory:list:1", &got), ErrMiss)
	assert.ErrorIs(t, c.GetJSON(ctx, "directory:profile:jane-doe", &got), ErrMiss)
	assert.NoError(t, c.GetJSON(ctx, "oauth:state:xyz", &got), "other prefixes survive")
}
