package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/uniroute-labs/uniroute/domain/cache"
)

func TestCache_SetGet(t *testing.T) {
	c := cache.New()

	c.Set("key", 42, 0)

	value, ok := c.Get("key")
	require.True(t, ok)
	require.Equal(t, 42, value)

	_, ok = c.Get("missing")
	require.False(t, ok)
}

func TestCache_Expiration(t *testing.T) {
	c := cache.New()

	c.Set("short", "value", time.Nanosecond)
	time.Sleep(time.Millisecond)

	_, ok := c.Get("short")
	require.False(t, ok)

	c.Set("forever", "value", 0)
	value, ok := c.Get("forever")
	require.True(t, ok)
	require.Equal(t, "value", value)
}

func TestCache_Delete(t *testing.T) {
	c := cache.New()

	c.Set("key", 1, 0)
	c.Delete("key")

	_, ok := c.Get("key")
	require.False(t, ok)
	require.Zero(t, c.Len())
}
