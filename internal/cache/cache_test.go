package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/user-stream-service/internal/cache"
	"github.com/maxviazov/user-stream-service/internal/model"
)

func TestFingerprint(t *testing.T) {
	a := cache.Fingerprint("SELECT 1", 10, 0)
	b := cache.Fingerprint("SELECT 1", 10, 10)
	c := cache.Fingerprint("SELECT 1", 10, 0)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, c)
}

func TestPageCache_RoundTrip(t *testing.T) {
	c, err := cache.New(16, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	key := cache.Fingerprint("SELECT id FROM user_data LIMIT $1 OFFSET $2", 2, 0)
	page := []model.User{{ID: "a", Age: 30}, {ID: "b", Age: 41}}

	_, ok := c.Get(key)
	assert.False(t, ok)

	c.Set(key, page)
	c.Wait()

	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, page, got)
}

func TestPageCache_NilIsNoOp(t *testing.T) {
	var c *cache.PageCache

	c.Set("key", []model.User{{ID: "x"}})
	_, ok := c.Get("key")
	assert.False(t, ok)

	// Wait and Close must not panic on the nil cache either.
	c.Wait()
	c.Close()
}

func TestNew_RejectsNonPositiveSize(t *testing.T) {
	_, err := cache.New(0, time.Minute)
	require.Error(t, err)
}
