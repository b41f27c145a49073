package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestLRU(capacity int, ttl time.Duration) (*LRU[string, int], *fakeClock) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	return NewLRU[string, int](capacity, ttl, WithClock[string, int](clock.Now)), clock
}

func TestLRUPutGet(t *testing.T) {
	l, _ := newTestLRU(10, time.Minute)

	_, replaced := l.Put("a", 1)
	assert.False(t, replaced)

	v, ok := l.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	prev, replaced := l.Put("a", 2)
	assert.True(t, replaced)
	assert.Equal(t, 1, prev)
	assert.Equal(t, 1, l.Len())

	_, ok = l.Get("missing")
	assert.False(t, ok)
}

func TestLRURemoveOnce(t *testing.T) {
	l, _ := newTestLRU(10, time.Minute)
	l.Put("a", 1)

	v, ok := l.Remove("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = l.Remove("a")
	assert.False(t, ok)
	assert.Equal(t, 0, l.Len())
}

func TestLRUCapacityEvictsLeastRecentlyUsed(t *testing.T) {
	l, _ := newTestLRU(2, time.Minute)
	l.Put("a", 1)
	l.Put("b", 2)

	// touch a so that b becomes the eviction candidate
	_, ok := l.Get("a")
	require.True(t, ok)

	l.Put("c", 3)
	assert.Equal(t, 2, l.Len())

	_, ok = l.Get("b")
	assert.False(t, ok)
	_, ok = l.Get("a")
	assert.True(t, ok)
	_, ok = l.Get("c")
	assert.True(t, ok)
}

func TestLRUExpiry(t *testing.T) {
	l, clock := newTestLRU(10, time.Minute)
	l.Put("a", 1)

	clock.Advance(59 * time.Second)
	_, ok := l.Get("a")
	assert.True(t, ok)

	clock.Advance(time.Second)
	_, ok = l.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, l.Len(), "expired entries are reclaimed on access")

	l.Put("b", 2)
	clock.Advance(2 * time.Minute)
	_, ok = l.Remove("b")
	assert.False(t, ok)
}

func TestLRUPutOverExpiredEntry(t *testing.T) {
	l, clock := newTestLRU(10, time.Minute)
	l.Put("a", 1)
	clock.Advance(time.Hour)

	_, replaced := l.Put("a", 2)
	assert.False(t, replaced, "an expired entry is not reported as replaced")

	v, ok := l.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestLRUSweep(t *testing.T) {
	l, clock := newTestLRU(10, time.Minute)
	l.Put("a", 1)
	l.Put("b", 2)
	clock.Advance(30 * time.Second)
	l.Put("c", 3)

	clock.Advance(30 * time.Second)
	assert.Equal(t, 2, l.Sweep())
	assert.Equal(t, 1, l.Len())

	_, ok := l.Get("c")
	assert.True(t, ok)
}

func TestLRUWithoutTTL(t *testing.T) {
	l, clock := newTestLRU(1, 0)
	l.Put("a", 1)
	clock.Advance(24 * time.Hour)

	assert.Equal(t, 0, l.Sweep())
	_, ok := l.Get("a")
	assert.True(t, ok)
}
