package framegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransientCacheDefaults(t *testing.T) {
	c := NewTransientResourceCache(CacheConfig{MaxIdleFrames: -3})
	assert.Equal(t, 256, c.Stats().Capacity)
	assert.Zero(t, c.maxIdle)
	assert.Same(t, DefaultMetrics, c.metrics)
}

func TestTransientCacheGetPut(t *testing.T) {
	c := NewTransientResourceCache(CacheConfig{Metrics: NewGraphMetrics()})
	desc := bufferDesc("a", 64)

	_, ok := c.Get(desc)
	require.False(t, ok)

	buf := NewBuffer(desc, "native")
	assert.Empty(t, c.Put(buf))
	assert.Equal(t, 1, c.Count(bufferDesc("other label", 64)))
	assert.Zero(t, c.Count(bufferDesc("a", 128)))

	got, ok := c.Get(bufferDesc("b", 64))
	require.True(t, ok)
	assert.Same(t, buf, got)
	assert.Zero(t, c.Len())
}

func TestTransientCacheEndFrameWithoutIdleLimit(t *testing.T) {
	c := NewTransientResourceCache(CacheConfig{Metrics: NewGraphMetrics()})
	dev := &countingDevice{}
	c.Put(NewBuffer(bufferDesc("a", 64), nil))

	for i := 0; i < 100; i++ {
		assert.Zero(t, c.EndFrame(dev))
	}
	assert.Equal(t, 1, c.Len())
	assert.Empty(t, dev.destroyed)
}
