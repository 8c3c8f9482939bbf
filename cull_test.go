package framegraph

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passNames(c *CompiledFrameGraph) []string {
	var names []string
	for _, dp := range c.Passes() {
		names = append(names, dp.Name())
	}
	return names
}

func TestCullingKeepsContributors(t *testing.T) {
	g := newTestGraph(WithCulling(true))
	swapchain, err := g.ImportTexture("swapchain", NewTexture(
		Texture2D("swapchain", 8, 8, gputypes.TextureFormatBGRA8Unorm, gputypes.TextureUsageRenderAttachment), nil, nil))
	require.NoError(t, err)
	gbuf := g.CreateTexture("gbuf", Texture2D("gbuf", 8, 8, gputypes.TextureFormatRGBA8Unorm, gputypes.TextureUsageRenderAttachment))
	debug := g.CreateBuffer("debug", bufferDesc("debug", 64))

	declarePass(g, "geometry", func(pb *PassBuilder) { gbuf = Write(pb, gbuf).Handle() })
	declarePass(g, "debug", func(pb *PassBuilder) { Write(pb, debug) })
	declarePass(g, "compose", func(pb *PassBuilder) {
		Read(pb, gbuf)
		Write(pb, swapchain)
	})
	require.NoError(t, g.Compile())

	c := g.Compiled()
	assert.Equal(t, []string{"geometry", "compose"}, passNames(c))
	require.Len(t, c.Culled(), 1)
	assert.Equal(t, "debug", g.PassNode(c.Culled()[0]).Name())

	_, ok := g.ResourceNode(debug.Index()).FirstUse()
	assert.False(t, ok, "culled passes do not count toward lifetimes")
}

func TestCullingSideEffectRoot(t *testing.T) {
	g := newTestGraph(WithCulling(true))
	h := g.CreateBuffer("readback", bufferDesc("readback", 64))

	declarePass(g, "produce", func(pb *PassBuilder) { h = Write(pb, h).Handle() })
	declarePass(g, "readback", func(pb *PassBuilder) {
		Read(pb, h)
		pb.SideEffect()
	})
	declarePass(g, "orphan", func(*PassBuilder) {})
	require.NoError(t, g.Compile())

	assert.Equal(t, []string{"produce", "readback"}, passNames(g.Compiled()))
	assert.True(t, g.PassNode(NewIndex[PassNode](1)).SideEffect())
}

func TestCullingDisabledByDefault(t *testing.T) {
	g := newTestGraph()
	h := g.CreateBuffer("x", bufferDesc("x", 64))
	declarePass(g, "unused", func(pb *PassBuilder) { Write(pb, h) })
	require.NoError(t, g.Compile())

	assert.Equal(t, []string{"unused"}, passNames(g.Compiled()))
}

func TestCullingMetrics(t *testing.T) {
	m := NewGraphMetrics()
	g := New(WithCulling(true), WithMetrics(m))
	declarePass(g, "a", func(*PassBuilder) {})
	declarePass(g, "b", func(*PassBuilder) {})
	require.NoError(t, g.Compile())

	assert.Empty(t, g.Compiled().Passes())
	assert.Len(t, g.Compiled().Culled(), 2)
	assert.InDelta(t, 2.0, counterValue(t, m.passesCulled), 0)
}
