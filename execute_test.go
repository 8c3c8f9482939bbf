package framegraph

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildCopyFrame declares a two-pass frame: "produce" writes src, "consume"
// reads it and writes dst. It returns the resolved resources per pass.
func buildCopyFrame(t *testing.T, g *FrameGraph, seen map[string]Resource) {
	t.Helper()
	src, err := g.GetOrCreateBuffer("src", bufferDesc("src", 256))
	require.NoError(t, err)
	dst, err := g.GetOrCreateBuffer("dst", bufferDesc("dst", 256))
	require.NoError(t, err)

	declarePass(g, "produce", func(pb *PassBuilder) {
		w := Write(pb, src)
		src = w.Handle()
		pb.PushFunc(func(pc *PassContext) error {
			seen["src"] = Resolve(pc, w)
			return nil
		})
	})
	declarePass(g, "consume", func(pb *PassBuilder) {
		r := Read(pb, src)
		w := Write(pb, dst)
		pb.PushFunc(func(pc *PassContext) error {
			assert.Equal(t, "consume", pc.Name())
			assert.NotNil(t, pc.Encoder())
			seen["src.read"] = Resolve(pc, r)
			seen["dst"] = Resolve(pc, w)
			return nil
		})
	})
	require.NoError(t, g.Compile())
}

func TestExecuteRunsPassesInOrder(t *testing.T) {
	g := newTestGraph()
	dev := &countingDevice{}
	seen := map[string]Resource{}
	buildCopyFrame(t, g, seen)

	require.NoError(t, g.Execute(dev))

	assert.Same(t, seen["src"], seen["src.read"], "one physical resource per index")
	assert.Equal(t, 2, dev.creates)
	require.Len(t, dev.encoders, 2)
	assert.Equal(t, "produce", dev.encoders[0].label)
	assert.Equal(t, "consume", dev.encoders[1].label)
	require.Len(t, dev.submitted, 1)
	assert.Equal(t, []CommandBuffer{"cb:produce", "cb:consume"}, dev.submitted[0])
	assert.Equal(t, 2, g.Cache().Len(), "both buffers pooled")
	assert.Empty(t, dev.destroyed)
}

func TestExecuteUntouchedNotMaterialized(t *testing.T) {
	g := newTestGraph()
	dev := &countingDevice{}
	h := g.CreateBuffer("used", bufferDesc("used", 64))
	g.CreateBuffer("untouched", bufferDesc("untouched", 64))
	declarePass(g, "p", func(pb *PassBuilder) { Write(pb, h) })
	require.NoError(t, g.Compile())

	require.NoError(t, g.Execute(dev))
	require.Equal(t, 1, dev.creates)
	assert.Equal(t, "used", dev.created[0].Descriptor().DescriptorLabel())
}

func TestExecutePoolingRoundTrip(t *testing.T) {
	g := newTestGraph()
	dev := &countingDevice{}

	var first, second Resource
	frame := func(out *Resource) {
		h := g.CreateBuffer("tmp", bufferDesc("tmp", 1024))
		declarePass(g, "p", func(pb *PassBuilder) {
			w := Write(pb, h)
			pb.PushFunc(func(pc *PassContext) error {
				*out = Resolve(pc, w)
				return nil
			})
		})
		require.NoError(t, g.Compile())
		require.NoError(t, g.Execute(dev))
	}

	frame(&first)
	frame(&second)

	assert.Equal(t, 1, dev.creates, "second frame reuses the pooled buffer")
	assert.Same(t, first, second)
	stats := g.Cache().Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
}

func TestExecutePoolingIgnoresLabel(t *testing.T) {
	g := newTestGraph()
	dev := &countingDevice{}

	for _, label := range []string{"a", "b"} {
		h := g.CreateBuffer(label, bufferDesc(label, 1024))
		declarePass(g, "p", func(pb *PassBuilder) { Write(pb, h) })
		require.NoError(t, g.Compile())
		require.NoError(t, g.Execute(dev))
	}
	assert.Equal(t, 1, dev.creates)
}

func TestExecuteReuseWithinFrame(t *testing.T) {
	g := newTestGraph()
	dev := &countingDevice{}
	desc := Texture2D("rt", 64, 64, gputypes.TextureFormatRGBA8Unorm, gputypes.TextureUsageRenderAttachment)

	a := g.CreateTexture("a", desc)
	b := g.CreateTexture("b", desc)
	declarePass(g, "first", func(pb *PassBuilder) { Write(pb, a) })
	declarePass(g, "second", func(pb *PassBuilder) { Write(pb, b) })
	require.NoError(t, g.Compile())
	require.NoError(t, g.Execute(dev))

	assert.Equal(t, 1, dev.creates, "a is released before b is requested")
}

func TestExecuteImportedPassthrough(t *testing.T) {
	g := newTestGraph()
	dev := &countingDevice{}
	swapchain := NewTexture(Texture2D("swapchain", 8, 8, gputypes.TextureFormatBGRA8Unorm,
		gputypes.TextureUsageRenderAttachment), "native", "view")

	h, err := g.ImportTexture("swapchain", swapchain)
	require.NoError(t, err)
	var got *Texture
	declarePass(g, "present", func(pb *PassBuilder) {
		w := Write(pb, h)
		pb.PushFunc(func(pc *PassContext) error {
			got = Resolve(pc, w)
			return nil
		})
	})
	require.NoError(t, g.Compile())
	require.NoError(t, g.Execute(dev))

	assert.Same(t, swapchain, got)
	assert.Zero(t, dev.creates)
	assert.Zero(t, g.Cache().Len(), "imported resources are never pooled")
	assert.Empty(t, dev.destroyed)
}

func TestExecuteEmptyGraph(t *testing.T) {
	g := newTestGraph()
	dev := &countingDevice{}
	g.CreateBuffer("x", bufferDesc("x", 64))

	require.NoError(t, g.Compile())
	require.NoError(t, g.Execute(dev))
	require.NoError(t, g.Execute(nil), "nothing compiled, device is not needed")

	assert.Equal(t, 1, g.ResourceCount(), "state unchanged")
	assert.Zero(t, dev.creates)
	assert.Empty(t, dev.encoders)
	assert.Empty(t, dev.submitted)
}

func TestExecuteResets(t *testing.T) {
	g := newTestGraph()
	dev := &countingDevice{}
	seen := map[string]Resource{}
	buildCopyFrame(t, g, seen)
	require.NoError(t, g.Execute(dev))

	assert.Zero(t, g.ResourceCount())
	assert.Zero(t, g.PassCount())
	assert.Nil(t, g.Compiled())
	_, ok := Get[*Buffer](g, "src")
	assert.False(t, ok, "board is cleared")

	h, err := g.GetOrCreateBuffer("src", bufferDesc("src", 256))
	require.NoError(t, err)
	assert.Equal(t, 0, h.Index().Position())
	assert.Equal(t, uint32(0), h.Version())
}

func TestExecuteNilDevice(t *testing.T) {
	g := newTestGraph()
	declarePass(g, "p", func(*PassBuilder) {})
	require.NoError(t, g.Compile())

	require.ErrorIs(t, g.Execute(nil), ErrNilDevice)
	assert.Equal(t, 1, g.PassCount())
}

func TestExecuteSkipsEncoderForEmptyPass(t *testing.T) {
	g := newTestGraph()
	dev := &countingDevice{}
	h := g.CreateBuffer("x", bufferDesc("x", 64))
	declarePass(g, "p", func(pb *PassBuilder) { Write(pb, h) })
	require.NoError(t, g.Compile())

	require.NoError(t, g.Execute(dev))
	assert.Empty(t, dev.encoders)
	assert.Empty(t, dev.submitted)
	assert.Equal(t, 1, dev.creates)
}

func TestExecuteDeviceError(t *testing.T) {
	g := newTestGraph()
	dev := &countingDevice{failLabel: "big"}
	small := g.CreateBuffer("small", bufferDesc("small", 64))
	big := g.CreateBuffer("big", bufferDesc("big", 1<<30))
	ran := false
	declarePass(g, "a", func(pb *PassBuilder) {
		small = Write(pb, small).Handle()
		pb.PushFunc(func(*PassContext) error { return nil })
	})
	declarePass(g, "b", func(pb *PassBuilder) {
		Read(pb, small)
		Write(pb, big)
		pb.PushFunc(func(*PassContext) error {
			ran = true
			return nil
		})
	})
	require.NoError(t, g.Compile())

	err := g.Execute(dev)
	require.Error(t, err)
	require.ErrorIs(t, err, errOutOfMemory)

	var resErr *ResourceError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "big", resErr.Name)
	assert.Equal(t, big.Index(), resErr.Index)

	assert.False(t, ran)
	assert.Zero(t, g.PassCount(), "graph resets after a failed frame")
	assert.Equal(t, 1, g.Cache().Len(), "held resources go back to the cache")
	assert.Empty(t, dev.submitted)
	assert.Equal(t, [][]CommandBuffer{{"cb:a"}}, dev.discarded, "recorded passes are discarded")
}

func TestExecuteCommandError(t *testing.T) {
	g := newTestGraph()
	dev := &countingDevice{}
	boom := errors.New("boom")
	first := g.CreateBuffer("first", bufferDesc("first", 32))
	h := g.CreateBuffer("x", bufferDesc("x", 64))
	declarePass(g, "ok", func(pb *PassBuilder) {
		Write(pb, first)
		pb.PushFunc(func(*PassContext) error { return nil })
	})
	declarePass(g, "p", func(pb *PassBuilder) {
		Write(pb, h)
		pb.PushFunc(func(*PassContext) error { return boom })
	})
	require.NoError(t, g.Compile())

	err := g.Execute(dev)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `pass "p"`)
	require.Len(t, dev.encoders, 2)
	assert.True(t, dev.encoders[0].finished)
	assert.True(t, dev.encoders[1].discarded)
	assert.Equal(t, [][]CommandBuffer{{"cb:ok"}}, dev.discarded)
	assert.Empty(t, dev.submitted)
	assert.Equal(t, 2, g.Cache().Len())
	assert.Zero(t, g.ResourceCount())
}

func TestExecuteEncoderAndSubmitErrors(t *testing.T) {
	errEncoder := errors.New("no encoder")
	errFinish := errors.New("finish failed")
	errSubmit := errors.New("device lost")

	tests := []struct {
		name string
		dev  *countingDevice
		want error
	}{
		{"encoder", &countingDevice{encoderErr: errEncoder}, errEncoder},
		{"finish", &countingDevice{finishErr: errFinish}, errFinish},
		{"submit", &countingDevice{submitErr: errSubmit}, errSubmit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGraph()
			declarePass(g, "p", func(pb *PassBuilder) {
				pb.PushFunc(func(*PassContext) error { return nil })
			})
			require.NoError(t, g.Compile())

			require.ErrorIs(t, g.Execute(tt.dev), tt.want)
			assert.Zero(t, g.PassCount())
			assert.Empty(t, tt.dev.discarded, "Submit owns the buffers it was given")
		})
	}
}

func TestExecuteCacheEvictionDestroys(t *testing.T) {
	m := NewGraphMetrics()
	cache := NewTransientResourceCache(CacheConfig{MaxPooled: 1, Metrics: m})
	g := New(WithCache(cache), WithMetrics(m))
	dev := &countingDevice{}

	a := g.CreateBuffer("a", bufferDesc("a", 64))
	b := g.CreateBuffer("b", bufferDesc("b", 128))
	declarePass(g, "p1", func(pb *PassBuilder) {
		w := Write(pb, a)
		pb.PushFunc(func(pc *PassContext) error {
			Resolve(pc, w)
			return nil
		})
	})
	declarePass(g, "p2", func(pb *PassBuilder) {
		w := Write(pb, b)
		pb.PushFunc(func(pc *PassContext) error {
			Resolve(pc, w)
			return nil
		})
	})
	require.NoError(t, g.Compile())
	require.NoError(t, g.Execute(dev))

	assert.Equal(t, 1, cache.Len())
	require.Len(t, dev.destroyed, 1)
	assert.Same(t, dev.created[0], dev.destroyed[0], "oldest returned is evicted")
	assert.Equal(t, []string{"create:a", "create:b", "submit", "destroy:a"}, dev.calls,
		"evicted resources outlive the submission that uses them")
	assert.InDelta(t, 1.0, counterValue(t, m.cacheEvictions), 0)
}

func TestExecuteFailedFrameDestroysEvictedAfterDiscard(t *testing.T) {
	m := NewGraphMetrics()
	cache := NewTransientResourceCache(CacheConfig{MaxPooled: 1, Metrics: m})
	g := New(WithCache(cache), WithMetrics(m))
	dev := &countingDevice{}
	boom := errors.New("boom")

	a := g.CreateBuffer("a", bufferDesc("a", 64))
	b := g.CreateBuffer("b", bufferDesc("b", 128))
	declarePass(g, "p1", func(pb *PassBuilder) {
		Write(pb, a)
		pb.PushFunc(func(*PassContext) error { return nil })
	})
	declarePass(g, "p2", func(pb *PassBuilder) {
		Write(pb, b)
		pb.PushFunc(func(*PassContext) error { return boom })
	})
	require.NoError(t, g.Compile())

	require.ErrorIs(t, g.Execute(dev), boom)
	assert.Equal(t, []string{"create:a", "create:b", "discard", "destroy:a"}, dev.calls)
	assert.Equal(t, 1, cache.Len())
}

func TestExecuteFailedFrameAdvancesIdleClock(t *testing.T) {
	m := NewGraphMetrics()
	cache := NewTransientResourceCache(CacheConfig{MaxIdleFrames: 1, Metrics: m})
	g := New(WithCache(cache), WithMetrics(m))
	dev := &countingDevice{}

	h := g.CreateBuffer("once", bufferDesc("once", 64))
	declarePass(g, "p", func(pb *PassBuilder) { Write(pb, h) })
	require.NoError(t, g.Compile())
	require.NoError(t, g.Execute(dev))
	require.Equal(t, 1, cache.Len())

	boom := errors.New("boom")
	for i := 0; i < 2; i++ {
		declarePass(g, "fails", func(pb *PassBuilder) {
			pb.PushFunc(func(*PassContext) error { return boom })
		})
		require.NoError(t, g.Compile())
		require.ErrorIs(t, g.Execute(dev), boom)
	}

	assert.Equal(t, uint64(3), cache.pool.Frame())
	assert.Zero(t, cache.Len(), "failed frames age pooled resources too")
	require.Len(t, dev.destroyed, 1)
}

func TestExecuteIdleSweep(t *testing.T) {
	m := NewGraphMetrics()
	cache := NewTransientResourceCache(CacheConfig{MaxIdleFrames: 1, Metrics: m})
	g := New(WithCache(cache), WithMetrics(m))
	dev := &countingDevice{}

	h := g.CreateBuffer("once", bufferDesc("once", 64))
	declarePass(g, "p", func(pb *PassBuilder) { Write(pb, h) })
	require.NoError(t, g.Compile())
	require.NoError(t, g.Execute(dev))
	require.Equal(t, 1, cache.Len())

	for i := 0; i < 2; i++ {
		declarePass(g, "idle", func(pb *PassBuilder) {
			pb.PushFunc(func(*PassContext) error { return nil })
		})
		require.NoError(t, g.Compile())
		require.NoError(t, g.Execute(dev))
	}

	assert.Zero(t, cache.Len())
	require.Len(t, dev.destroyed, 1)
	assert.Same(t, dev.created[0], dev.destroyed[0])
}

func TestResolveMissingPanics(t *testing.T) {
	g := newTestGraph()
	dev := &countingDevice{}
	h := g.CreateBuffer("x", bufferDesc("x", 64))
	undeclared := Ref[*Buffer, ReadAccess]{raw: h.Raw(), desc: h.Descriptor()}
	declarePass(g, "p", func(pb *PassBuilder) {
		pb.PushFunc(func(pc *PassContext) error {
			Resolve(pc, undeclared)
			return nil
		})
	})
	require.NoError(t, g.Compile())

	assert.PanicsWithValue(t,
		`framegraph: pass "p" resolves resource #0 which is not in the resource table`,
		func() { _ = g.Execute(dev) })
}

func TestResolveKindMismatchPanics(t *testing.T) {
	pc := &PassContext{name: "p", table: newResourceTable()}
	idx := NewIndex[ResourceNode](0)
	pc.table.entries[idx] = tableEntry{res: NewTexture(TextureDescriptor{}, nil, nil)}

	ref := Ref[*Buffer, ReadAccess]{raw: RawHandle{Index: idx}}
	assert.Panics(t, func() { Resolve(pc, ref) })
}

func TestCacheDestroy(t *testing.T) {
	g := newTestGraph()
	dev := &countingDevice{}
	seen := map[string]Resource{}
	buildCopyFrame(t, g, seen)
	require.NoError(t, g.Execute(dev))
	require.Equal(t, 2, g.Cache().Len())

	g.Cache().Destroy(dev)
	assert.Zero(t, g.Cache().Len())
	assert.ElementsMatch(t, dev.created, dev.destroyed)
}
