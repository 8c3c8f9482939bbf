package framegraph

import "fmt"

// FrameGraph accumulates one frame of resource and pass declarations,
// compiles them into an ordered plan and executes the plan against a Device.
//
// A FrameGraph is owned by a single goroutine for the whole frame and is not
// safe for concurrent use. After Execute it is empty and ready for the next
// frame; the transient resource cache outlives it.
type FrameGraph struct {
	resources []ResourceNode
	passes    []PassNode
	board     ResourceBoard
	compiled  *CompiledFrameGraph

	cache   *TransientResourceCache
	culling bool
	metrics *GraphMetrics

	open  int    // builders returned by AddPass and not yet finished
	frame uint64 // bumped on reset, invalidates open builders
}

// New creates an empty frame graph.
//
// Example:
//
//	g := framegraph.New()
//	h := g.CreateBuffer("lights", framegraph.BufferDescriptor{Size: 4096})
//	_, err := g.Pass("cull", func(pb *framegraph.PassBuilder) error {
//		framegraph.Write(pb, h)
//		return nil
//	})
func New(opts ...Option) *FrameGraph {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.metrics == nil {
		o.metrics = DefaultMetrics
	}
	if o.cache == nil {
		cfg := DefaultCacheConfig()
		cfg.Metrics = o.metrics
		o.cache = NewTransientResourceCache(cfg)
	}

	return &FrameGraph{
		board:   newResourceBoard(),
		cache:   o.cache,
		culling: o.culling,
		metrics: o.metrics,
	}
}

// Cache returns the transient resource cache the graph pools into.
func (g *FrameGraph) Cache() *TransientResourceCache { return g.cache }

// ResourceCount returns the number of declared resources this frame.
func (g *FrameGraph) ResourceCount() int { return len(g.resources) }

// PassCount returns the number of committed passes this frame.
func (g *FrameGraph) PassCount() int { return len(g.passes) }

// ResourceNode returns the node at idx. Panics if idx is out of range.
func (g *FrameGraph) ResourceNode(idx ResourceIndex) *ResourceNode {
	return at(g.resources, idx)
}

// PassNode returns the node at idx. Panics if idx is out of range.
func (g *FrameGraph) PassNode(idx PassIndex) *PassNode {
	return at(g.passes, idx)
}

// Compiled returns the plan produced by the last Compile, or nil.
func (g *FrameGraph) Compiled() *CompiledFrameGraph { return g.compiled }

// CreateBuffer declares a new buffer node, even if name is already in use.
func (g *FrameGraph) CreateBuffer(name string, desc BufferDescriptor) Handle[*Buffer] {
	return declare[*Buffer](g, name, Setuped(desc))
}

// CreateTexture declares a new texture node, even if name is already in use.
func (g *FrameGraph) CreateTexture(name string, desc TextureDescriptor) Handle[*Texture] {
	return declare[*Texture](g, name, Setuped(desc))
}

// GetOrCreateBuffer returns the buffer registered under name this frame,
// declaring it from desc first if needed. desc is ignored when the name
// is already registered.
func (g *FrameGraph) GetOrCreateBuffer(name string, desc BufferDescriptor) (Handle[*Buffer], error) {
	return getOrDeclare[*Buffer](g, name, Setuped(desc))
}

// GetOrCreateTexture is the texture counterpart of GetOrCreateBuffer.
func (g *FrameGraph) GetOrCreateTexture(name string, desc TextureDescriptor) (Handle[*Texture], error) {
	return getOrDeclare[*Texture](g, name, Setuped(desc))
}

// ImportBuffer registers an externally owned buffer under name. The graph
// never creates, pools or destroys it.
func (g *FrameGraph) ImportBuffer(name string, buf *Buffer) (Handle[*Buffer], error) {
	if buf == nil {
		return Handle[*Buffer]{}, fmt.Errorf("%w: buffer %q", ErrNilResource, name)
	}
	return getOrDeclare[*Buffer](g, name, Imported(buf))
}

// ImportTexture registers an externally owned texture under name.
func (g *FrameGraph) ImportTexture(name string, tex *Texture) (Handle[*Texture], error) {
	if tex == nil {
		return Handle[*Texture]{}, fmt.Errorf("%w: texture %q", ErrNilResource, name)
	}
	return getOrDeclare[*Texture](g, name, Imported(tex))
}

// Get returns a handle to the current version of the resource registered
// under name. It reports false if the name is unknown or holds a resource
// of a different kind.
func Get[T Resource](g *FrameGraph, name string) (Handle[T], bool) {
	idx, ok := g.board.Get(name)
	if !ok {
		return Handle[T]{}, false
	}
	node := at(g.resources, idx)
	if node.resource.desc.Kind() != kindOf[T]() {
		return Handle[T]{}, false
	}
	return newHandle[T](node.raw(), node.resource.desc), true
}

func declare[T Resource](g *FrameGraph, name string, vr VirtualResource) Handle[T] {
	idx := NewIndex[ResourceNode](len(g.resources))
	g.resources = append(g.resources, newResourceNode(name, idx, vr))
	return newHandle[T](RawHandle{Index: idx}, vr.desc)
}

func getOrDeclare[T Resource](g *FrameGraph, name string, vr VirtualResource) (Handle[T], error) {
	if idx, ok := g.board.Get(name); ok {
		node := at(g.resources, idx)
		if have, want := node.resource.desc.Kind(), kindOf[T](); have != want {
			return Handle[T]{}, fmt.Errorf("%w: %q is a %s, not a %s", ErrKindMismatch, name, have, want)
		}
		return newHandle[T](node.raw(), node.resource.desc), nil
	}

	h := declare[T](g, name, vr)
	g.board.Insert(name, h.Index())
	return h, nil
}

// Reset drops every declaration of the current frame without executing
// it. Builders still open become unusable: Finish on them returns
// ErrPassFinished. The transient cache is kept.
//
// Execute resets the graph itself; call Reset to abandon a frame that
// will not be executed, for example after Compile failed.
func (g *FrameGraph) Reset() {
	g.resources = nil
	g.passes = nil
	g.board.clear()
	g.compiled = nil
	g.open = 0
	g.frame++
}
