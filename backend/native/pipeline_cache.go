// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"hash/fnv"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/framegraph"
)

// ErrNilPipelineDescriptor is returned when creating a pipeline with a nil descriptor.
var ErrNilPipelineDescriptor = errors.New("native: pipeline descriptor is nil")

// ComputePipelineDescriptor describes a compute pipeline with a single
// bind group of buffers.
type ComputePipelineDescriptor struct {
	// Label is an optional debug name. It does not take part in caching.
	Label string

	// WGSL is the shader source.
	WGSL string

	// EntryPoint is the compute entry point. Defaults to "main" if empty.
	EntryPoint string

	// Bindings lists the buffer binding type of each slot in group 0,
	// in binding order.
	Bindings []gputypes.BufferBindingType
}

// ComputePipeline is a compiled compute pipeline and the layout objects
// it owns.
type ComputePipeline struct {
	label      string
	hash       uint64
	bindings   []gputypes.BufferBindingType
	module     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	layout     hal.PipelineLayout
	pipeline   hal.ComputePipeline
}

// Label returns the debug name.
func (p *ComputePipeline) Label() string { return p.label }

// Hash returns the descriptor hash the pipeline is cached under.
func (p *ComputePipeline) Hash() uint64 { return p.hash }

// BindingCount returns the number of buffers a Dispatch must bind.
func (p *ComputePipeline) BindingCount() int { return len(p.bindings) }

func (p *ComputePipeline) destroy(device hal.Device) {
	if p.pipeline != nil {
		device.DestroyComputePipeline(p.pipeline)
	}
	if p.layout != nil {
		device.DestroyPipelineLayout(p.layout)
	}
	if p.bindLayout != nil {
		device.DestroyBindGroupLayout(p.bindLayout)
	}
	if p.module != nil {
		device.DestroyShaderModule(p.module)
	}
}

// PipelineCache caches compiled compute pipelines by descriptor hash.
//
// Pipeline creation is expensive: WGSL goes through naga and the HAL
// validates the result. Graph passes rebuilt every frame look their
// pipelines up here instead.
//
// PipelineCache is safe for concurrent use. It uses RWMutex with
// double-check locking for reads and safe writes.
type PipelineCache struct {
	mu        sync.RWMutex
	pipelines map[uint64]*ComputePipeline

	hits   uint64
	misses uint64
}

// NewPipelineCache creates an empty pipeline cache.
func NewPipelineCache() *PipelineCache {
	return &PipelineCache{
		pipelines: make(map[uint64]*ComputePipeline),
	}
}

// GetOrCreateComputePipeline returns a cached pipeline or compiles a new
// one on dev.
//
// Returns an error if dev or desc is nil, if the WGSL fails to compile
// or if any HAL object cannot be created.
func (c *PipelineCache) GetOrCreateComputePipeline(dev *Device, desc *ComputePipelineDescriptor) (*ComputePipeline, error) {
	if dev == nil {
		return nil, ErrNilHALDevice
	}
	if desc == nil {
		return nil, ErrNilPipelineDescriptor
	}

	descHash := HashComputePipelineDescriptor(desc)

	// Fast path: read lock
	c.mu.RLock()
	if p, ok := c.pipelines[descHash]; ok {
		c.mu.RUnlock()
		atomic.AddUint64(&c.hits, 1)
		return p, nil
	}
	c.mu.RUnlock()

	// Slow path: write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.pipelines[descHash]; ok {
		atomic.AddUint64(&c.hits, 1)
		return p, nil
	}

	p, err := createComputePipeline(dev.device, desc)
	if err != nil {
		return nil, err
	}
	p.hash = descHash

	c.pipelines[descHash] = p
	atomic.AddUint64(&c.misses, 1)
	framegraph.Logger().Info("native: compute pipeline compiled", "label", p.label, "bindings", len(p.bindings))

	return p, nil
}

// Stats returns the number of cache hits and misses.
func (c *PipelineCache) Stats() (hits, misses uint64) {
	return atomic.LoadUint64(&c.hits), atomic.LoadUint64(&c.misses)
}

// HitRate returns the cache hit rate (0.0 to 1.0).
//
// Returns 0.0 if no requests have been made.
func (c *PipelineCache) HitRate() float64 {
	hits, misses := c.Stats()
	total := hits + misses
	if total == 0 {
		return 0.0
	}
	return float64(hits) / float64(total)
}

// Size returns the number of cached pipelines.
func (c *PipelineCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pipelines)
}

// DestroyAll destroys every cached pipeline on dev and resets the cache.
func (c *PipelineCache) DestroyAll(dev *Device) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if dev != nil {
		for _, p := range c.pipelines {
			p.destroy(dev.device)
		}
	}
	c.pipelines = make(map[uint64]*ComputePipeline)
	atomic.StoreUint64(&c.hits, 0)
	atomic.StoreUint64(&c.misses, 0)
}

// HashComputePipelineDescriptor computes the cache key of desc. The label
// is not hashed; an empty entry point hashes as "main".
func HashComputePipelineDescriptor(desc *ComputePipelineDescriptor) uint64 {
	h := fnv.New64a()

	hashWriteString(h, desc.WGSL)
	hashWriteString(h, entryPoint(desc))
	//nolint:gosec // G115: binding count is bounded by GPU limits
	hashWriteUint32(h, uint32(len(desc.Bindings)))
	for _, b := range desc.Bindings {
		hashWriteUint32(h, uint32(b))
	}

	return h.Sum64()
}

// CompileWGSL compiles WGSL to SPIR-V words with naga.
func CompileWGSL(source string) ([]uint32, error) {
	if source == "" {
		return nil, ErrEmptyShader
	}
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("native: compile shader: %w", err)
	}
	return spirvWords(spirvBytes)
}

// spirvWords converts little-endian SPIR-V bytes to 32-bit words.
func spirvWords(b []byte) ([]uint32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrSPIRVLength, len(b))
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return words, nil
}

func entryPoint(desc *ComputePipelineDescriptor) string {
	if desc.EntryPoint == "" {
		return "main"
	}
	return desc.EntryPoint
}

// createComputePipeline builds the shader module, layouts and pipeline.
// On failure every object created so far is destroyed.
func createComputePipeline(device hal.Device, desc *ComputePipelineDescriptor) (*ComputePipeline, error) {
	spirv, err := CompileWGSL(desc.WGSL)
	if err != nil {
		return nil, err
	}

	p := &ComputePipeline{
		label:    desc.Label,
		bindings: append([]gputypes.BufferBindingType(nil), desc.Bindings...),
	}
	ok := false
	defer func() {
		if !ok {
			p.destroy(device)
		}
	}()

	p.module, err = device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  desc.Label,
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("native: create shader module %q: %w", desc.Label, err)
	}

	entries := make([]gputypes.BindGroupLayoutEntry, len(desc.Bindings))
	for i, b := range desc.Bindings {
		entries[i] = gputypes.BindGroupLayoutEntry{
			Binding:    uint32(i), //nolint:gosec // G115: binding count is small
			Visibility: gputypes.ShaderStageCompute,
			Buffer:     &gputypes.BufferBindingLayout{Type: b},
		}
	}
	p.bindLayout, err = device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   desc.Label + "_bind_layout",
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create bind group layout %q: %w", desc.Label, err)
	}

	p.layout, err = device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            desc.Label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		return nil, fmt.Errorf("native: create pipeline layout %q: %w", desc.Label, err)
	}

	p.pipeline, err = device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:   desc.Label,
		Layout:  p.layout,
		Compute: hal.ComputeState{Module: p.module, EntryPoint: entryPoint(desc)},
	})
	if err != nil {
		return nil, fmt.Errorf("native: create compute pipeline %q: %w", desc.Label, err)
	}

	ok = true
	return p, nil
}

func hashWriteUint32(h hash.Hash64, v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, _ = h.Write(buf[:])
}

//nolint:gosec // G115: descriptor strings are far below 4 GiB
func hashWriteString(h hash.Hash64, s string) {
	hashWriteUint32(h, uint32(len(s)))
	_, _ = h.Write([]byte(s))
}
