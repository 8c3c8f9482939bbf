package framegraph

import (
	"errors"
	"fmt"
)

var errOutOfMemory = errors.New("out of memory")

// countingDevice is a Device double that counts every call.
type countingDevice struct {
	creates   int
	created   []Resource
	destroyed []Resource
	encoders  []*recordingEncoder
	submitted [][]CommandBuffer
	discarded [][]CommandBuffer
	calls     []string // "create:x", "destroy:x", "submit", "discard" in call order

	failLabel  string // CreateResource fails for descriptors with this label
	encoderErr error
	finishErr  error
	submitErr  error
}

func (d *countingDevice) CreateResource(desc Descriptor) (Resource, error) {
	d.creates++
	d.calls = append(d.calls, "create:"+desc.DescriptorLabel())
	if d.failLabel != "" && desc.DescriptorLabel() == d.failLabel {
		return nil, errOutOfMemory
	}

	var res Resource
	switch desc := desc.(type) {
	case BufferDescriptor:
		res = NewBuffer(desc, d.creates)
	case TextureDescriptor:
		res = NewTexture(desc, d.creates, fmt.Sprintf("view-%d", d.creates))
	default:
		return nil, fmt.Errorf("unsupported descriptor %T", desc)
	}
	d.created = append(d.created, res)
	return res, nil
}

func (d *countingDevice) DestroyResource(res Resource) {
	d.destroyed = append(d.destroyed, res)
	d.calls = append(d.calls, "destroy:"+res.Descriptor().DescriptorLabel())
}

func (d *countingDevice) CreateCommandEncoder(label string) (CommandEncoder, error) {
	if d.encoderErr != nil {
		return nil, d.encoderErr
	}
	enc := &recordingEncoder{label: label, finishErr: d.finishErr}
	d.encoders = append(d.encoders, enc)
	return enc, nil
}

func (d *countingDevice) Submit(buffers []CommandBuffer) error {
	d.calls = append(d.calls, "submit")
	if d.submitErr != nil {
		return d.submitErr
	}
	d.submitted = append(d.submitted, buffers)
	return nil
}

func (d *countingDevice) DiscardCommandBuffers(buffers []CommandBuffer) {
	d.calls = append(d.calls, "discard")
	d.discarded = append(d.discarded, buffers)
}

type recordingEncoder struct {
	label     string
	finishErr error
	finished  bool
	discarded bool
}

func (e *recordingEncoder) Finish() (CommandBuffer, error) {
	if e.finishErr != nil {
		return nil, e.finishErr
	}
	e.finished = true
	return "cb:" + e.label, nil
}

func (e *recordingEncoder) Discard() { e.discarded = true }

// newTestGraph returns a graph with private metrics and cache.
func newTestGraph(opts ...Option) *FrameGraph {
	m := NewGraphMetrics()
	cfg := DefaultCacheConfig()
	cfg.Metrics = m
	base := []Option{WithMetrics(m), WithCache(NewTransientResourceCache(cfg))}
	return New(append(base, opts...)...)
}

// declarePass declares a pass through the scoped helper and fails loudly.
func declarePass(g *FrameGraph, name string, fn func(pb *PassBuilder)) PassIndex {
	idx, err := g.Pass(name, func(pb *PassBuilder) error {
		fn(pb)
		return nil
	})
	if err != nil {
		panic(err)
	}
	return idx
}

func bufferDesc(label string, size uint64) BufferDescriptor {
	return BufferDescriptor{Label: label, Size: size}
}
