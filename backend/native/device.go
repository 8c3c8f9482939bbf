// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"
	"sync/atomic"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/framegraph"
)

// Device implements framegraph.Device on a HAL device and queue.
//
// The device does not own the HAL device: Destroy is the caller's job.
// Device is safe for concurrent use to the extent the HAL device is.
type Device struct {
	device hal.Device
	queue  hal.Queue
	cfg    Config

	live      atomic.Int64 // resources created and not destroyed
	staging   atomic.Int64 // upload buffers not yet freed
	submitted atomic.Uint64

	upload func(buf hal.Buffer, offset uint64, data []byte)
}

// NewDevice wraps a HAL device and queue.
func NewDevice(device hal.Device, queue hal.Queue, cfg Config) (*Device, error) {
	if device == nil {
		return nil, ErrNilHALDevice
	}
	if queue == nil {
		return nil, ErrNilHALQueue
	}
	d := &Device{
		device: device,
		queue:  queue,
		cfg:    cfg.withDefaults(),
	}
	d.upload = d.writeQueue
	return d, nil
}

// writeQueue fills a freshly created upload buffer through the queue.
func (d *Device) writeQueue(buf hal.Buffer, offset uint64, data []byte) {
	d.queue.WriteBuffer(buf, offset, data)
}

// HAL returns the underlying HAL device.
func (d *Device) HAL() hal.Device { return d.device }

// Queue returns the underlying HAL queue.
func (d *Device) Queue() hal.Queue { return d.queue }

// Config returns the effective configuration.
func (d *Device) Config() Config { return d.cfg }

// Live returns the number of resources created and not yet destroyed.
func (d *Device) Live() int { return int(d.live.Load()) }

// Staging returns the number of upload buffers whose command buffers have
// not been submitted or discarded yet.
func (d *Device) Staging() int { return int(d.staging.Load()) }

// Submitted returns the number of command buffers submitted so far.
func (d *Device) Submitted() uint64 { return d.submitted.Load() }

// CreateResource implements framegraph.Device.
func (d *Device) CreateResource(desc framegraph.Descriptor) (framegraph.Resource, error) {
	if err := validateDescriptor(desc); err != nil {
		return nil, err
	}

	switch desc := desc.(type) {
	case framegraph.BufferDescriptor:
		buf, err := d.device.CreateBuffer(halBufferDescriptor(d.label(desc.Label), desc))
		if err != nil {
			return nil, fmt.Errorf("native: create buffer: %w", err)
		}
		d.live.Add(1)
		return framegraph.NewBuffer(desc, buf), nil

	case framegraph.TextureDescriptor:
		tex, err := d.device.CreateTexture(halTextureDescriptor(d.label(desc.Label), desc))
		if err != nil {
			return nil, fmt.Errorf("native: create texture: %w", err)
		}
		view, err := d.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
			Label: d.label(desc.Label + "_view"),
		})
		if err != nil {
			d.device.DestroyTexture(tex)
			return nil, fmt.Errorf("native: create texture view: %w", err)
		}
		d.live.Add(1)
		return framegraph.NewTexture(desc, tex, view), nil
	}

	return nil, fmt.Errorf("%w: %T", ErrUnsupportedDescriptor, desc)
}

// DestroyResource implements framegraph.Device. Resources without HAL
// objects are ignored.
func (d *Device) DestroyResource(res framegraph.Resource) {
	switch r := res.(type) {
	case *framegraph.Buffer:
		buf, ok := r.Raw().(hal.Buffer)
		if !ok || buf == nil {
			return
		}
		d.device.DestroyBuffer(buf)

	case *framegraph.Texture:
		tex, ok := r.Raw().(hal.Texture)
		if !ok || tex == nil {
			return
		}
		if view, ok := r.View().(hal.TextureView); ok && view != nil {
			d.device.DestroyTextureView(view)
		}
		d.device.DestroyTexture(tex)

	default:
		return
	}
	d.live.Add(-1)
}

// CreateCommandEncoder implements framegraph.Device.
func (d *Device) CreateCommandEncoder(label string) (framegraph.CommandEncoder, error) {
	raw, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: d.label(label),
	})
	if err != nil {
		return nil, fmt.Errorf("native: create command encoder: %w", err)
	}
	if err := raw.BeginEncoding(d.label(label)); err != nil {
		return nil, fmt.Errorf("native: begin encoding: %w", err)
	}
	return &Encoder{device: d, raw: raw, label: label}, nil
}

// Submit implements framegraph.Device. It submits the buffers in order,
// waits for the GPU with a fence and frees them.
//
// Submit frees the native buffers it is given even when it fails.
func (d *Device) Submit(buffers []framegraph.CommandBuffer) error {
	cmds := make([]*CommandBuffer, 0, len(buffers))
	defer func() {
		for _, cb := range cmds {
			cb.release(d)
		}
	}()
	for i, b := range buffers {
		cb, ok := b.(*CommandBuffer)
		if !ok || cb == nil {
			d.DiscardCommandBuffers(buffers[i+1:])
			return fmt.Errorf("%w: buffer %d is %T", ErrForeignCommandBuffer, i, b)
		}
		cmds = append(cmds, cb)
	}

	raws := make([]hal.CommandBuffer, len(cmds))
	for i, cb := range cmds {
		raws[i] = cb.raw
	}

	fence, err := d.device.CreateFence()
	if err != nil {
		return fmt.Errorf("native: create fence: %w", err)
	}
	defer d.device.DestroyFence(fence)

	if err := d.queue.Submit(raws, fence, 1); err != nil {
		return fmt.Errorf("native: submit: %w", err)
	}
	ok, err := d.device.Wait(fence, 1, d.cfg.FenceTimeout)
	if err != nil {
		return fmt.Errorf("native: wait for GPU: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w after %s", ErrFenceTimeout, d.cfg.FenceTimeout)
	}

	d.submitted.Add(uint64(len(raws)))
	framegraph.Logger().Debug("native: submitted", "command_buffers", len(raws))
	return nil
}

// DiscardCommandBuffers implements framegraph.Device. It frees native
// command buffers and their transient objects without submitting them.
func (d *Device) DiscardCommandBuffers(buffers []framegraph.CommandBuffer) {
	for _, b := range buffers {
		if cb, ok := b.(*CommandBuffer); ok && cb != nil {
			cb.release(d)
		}
	}
}

func (d *Device) label(name string) string {
	if name == "" {
		return d.cfg.Label
	}
	return d.cfg.Label + "/" + name
}
