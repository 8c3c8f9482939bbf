// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/framegraph"
)

// Encoder records one pass into a HAL command encoder. Commands obtain it
// from the pass context with EncoderOf.
//
// Encoder is NOT safe for concurrent use.
type Encoder struct {
	device     *Device
	raw        hal.CommandEncoder
	label      string
	bindGroups []hal.BindGroup // destroyed once the GPU is done with them
	staging    []hal.Buffer    // upload sources, same lifetime as bindGroups
	closed     bool
}

// CommandBuffer is a finished pass together with the transient objects its
// commands created.
type CommandBuffer struct {
	raw        hal.CommandBuffer
	label      string
	bindGroups []hal.BindGroup
	staging    []hal.Buffer
}

// Label returns the pass label.
func (c *CommandBuffer) Label() string { return c.label }

// release frees the HAL command buffer and its transient objects.
// Releasing twice is a no-op.
func (c *CommandBuffer) release(d *Device) {
	if c.raw != nil {
		d.device.FreeCommandBuffer(c.raw)
		c.raw = nil
	}
	d.destroyTransient(c.bindGroups, c.staging)
	c.bindGroups = nil
	c.staging = nil
}

// EncoderOf returns the native encoder of the executing pass.
func EncoderOf(pc *framegraph.PassContext) (*Encoder, error) {
	enc, ok := pc.Encoder().(*Encoder)
	if !ok || enc == nil {
		return nil, fmt.Errorf("%w: pass %q has %T", ErrForeignEncoder, pc.Name(), pc.Encoder())
	}
	return enc, nil
}

// Raw returns the HAL command encoder.
func (e *Encoder) Raw() hal.CommandEncoder { return e.raw }

// Device returns the device the encoder records for.
func (e *Encoder) Device() *Device { return e.device }

// Label returns the pass label.
func (e *Encoder) Label() string { return e.label }

// Track hands a bind group to the encoder. It is destroyed after the
// frame's submission completes, or when the encoder is discarded.
func (e *Encoder) Track(bg hal.BindGroup) {
	e.bindGroups = append(e.bindGroups, bg)
}

// stage creates an upload buffer holding data. The buffer belongs to the
// encoder and is freed with its command buffer.
func (e *Encoder) stage(data []byte) (hal.Buffer, error) {
	buf, err := e.device.device.CreateBuffer(&hal.BufferDescriptor{
		Label: e.device.label(e.label + "_upload"),
		Size:  uint64(len(data)),
		Usage: gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("native: create upload buffer: %w", err)
	}
	e.device.staging.Add(1)
	e.staging = append(e.staging, buf)
	e.device.upload(buf, 0, data)
	return buf, nil
}

// Finish implements framegraph.CommandEncoder.
func (e *Encoder) Finish() (framegraph.CommandBuffer, error) {
	raw, err := e.raw.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("native: end encoding %q: %w", e.label, err)
	}
	e.closed = true

	cb := &CommandBuffer{raw: raw, label: e.label, bindGroups: e.bindGroups, staging: e.staging}
	e.bindGroups = nil
	e.staging = nil
	return cb, nil
}

// Discard implements framegraph.CommandEncoder.
func (e *Encoder) Discard() {
	if e.closed {
		return
	}
	e.closed = true
	e.raw.DiscardEncoding()
	e.device.destroyTransient(e.bindGroups, e.staging)
	e.bindGroups = nil
	e.staging = nil
}

func (d *Device) destroyTransient(bindGroups []hal.BindGroup, staging []hal.Buffer) {
	for _, bg := range bindGroups {
		d.device.DestroyBindGroup(bg)
	}
	for _, buf := range staging {
		d.device.DestroyBuffer(buf)
	}
	d.staging.Add(-int64(len(staging)))
}
