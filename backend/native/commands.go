// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/framegraph"
)

// copyAlignment is the HAL requirement for buffer copy offsets and sizes.
const copyAlignment = 4

// CopyBuffer copies Size bytes from Src to Dst. A zero Size copies the
// rest of Src starting at SrcOffset.
type CopyBuffer struct {
	Src       framegraph.Ref[*framegraph.Buffer, framegraph.ReadAccess]
	Dst       framegraph.Ref[*framegraph.Buffer, framegraph.WriteAccess]
	SrcOffset uint64
	DstOffset uint64
	Size      uint64
}

// Execute implements framegraph.PassCommand.
func (c CopyBuffer) Execute(pc *framegraph.PassContext) error {
	enc, err := EncoderOf(pc)
	if err != nil {
		return err
	}
	src := framegraph.Resolve(pc, c.Src)
	dst := framegraph.Resolve(pc, c.Dst)

	srcBuf, err := halBuffer(src)
	if err != nil {
		return err
	}
	dstBuf, err := halBuffer(dst)
	if err != nil {
		return err
	}

	srcSize := src.BufferDescriptor().Size
	dstSize := dst.BufferDescriptor().Size
	size := c.Size
	if size == 0 && c.SrcOffset < srcSize {
		size = srcSize - c.SrcOffset
	}
	if c.SrcOffset+size > srcSize || c.DstOffset+size > dstSize {
		return fmt.Errorf("%w: %d bytes from %d (of %d) to %d (of %d)",
			ErrCopyRangeOutOfBounds, size, c.SrcOffset, srcSize, c.DstOffset, dstSize)
	}
	if c.SrcOffset%copyAlignment != 0 || c.DstOffset%copyAlignment != 0 || size%copyAlignment != 0 {
		return fmt.Errorf("%w: src=%d dst=%d size=%d", ErrCopyNotAligned, c.SrcOffset, c.DstOffset, size)
	}

	enc.raw.CopyBufferToBuffer(srcBuf, dstBuf, []hal.BufferCopy{
		{SrcOffset: c.SrcOffset, DstOffset: c.DstOffset, Size: size},
	})
	return nil
}

// WriteBuffer uploads Data into Dst at Offset. The data is staged in an
// upload buffer and the copy into Dst is recorded in the pass, so it lands
// in plan order with the commands around it. Offset and len(Data) must be
// multiples of 4.
type WriteBuffer struct {
	Dst    framegraph.Ref[*framegraph.Buffer, framegraph.WriteAccess]
	Offset uint64
	Data   []byte
}

// Execute implements framegraph.PassCommand.
func (c WriteBuffer) Execute(pc *framegraph.PassContext) error {
	enc, err := EncoderOf(pc)
	if err != nil {
		return err
	}
	dst := framegraph.Resolve(pc, c.Dst)
	buf, err := halBuffer(dst)
	if err != nil {
		return err
	}

	n := uint64(len(c.Data))
	if size := dst.BufferDescriptor().Size; c.Offset+n > size {
		return fmt.Errorf("%w: %d bytes at %d (of %d)", ErrCopyRangeOutOfBounds, n, c.Offset, size)
	}
	if n == 0 {
		return nil
	}
	if c.Offset%copyAlignment != 0 || n%copyAlignment != 0 {
		return fmt.Errorf("%w: offset=%d size=%d", ErrCopyNotAligned, c.Offset, n)
	}

	src, err := enc.stage(c.Data)
	if err != nil {
		return err
	}
	enc.raw.CopyBufferToBuffer(src, buf, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: c.Offset, Size: n},
	})
	return nil
}

// ClearTexture clears Target to Color with an empty render pass.
type ClearTexture struct {
	Target framegraph.Ref[*framegraph.Texture, framegraph.WriteAccess]
	Color  gputypes.Color
}

// Execute implements framegraph.PassCommand.
func (c ClearTexture) Execute(pc *framegraph.PassContext) error {
	enc, err := EncoderOf(pc)
	if err != nil {
		return err
	}
	view, err := halView(framegraph.Resolve(pc, c.Target))
	if err != nil {
		return err
	}

	rp := enc.raw.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: enc.label + "_clear",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: c.Color,
		}},
	})
	rp.End()
	return nil
}

// Binding is one buffer bound to a compute dispatch. Build it with
// ReadBinding or WriteBinding.
type Binding struct {
	index   framegraph.ResourceIndex
	resolve func(pc *framegraph.PassContext) *framegraph.Buffer
	write   bool
}

// ReadBinding binds a buffer the pass declared with Read. It may fill
// uniform and read-only storage slots.
func ReadBinding(ref framegraph.Ref[*framegraph.Buffer, framegraph.ReadAccess]) Binding {
	return Binding{
		index:   ref.Index(),
		resolve: func(pc *framegraph.PassContext) *framegraph.Buffer { return framegraph.Resolve(pc, ref) },
	}
}

// WriteBinding binds a buffer the pass declared with Write. It may fill
// any slot.
func WriteBinding(ref framegraph.Ref[*framegraph.Buffer, framegraph.WriteAccess]) Binding {
	return Binding{
		index:   ref.Index(),
		resolve: func(pc *framegraph.PassContext) *framegraph.Buffer { return framegraph.Resolve(pc, ref) },
		write:   true,
	}
}

// Dispatch runs a compute pipeline over Workgroups with Bindings bound in
// order to group 0. The bind group lives until the frame is submitted.
type Dispatch struct {
	Pipeline   *ComputePipeline
	Bindings   []Binding
	Workgroups [3]uint32
}

// Execute implements framegraph.PassCommand.
func (c Dispatch) Execute(pc *framegraph.PassContext) error {
	enc, err := EncoderOf(pc)
	if err != nil {
		return err
	}
	if c.Pipeline == nil {
		return fmt.Errorf("native: dispatch in pass %q has no pipeline", pc.Name())
	}
	layout := c.Pipeline.bindings
	if len(c.Bindings) != len(layout) {
		return fmt.Errorf("%w: pipeline %q wants %d, got %d",
			ErrBindingCount, c.Pipeline.label, len(layout), len(c.Bindings))
	}

	entries := make([]gputypes.BindGroupEntry, len(c.Bindings))
	for i, b := range c.Bindings {
		if layout[i] == gputypes.BufferBindingTypeStorage && !b.write {
			return fmt.Errorf("%w: binding %d (resource %s)", ErrBindingAccess, i, b.index)
		}
		res := b.resolve(pc)
		buf, err := halBuffer(res)
		if err != nil {
			return fmt.Errorf("binding %d: %w", i, err)
		}
		entries[i] = gputypes.BindGroupEntry{
			Binding: uint32(i), //nolint:gosec // G115: binding count is small
			Resource: gputypes.BufferBinding{
				Buffer: buf.NativeHandle(),
				Offset: 0,
				Size:   res.BufferDescriptor().Size,
			},
		}
	}

	bg, err := enc.device.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   c.Pipeline.label + "_bind",
		Layout:  c.Pipeline.bindLayout,
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("native: create bind group: %w", err)
	}
	enc.Track(bg)

	cp := enc.raw.BeginComputePass(&hal.ComputePassDescriptor{Label: enc.label + "_" + c.Pipeline.label})
	cp.SetPipeline(c.Pipeline.pipeline)
	cp.SetBindGroup(0, bg, nil)
	cp.Dispatch(c.Workgroups[0], c.Workgroups[1], c.Workgroups[2])
	cp.End()
	return nil
}
