// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/framegraph"
)

// validateDescriptor rejects descriptors the HAL would refuse.
func validateDescriptor(desc framegraph.Descriptor) error {
	switch desc := desc.(type) {
	case framegraph.BufferDescriptor:
		if desc.Size == 0 {
			return fmt.Errorf("%w: %q has size 0", ErrInvalidBufferSize, desc.Label)
		}
	case framegraph.TextureDescriptor:
		if desc.Size.Width == 0 || desc.Size.Height == 0 {
			return fmt.Errorf("%w: %q is %dx%d",
				ErrInvalidTextureSize, desc.Label, desc.Size.Width, desc.Size.Height)
		}
	case nil:
		return fmt.Errorf("%w: nil", ErrUnsupportedDescriptor)
	}
	return nil
}

func halBufferDescriptor(label string, desc framegraph.BufferDescriptor) *hal.BufferDescriptor {
	return &hal.BufferDescriptor{
		Label:            label,
		Size:             desc.Size,
		Usage:            desc.Usage,
		MappedAtCreation: desc.MappedAtCreation,
	}
}

// halTextureDescriptor converts a texture descriptor, defaulting zero
// mip, sample and layer counts to 1.
func halTextureDescriptor(label string, desc framegraph.TextureDescriptor) *hal.TextureDescriptor {
	mipLevelCount := desc.MipLevelCount
	if mipLevelCount == 0 {
		mipLevelCount = 1
	}
	sampleCount := desc.SampleCount
	if sampleCount == 0 {
		sampleCount = 1
	}
	depthOrArrayLayers := desc.Size.DepthOrArrayLayers
	if depthOrArrayLayers == 0 {
		depthOrArrayLayers = 1
	}

	return &hal.TextureDescriptor{
		Label: label,
		Size: hal.Extent3D{
			Width:              desc.Size.Width,
			Height:             desc.Size.Height,
			DepthOrArrayLayers: depthOrArrayLayers,
		},
		MipLevelCount: mipLevelCount,
		SampleCount:   sampleCount,
		Dimension:     desc.Dimension,
		Format:        desc.Format,
		Usage:         desc.Usage,
		ViewFormats:   desc.ViewFormats,
	}
}

// halBuffer returns the HAL buffer behind a graph buffer.
func halBuffer(b *framegraph.Buffer) (hal.Buffer, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: nil buffer", ErrForeignResource)
	}
	buf, ok := b.Raw().(hal.Buffer)
	if !ok || buf == nil {
		return nil, fmt.Errorf("%w: buffer %q holds %T", ErrForeignResource, b.BufferDescriptor().Label, b.Raw())
	}
	return buf, nil
}

// halView returns the default HAL view of a graph texture.
func halView(t *framegraph.Texture) (hal.TextureView, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil texture", ErrForeignResource)
	}
	view, ok := t.View().(hal.TextureView)
	if !ok || view == nil {
		return nil, fmt.Errorf("%w: texture %q view is %T", ErrForeignResource, t.TextureDescriptor().Label, t.View())
	}
	return view, nil
}
