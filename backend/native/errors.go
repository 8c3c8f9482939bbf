// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import "errors"

// Package errors for the native backend.
var (
	// ErrNilHALDevice is returned when creating a Device without a HAL device.
	ErrNilHALDevice = errors.New("native: HAL device is nil")

	// ErrNilHALQueue is returned when creating a Device without a HAL queue.
	ErrNilHALQueue = errors.New("native: HAL queue is nil")

	// ErrNilProvider is returned by NewDeviceFromProvider for a nil provider.
	ErrNilProvider = errors.New("native: device provider is nil")

	// ErrProviderNotHAL is returned when a provider does not expose HAL types.
	ErrProviderNotHAL = errors.New("native: provider does not expose HAL device and queue")

	// ErrUnsupportedDescriptor is returned for descriptor types the backend
	// cannot create.
	ErrUnsupportedDescriptor = errors.New("native: unsupported descriptor")

	// ErrInvalidBufferSize is returned for zero-sized buffers.
	ErrInvalidBufferSize = errors.New("native: invalid buffer size")

	// ErrInvalidTextureSize is returned when texture dimensions are invalid.
	ErrInvalidTextureSize = errors.New("native: invalid texture size")

	// ErrForeignResource is returned when a resource was not created by a
	// native Device.
	ErrForeignResource = errors.New("native: resource has no HAL object")

	// ErrForeignEncoder is returned when a command runs on an encoder that
	// is not a native Encoder.
	ErrForeignEncoder = errors.New("native: pass encoder is not a native encoder")

	// ErrForeignCommandBuffer is returned by Submit for command buffers not
	// produced by a native Encoder.
	ErrForeignCommandBuffer = errors.New("native: command buffer is not a native command buffer")

	// ErrFenceTimeout is returned when the GPU does not finish a submission
	// within Config.FenceTimeout.
	ErrFenceTimeout = errors.New("native: timed out waiting for GPU")

	// ErrCopyRangeOutOfBounds is returned when a copy exceeds buffer bounds.
	ErrCopyRangeOutOfBounds = errors.New("native: copy range out of bounds")

	// ErrCopyNotAligned is returned when a copy offset or size is not
	// 4-byte aligned.
	ErrCopyNotAligned = errors.New("native: copy offset and size must be 4-byte aligned")

	// ErrBindingCount is returned when a dispatch binds a different number
	// of buffers than the pipeline layout declares.
	ErrBindingCount = errors.New("native: binding count does not match pipeline layout")

	// ErrBindingAccess is returned when a read reference is bound to a
	// read-write storage slot.
	ErrBindingAccess = errors.New("native: read-write storage binding needs a write reference")

	// ErrEmptyShader is returned for pipeline descriptors without WGSL source.
	ErrEmptyShader = errors.New("native: shader source is empty")

	// ErrSPIRVLength is returned when compiled SPIR-V is not a whole number
	// of 32-bit words.
	ErrSPIRVLength = errors.New("native: SPIR-V length is not a multiple of 4")
)
