// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package native executes frame graphs on a gogpu/wgpu HAL device.
//
// Device implements framegraph.Device: graph resources become hal.Buffer
// and hal.Texture objects (textures carry a default hal.TextureView), each
// pass records into its own hal.CommandEncoder, and a frame's command
// buffers are submitted together and waited on with a fence.
//
// Commands in this package (CopyBuffer, WriteBuffer, ClearTexture,
// Dispatch) resolve their framegraph references and record HAL commands
// into the pass encoder. Compute pipelines are compiled from WGSL with
// gogpu/naga and cached by PipelineCache.
//
// A device is usually shared with the host application:
//
//	dev, err := native.NewDeviceFromProvider(provider, native.DefaultConfig())
//	if err != nil { ... }
//	if err := g.Execute(dev); err != nil { ... }
package native
