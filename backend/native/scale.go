// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	_ "embed"
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
)

//go:embed shaders/scale.wgsl
var scaleShaderWGSL string

// ScaleWorkgroupSize is the workgroup width of the scale shader.
const ScaleWorkgroupSize = 64

// ScaleParamsSize is the byte size of the scale shader's uniform block.
const ScaleParamsSize = 16

// ScalePipelineDescriptor describes a compute pipeline that multiplies a
// float32 buffer by a factor: binding 0 holds the uniform block built by
// ScaleParams, binding 1 the source and binding 2 the destination.
func ScalePipelineDescriptor() *ComputePipelineDescriptor {
	return &ComputePipelineDescriptor{
		Label:      "scale",
		WGSL:       scaleShaderWGSL,
		EntryPoint: "main",
		Bindings: []gputypes.BufferBindingType{
			gputypes.BufferBindingTypeUniform,
			gputypes.BufferBindingTypeReadOnlyStorage,
			gputypes.BufferBindingTypeStorage,
		},
	}
}

// ScaleParams encodes the uniform block of the scale shader.
func ScaleParams(factor float32, count uint32) []byte {
	b := make([]byte, ScaleParamsSize)
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(factor))
	binary.LittleEndian.PutUint32(b[4:], count)
	return b
}

// ScaleWorkgroups returns the dispatch size covering count elements.
func ScaleWorkgroups(count uint32) [3]uint32 {
	return [3]uint32{(count + ScaleWorkgroupSize - 1) / ScaleWorkgroupSize, 1, 1}
}
