// Package framegraph schedules the GPU work of one frame.
//
// # Overview
//
// Rendering code describes a frame as passes that read and write virtual
// resources (buffers and textures). The graph works out when each resource
// must exist, materializes it just before its first use, hands it back to a
// cross-frame pool after its last use, and runs the passes in the order they
// were declared. Callers never allocate or sequence GPU objects themselves.
//
// # Quick Start
//
//	g := framegraph.New()
//
//	hdr := g.CreateTexture("hdr", framegraph.Texture2D("hdr", 1920, 1080,
//		gputypes.TextureFormatRGBA8Unorm,
//		gputypes.TextureUsageRenderAttachment|gputypes.TextureUsageTextureBinding))
//
//	_, err := g.Pass("lighting", func(pb *framegraph.PassBuilder) error {
//		out := framegraph.Write(pb, hdr)
//		hdr = out.Handle() // later passes read the written version
//		pb.PushFunc(func(pc *framegraph.PassContext) error {
//			tex := framegraph.Resolve(pc, out)
//			_ = tex // record commands against tex
//			return nil
//		})
//		return nil
//	})
//
//	if err := g.Compile(); err != nil { ... }
//	if err := g.Execute(device); err != nil { ... }
//
// # Frame Lifecycle
//
// A frame goes through three phases:
//   - Declare: CreateBuffer, GetOrCreateTexture, ImportTexture and friends
//     declare resources; AddPass or Pass declare passes with Read and Write.
//   - Compile: lifetime analysis assigns each touched resource a first and
//     last pass; the result is an ordered list of device passes.
//   - Execute: each device pass requests its resources (transient cache
//     first, then the Device), runs its commands and releases resources.
//     The graph is then empty; the TransientResourceCache is not.
//
// # Handles and References
//
// Handle identifies one version of a declared resource. Read and Write
// turn a handle into a Ref tagged with ReadAccess or WriteAccess; the tag
// is part of the type, so a read reference cannot be passed where a write
// reference is expected. Write bumps the resource version: reading later
// through the pre-write handle is reported as ErrStaleHandle.
//
// # Backends
//
// The package only talks to the Device interface. backend/native drives a
// wgpu HAL device; backend/null counts calls without a GPU.
//
// # Thread Safety
//
// A FrameGraph belongs to one goroutine for a whole frame. The
// TransientResourceCache may be shared between graphs as long as their
// executions are serialized.
package framegraph
