package framegraph

// Device is the GPU collaborator the graph executes against.
//
// Implementations live outside this package: backend/native wraps a
// wgpu HAL device, backend/null hands out synthetic resources.
type Device interface {
	// CreateResource materializes a resource for desc.
	// Errors are recoverable; Execute wraps them in *ResourceError.
	CreateResource(desc Descriptor) (Resource, error)

	// DestroyResource frees a resource the graph no longer pools.
	// It is never called for imported resources.
	DestroyResource(res Resource)

	// CreateCommandEncoder opens a recording context for one pass.
	CreateCommandEncoder(label string) (CommandEncoder, error)

	// Submit hands finished command buffers to the queue in order. It
	// takes ownership of the buffers and frees them even when it fails.
	Submit(buffers []CommandBuffer) error

	// DiscardCommandBuffers frees finished command buffers that will
	// never be submitted.
	DiscardCommandBuffers(buffers []CommandBuffer)
}

// CommandEncoder records commands for a single pass.
type CommandEncoder interface {
	// Finish ends recording and returns the command buffer.
	Finish() (CommandBuffer, error)

	// Discard abandons recording. Safe to call after a failed Finish.
	Discard()
}

// CommandBuffer is a finished, backend-specific command buffer.
type CommandBuffer any
