package framegraph

import (
	"errors"
	"fmt"
)

// Builder and execution errors.
var (
	// ErrStaleHandle is returned when a pass reads a resource through a handle
	// whose version predates a write already declared on that resource.
	// Propagate the handle returned by the write instead.
	ErrStaleHandle = errors.New("framegraph: read through stale handle")

	// ErrPassFinished is returned when Finish is called twice on one builder.
	ErrPassFinished = errors.New("framegraph: pass already finished")

	// ErrUnfinishedPass is returned by Compile while a PassBuilder is still open.
	ErrUnfinishedPass = errors.New("framegraph: pass builder not finished")

	// ErrKindMismatch is returned when a resource of one kind is used where
	// another kind is expected.
	ErrKindMismatch = errors.New("framegraph: resource kind mismatch")

	// ErrNilResource is returned when importing a nil resource.
	ErrNilResource = errors.New("framegraph: resource is nil")

	// ErrNilDevice is returned when Execute is called with a nil Device.
	ErrNilDevice = errors.New("framegraph: device is nil")
)

// ResourceError reports a failure to materialize a virtual resource.
// It wraps the error returned by the Device so callers can react to it
// (for example retry at a reduced resolution).
type ResourceError struct {
	// Name is the declared resource name.
	Name string
	// Index identifies the resource node.
	Index ResourceIndex
	// Err is the underlying device error.
	Err error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("framegraph: create resource %q (#%d): %v", e.Name, e.Index.Position(), e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }
