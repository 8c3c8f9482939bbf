package framegraph

import "fmt"

// RawHandle is the untyped identity of one version of a resource node.
type RawHandle struct {
	Index   ResourceIndex
	Version uint32
}

func (r RawHandle) String() string {
	return fmt.Sprintf("%s@v%d", r.Index, r.Version)
}

// Handle is the caller-held identity of a declared resource. The version
// is the one visible through this handle at the moment it was produced.
//
// Handles are small values; copy them freely. They are only meaningful
// within the frame that produced them.
type Handle[T Resource] struct {
	raw  RawHandle
	desc Descriptor
}

func newHandle[T Resource](raw RawHandle, desc Descriptor) Handle[T] {
	return Handle[T]{raw: raw, desc: desc}
}

// Raw returns the untyped (index, version) pair.
func (h Handle[T]) Raw() RawHandle { return h.raw }

// Index returns the resource node index.
func (h Handle[T]) Index() ResourceIndex { return h.raw.Index }

// Version returns the resource version visible through this handle.
func (h Handle[T]) Version() uint32 { return h.raw.Version }

// Descriptor returns the descriptor the resource was declared with.
func (h Handle[T]) Descriptor() Descriptor { return h.desc }

// Valid reports whether the handle was produced by a graph.
func (h Handle[T]) Valid() bool { return h.raw.Index.Valid() }

// Equal reports whether both handles name the same version of the same node.
func (h Handle[T]) Equal(other Handle[T]) bool { return h.raw == other.raw }

func (h Handle[T]) String() string {
	return fmt.Sprintf("Handle[%s]%s", kindOf[T](), h.raw)
}

// ReadAccess tags a Ref that was declared with Read.
type ReadAccess struct{}

// WriteAccess tags a Ref that was declared with Write.
type WriteAccess struct{}

// Access is the closed set of capability tags a Ref can carry.
type Access interface {
	ReadAccess | WriteAccess
}

// Ref is a pass-scoped reference produced by Read or Write. Holding a Ref
// is what authorizes a pass command to resolve the resource at execution
// time. Ref[T, ReadAccess] and Ref[T, WriteAccess] are distinct types.
type Ref[T Resource, A Access] struct {
	raw  RawHandle
	desc Descriptor
}

// Raw returns the untyped (index, version) pair.
func (r Ref[T, A]) Raw() RawHandle { return r.raw }

// Index returns the resource node index.
func (r Ref[T, A]) Index() ResourceIndex { return r.raw.Index }

// Version returns the resource version this reference observes (Read) or
// produces (Write).
func (r Ref[T, A]) Version() uint32 { return r.raw.Version }

// Descriptor returns the descriptor the resource was declared with.
func (r Ref[T, A]) Descriptor() Descriptor { return r.desc }

// Handle returns a handle for the version carried by the reference.
// After Write, downstream passes must read through this handle.
func (r Ref[T, A]) Handle() Handle[T] { return newHandle[T](r.raw, r.desc) }

// Equal reports whether both references carry the same index and version.
func (r Ref[T, A]) Equal(other Ref[T, A]) bool { return r.raw == other.raw }
