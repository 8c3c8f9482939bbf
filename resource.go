package framegraph

// Resource is a concrete, physically backed GPU object.
// The graph only ever creates *Buffer and *Texture.
type Resource interface {
	Kind() ResourceKind
	Descriptor() Descriptor
}

// Buffer is a concrete GPU buffer together with the descriptor it was
// created from. The backend-specific object is opaque to the graph.
type Buffer struct {
	desc BufferDescriptor
	raw  any
}

// NewBuffer wraps a backend buffer object. Devices call this from
// CreateResource; callers use it to build resources for ImportBuffer.
func NewBuffer(desc BufferDescriptor, raw any) *Buffer {
	return &Buffer{desc: desc, raw: raw}
}

// Kind implements Resource. It is safe to call on a nil *Buffer.
func (*Buffer) Kind() ResourceKind { return KindBuffer }

// Descriptor implements Resource.
func (b *Buffer) Descriptor() Descriptor { return b.desc }

// BufferDescriptor returns the typed descriptor.
func (b *Buffer) BufferDescriptor() BufferDescriptor { return b.desc }

// Raw returns the backend object (for example a hal.Buffer).
func (b *Buffer) Raw() any { return b.raw }

// Texture is a concrete GPU texture, its default view, and the descriptor
// it was created from.
type Texture struct {
	desc TextureDescriptor
	raw  any
	view any
}

// NewTexture wraps a backend texture object and its default view.
func NewTexture(desc TextureDescriptor, raw, view any) *Texture {
	return &Texture{desc: desc, raw: raw, view: view}
}

// Kind implements Resource. It is safe to call on a nil *Texture.
func (*Texture) Kind() ResourceKind { return KindTexture }

// Descriptor implements Resource.
func (t *Texture) Descriptor() Descriptor { return t.desc }

// TextureDescriptor returns the typed descriptor.
func (t *Texture) TextureDescriptor() TextureDescriptor { return t.desc }

// Raw returns the backend texture object (for example a hal.Texture).
func (t *Texture) Raw() any { return t.raw }

// View returns the backend default view (for example a hal.TextureView).
func (t *Texture) View() any { return t.view }

// kindOf returns the kind of the resource type T without needing a value.
func kindOf[T Resource]() ResourceKind {
	var zero T
	return zero.Kind()
}
