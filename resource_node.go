package framegraph

// VirtualResource is either an imported concrete resource, which the graph
// borrows but never creates or frees, or a descriptor the graph must
// materialize (and may pool).
type VirtualResource struct {
	imported Resource
	desc     Descriptor
}

// Imported returns a virtual resource backed by an existing resource.
func Imported(res Resource) VirtualResource {
	return VirtualResource{imported: res, desc: res.Descriptor()}
}

// Setuped returns a virtual resource the graph materializes from desc.
func Setuped(desc Descriptor) VirtualResource {
	return VirtualResource{desc: desc}
}

// IsImported reports whether the resource is owned by the caller.
func (v VirtualResource) IsImported() bool { return v.imported != nil }

// Resource returns the imported resource, or nil for a setup descriptor.
func (v VirtualResource) Resource() Resource { return v.imported }

// Descriptor returns the resource descriptor.
func (v VirtualResource) Descriptor() Descriptor { return v.desc }

// ResourceNode is one declared resource for the current frame.
// Its descriptor never changes; only the version and lifetime do.
type ResourceNode struct {
	index    ResourceIndex
	name     string
	version  uint32
	resource VirtualResource

	firstUse PassIndex
	lastUse  PassIndex
}

func newResourceNode(name string, index ResourceIndex, resource VirtualResource) ResourceNode {
	return ResourceNode{
		index:    index,
		name:     name,
		resource: resource,
	}
}

// Index returns the node's own index.
func (n *ResourceNode) Index() ResourceIndex { return n.index }

// Name returns the declared name.
func (n *ResourceNode) Name() string { return n.name }

// Version returns the current version (number of declared writes).
func (n *ResourceNode) Version() uint32 { return n.version }

// Resource returns the virtual resource.
func (n *ResourceNode) Resource() VirtualResource { return n.resource }

// FirstUse returns the first pass touching the resource, if any.
func (n *ResourceNode) FirstUse() (PassIndex, bool) { return n.firstUse, n.firstUse.Valid() }

// LastUse returns the last pass touching the resource, if any.
func (n *ResourceNode) LastUse() (PassIndex, bool) { return n.lastUse, n.lastUse.Valid() }

// raw returns the node's current (index, version) pair.
func (n *ResourceNode) raw() RawHandle {
	return RawHandle{Index: n.index, Version: n.version}
}

func (n *ResourceNode) newVersion() uint32 {
	n.version++
	return n.version
}

// updateLifetime records a use by pass: the first use is written once,
// the last use always moves forward.
func (n *ResourceNode) updateLifetime(pass PassIndex) {
	if !n.firstUse.Valid() {
		n.firstUse = pass
	}
	n.lastUse = pass
}
