package framegraph

// ResourceBoard maps resource names to nodes so that GetOrCreate and Import
// under the same name return the same handle within one frame.
type ResourceBoard struct {
	entries map[string]ResourceIndex
}

func newResourceBoard() ResourceBoard {
	return ResourceBoard{entries: make(map[string]ResourceIndex)}
}

// Get returns the node registered under name.
func (b *ResourceBoard) Get(name string) (ResourceIndex, bool) {
	idx, ok := b.entries[name]
	return idx, ok
}

// Insert registers name. An existing registration is replaced.
func (b *ResourceBoard) Insert(name string, idx ResourceIndex) {
	if b.entries == nil {
		b.entries = make(map[string]ResourceIndex)
	}
	b.entries[name] = idx
}

// Len returns the number of registered names.
func (b *ResourceBoard) Len() int { return len(b.entries) }

func (b *ResourceBoard) clear() {
	b.entries = make(map[string]ResourceIndex)
}
