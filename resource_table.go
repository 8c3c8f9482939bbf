package framegraph

// ResourceTable maps resource indices to the concrete resources backing
// them during one execution. Only one physical resource backs an index at
// a time; versions are not consulted.
type ResourceTable struct {
	entries map[ResourceIndex]tableEntry
	retired []Resource // evicted by the cache, destroyed after submission
}

type tableEntry struct {
	res   Resource
	owned bool // false for imported resources
}

func newResourceTable() *ResourceTable {
	return &ResourceTable{entries: make(map[ResourceIndex]tableEntry)}
}

// Get returns the resource installed under idx.
func (t *ResourceTable) Get(idx ResourceIndex) (Resource, bool) {
	e, ok := t.entries[idx]
	return e.res, ok
}

// Len returns the number of installed resources.
func (t *ResourceTable) Len() int { return len(t.entries) }

// request materializes node: imported resources are installed as is,
// setup descriptors come from the cache or, failing that, the device.
func (t *ResourceTable) request(node *ResourceNode, c *TransientResourceCache, device Device, m *GraphMetrics) error {
	vr := node.resource
	if vr.IsImported() {
		t.entries[node.index] = tableEntry{res: vr.imported}
		return nil
	}

	if res, ok := c.Get(vr.desc); ok {
		t.entries[node.index] = tableEntry{res: res, owned: true}
		return nil
	}

	res, err := device.CreateResource(vr.desc)
	if err != nil {
		return &ResourceError{Name: node.name, Index: node.index, Err: err}
	}
	if res == nil {
		return &ResourceError{Name: node.name, Index: node.index, Err: ErrNilResource}
	}
	m.resourcesCreated.WithLabelValues(vr.desc.Kind().String()).Inc()
	t.entries[node.index] = tableEntry{res: res, owned: true}
	return nil
}

// release removes idx from the table. Owned resources go back to the
// cache; whatever the cache evicts is retired until the frame's command
// buffers have been submitted.
func (t *ResourceTable) release(idx ResourceIndex, c *TransientResourceCache) {
	e, ok := t.entries[idx]
	if !ok {
		return
	}
	delete(t.entries, idx)
	if !e.owned {
		return
	}
	t.retired = append(t.retired, c.Put(e.res)...)
}

// drain releases everything still installed.
func (t *ResourceTable) drain(c *TransientResourceCache) {
	for idx := range t.entries {
		t.release(idx, c)
	}
}

// destroyRetired destroys the resources the cache evicted this frame.
func (t *ResourceTable) destroyRetired(device Device) {
	for _, res := range t.retired {
		device.DestroyResource(res)
	}
	t.retired = nil
}
