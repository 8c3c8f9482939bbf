package framegraph

import (
	"fmt"
	"time"
)

// Execute runs the compiled plan against device and resets the graph.
//
// Without a compiled plan Execute does nothing. Otherwise, for each device
// pass in order, it materializes the requested resources, records the
// pass commands into a fresh encoder and releases the resources whose
// lifetime ends. Command buffers are submitted together once every pass
// has recorded. Released graph-owned resources return to the transient
// cache, which is kept across frames. Resources the cache evicts during
// the frame are destroyed only after the submission.
//
// On error the remaining passes are skipped, command buffers that were
// never submitted are discarded, resources still held go back to the
// cache and the graph is reset all the same.
func (g *FrameGraph) Execute(device Device) error {
	if g.compiled == nil {
		return nil
	}
	if device == nil {
		return ErrNilDevice
	}

	start := time.Now()
	table := newResourceTable()
	err := g.executePasses(device, table)
	if err != nil {
		Logger().Warn("framegraph: frame failed", "passes", len(g.compiled.passes), "error", err)
		table.drain(g.cache)
	}
	table.destroyRetired(device)
	g.cache.EndFrame(device)
	g.metrics.ObserveExecute(time.Since(start).Seconds(), err)
	g.Reset()

	return err
}

func (g *FrameGraph) executePasses(device Device, table *ResourceTable) (err error) {
	buffers := make([]CommandBuffer, 0, len(g.compiled.passes))
	defer func() {
		if err != nil && len(buffers) > 0 {
			device.DiscardCommandBuffers(buffers)
		}
	}()

	for _, dp := range g.compiled.passes {
		for _, idx := range dp.requests {
			if err := table.request(at(g.resources, idx), g.cache, device, g.metrics); err != nil {
				return fmt.Errorf("pass %q: %w", dp.name, err)
			}
		}

		if len(dp.commands) > 0 {
			buf, err := g.recordPass(device, table, dp)
			if err != nil {
				return err
			}
			buffers = append(buffers, buf)
		}

		for _, idx := range dp.releases {
			table.release(idx, g.cache)
		}

		g.metrics.passesExecuted.Inc()
		Logger().Debug("framegraph: executed pass",
			"pass", dp.name,
			"commands", len(dp.commands),
			"requests", len(dp.requests),
			"releases", len(dp.releases))
	}

	if len(buffers) == 0 {
		return nil
	}
	pending := buffers
	buffers = nil // owned by Submit from here on
	if err := device.Submit(pending); err != nil {
		return fmt.Errorf("framegraph: submit %d command buffers: %w", len(pending), err)
	}
	return nil
}

func (g *FrameGraph) recordPass(device Device, table *ResourceTable, dp DevicePass) (CommandBuffer, error) {
	encoder, err := device.CreateCommandEncoder(dp.name)
	if err != nil {
		return nil, fmt.Errorf("pass %q: create encoder: %w", dp.name, err)
	}

	pc := &PassContext{
		name:    dp.name,
		index:   dp.index,
		device:  device,
		encoder: encoder,
		table:   table,
	}
	for i, cmd := range dp.commands {
		if err := cmd.Execute(pc); err != nil {
			encoder.Discard()
			return nil, fmt.Errorf("pass %q: command %d: %w", dp.name, i, err)
		}
	}

	buf, err := encoder.Finish()
	if err != nil {
		encoder.Discard()
		return nil, fmt.Errorf("pass %q: finish encoder: %w", dp.name, err)
	}
	return buf, nil
}
