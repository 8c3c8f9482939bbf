package framegraph

// computeResourceLifetime scans the live passes in declaration order and
// records, for each resource, the first and last pass touching it. The
// resource is requested before its first pass and released after its last.
// Resources no live pass touches get neither.
//
// Liveness is the whole inclusive interval, including passes in between
// that never touch the resource.
func (g *FrameGraph) computeResourceLifetime(live []bool) {
	for i := range g.resources {
		g.resources[i].firstUse = PassIndex{}
		g.resources[i].lastUse = PassIndex{}
	}
	for i := range g.passes {
		g.passes[i].requests = nil
		g.passes[i].releases = nil
	}

	for i := range g.passes {
		if !live[i] {
			continue
		}
		pass := &g.passes[i]
		for _, h := range pass.reads {
			at(g.resources, h.Index).updateLifetime(pass.index)
		}
		for _, h := range pass.writes {
			at(g.resources, h.Index).updateLifetime(pass.index)
		}
	}

	for i := range g.resources {
		node := &g.resources[i]
		if !node.firstUse.Valid() || !node.lastUse.Valid() {
			continue
		}
		first := at(g.passes, node.firstUse)
		first.requests = append(first.requests, node.index)
		last := at(g.passes, node.lastUse)
		last.releases = append(last.releases, node.index)
	}
}
