package framegraph

// cull marks the passes that contribute to a root. Roots are passes marked
// with SideEffect and passes writing an imported resource. Walking
// backwards, a pass is kept if it is a root or writes a resource that a
// kept later pass reads or writes.
func (g *FrameGraph) cull() []bool {
	live := make([]bool, len(g.passes))
	needed := make([]bool, len(g.resources))

	for i := len(g.passes) - 1; i >= 0; i-- {
		pass := &g.passes[i]
		keep := pass.sideEffect
		for _, h := range pass.writes {
			if needed[h.Index.Position()] || at(g.resources, h.Index).resource.IsImported() {
				keep = true
				break
			}
		}
		if !keep {
			continue
		}

		live[i] = true
		for _, h := range pass.reads {
			needed[h.Index.Position()] = true
		}
		for _, h := range pass.writes {
			needed[h.Index.Position()] = true
		}
	}
	return live
}

func allLive(n int) []bool {
	live := make([]bool, n)
	for i := range live {
		live[i] = true
	}
	return live
}
