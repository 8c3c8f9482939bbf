package framegraph

import "fmt"

// CompiledFrameGraph is the ordered execution plan produced by Compile.
// It is read-only.
type CompiledFrameGraph struct {
	passes []DevicePass
	culled []PassIndex
}

// Passes returns the device passes in execution order.
func (c *CompiledFrameGraph) Passes() []DevicePass { return c.passes }

// Culled returns the passes removed by culling, in declaration order.
func (c *CompiledFrameGraph) Culled() []PassIndex { return c.culled }

// DevicePass is one step of the plan: request resources, run the pass
// commands, release resources.
type DevicePass struct {
	name     string
	index    PassIndex
	commands []PassCommand
	requests []ResourceIndex
	releases []ResourceIndex
}

// Name returns the pass name.
func (p DevicePass) Name() string { return p.name }

// Index returns the index of the pass node the device pass was built from.
func (p DevicePass) Index() PassIndex { return p.index }

// Requests returns the resources materialized before the pass runs.
func (p DevicePass) Requests() []ResourceIndex { return p.requests }

// Releases returns the resources released after the pass runs.
func (p DevicePass) Releases() []ResourceIndex { return p.releases }

// CommandCount returns the number of recorded commands.
func (p DevicePass) CommandCount() int { return len(p.commands) }

// Compile analyzes resource lifetimes and builds the execution plan.
//
// Compile is a no-op on a graph without passes. It fails with
// ErrUnfinishedPass while a builder is open, and with the first
// declaration error recorded by any committed pass.
func (g *FrameGraph) Compile() error {
	if g.open > 0 {
		return fmt.Errorf("%w: %d open", ErrUnfinishedPass, g.open)
	}
	if len(g.passes) == 0 {
		return nil
	}
	for i := range g.passes {
		if err := g.passes[i].err; err != nil {
			return fmt.Errorf("compile pass %q: %w", g.passes[i].name, err)
		}
	}

	live := allLive(len(g.passes))
	if g.culling {
		live = g.cull()
	}
	g.computeResourceLifetime(live)
	g.compiled = g.generateCompiledFrameGraph(live)

	if n := len(g.compiled.culled); n > 0 {
		g.metrics.passesCulled.Add(float64(n))
	}
	Logger().Debug("framegraph: compiled",
		"passes", len(g.compiled.passes),
		"culled", len(g.compiled.culled),
		"resources", len(g.resources))

	return nil
}

func (g *FrameGraph) generateCompiledFrameGraph(live []bool) *CompiledFrameGraph {
	c := &CompiledFrameGraph{passes: make([]DevicePass, 0, len(g.passes))}
	for i := range g.passes {
		pass := &g.passes[i]
		if !live[i] {
			c.culled = append(c.culled, pass.index)
			continue
		}
		c.passes = append(c.passes, DevicePass{
			name:     pass.name,
			index:    pass.index,
			commands: pass.commands,
			requests: pass.requests,
			releases: pass.releases,
		})
	}
	return c
}
