package framegraph

import "fmt"

// PassCommand is one recorded unit of work for a pass. The graph stores
// commands in push order and replays them during Execute; it never
// inspects them.
type PassCommand interface {
	Execute(pc *PassContext) error
}

// PassCommandFunc adapts a function to PassCommand.
type PassCommandFunc func(pc *PassContext) error

// Execute calls f(pc).
func (f PassCommandFunc) Execute(pc *PassContext) error { return f(pc) }

// PassContext is what a command sees while its pass executes.
type PassContext struct {
	name    string
	index   PassIndex
	device  Device
	encoder CommandEncoder
	table   *ResourceTable
}

// Name returns the executing pass name.
func (pc *PassContext) Name() string { return pc.name }

// Index returns the executing pass index.
func (pc *PassContext) Index() PassIndex { return pc.index }

// Device returns the device the graph executes against.
func (pc *PassContext) Device() Device { return pc.device }

// Encoder returns the command encoder recording this pass.
func (pc *PassContext) Encoder() CommandEncoder { return pc.encoder }

// Resolve returns the concrete resource behind ref for the executing pass.
//
// It panics if the resource was not requested for this frame or holds a
// different concrete type: either means the declarations and the commands
// disagree, which is a programming error.
func Resolve[T Resource, A Access](pc *PassContext, ref Ref[T, A]) T {
	res, ok := pc.table.Get(ref.Index())
	if !ok {
		panic(fmt.Sprintf("framegraph: pass %q resolves resource %s which is not in the resource table",
			pc.name, ref.Index()))
	}
	typed, ok := res.(T)
	if !ok {
		panic(fmt.Sprintf("framegraph: pass %q resolves resource %s as %s, table holds %s",
			pc.name, ref.Index(), kindOf[T](), res.Kind()))
	}
	return typed
}
