package framegraph

import (
	"fmt"
	"slices"
)

// PassBuilder declares the reads, writes and commands of one pass.
//
// Nothing is visible to the graph until Finish commits the pass. Use
// FrameGraph.Pass for a scope that always finishes.
type PassBuilder struct {
	graph    *FrameGraph
	frame    uint64
	node     PassNode
	finished bool
}

// Material is something that can register itself with a graph, typically
// by importing a resource it owns.
type Material[T Resource] interface {
	Imported(g *FrameGraph) (Handle[T], error)
}

// AddPass opens a declaration scope for a pass named name.
// The caller must call Finish or Discard.
func (g *FrameGraph) AddPass(name string) *PassBuilder {
	g.open++
	return &PassBuilder{
		graph: g,
		frame: g.frame,
		node:  PassNode{name: name},
	}
}

// Pass declares a pass through fn and always commits it, even if fn
// returns an error or panics. fn's error is returned (the pass stays in
// the graph as dead weight); a panic is propagated after the commit.
func (g *FrameGraph) Pass(name string, fn func(pb *PassBuilder) error) (idx PassIndex, err error) {
	pb := g.AddPass(name)
	defer func() {
		fidx, ferr := pb.Finish()
		idx = fidx
		if err == nil {
			err = ferr
		}
	}()

	if fnErr := fn(pb); fnErr != nil {
		return PassIndex{}, fmt.Errorf("pass %q: %w", name, fnErr)
	}
	return PassIndex{}, nil
}

// Name returns the pass name.
func (pb *PassBuilder) Name() string { return pb.node.name }

// Graph returns the graph the pass is declared on, so a pass can declare
// resources while it is being built.
func (pb *PassBuilder) Graph() *FrameGraph { return pb.graph }

// Push appends a command to the pass.
func (pb *PassBuilder) Push(cmd PassCommand) {
	pb.mustBeOpen("push")
	pb.node.commands = append(pb.node.commands, cmd)
}

// PushFunc appends fn as a command.
func (pb *PassBuilder) PushFunc(fn func(pc *PassContext) error) {
	pb.Push(PassCommandFunc(fn))
}

// SideEffect marks the pass as a root for culling: it is kept even if
// nothing reads what it writes.
func (pb *PassBuilder) SideEffect() {
	pb.mustBeOpen("mark")
	pb.node.sideEffect = true
}

// Err returns the first declaration error recorded on the builder.
func (pb *PassBuilder) Err() error { return pb.node.err }

// Finish commits the pass into the graph and returns its index.
//
// The pass is committed even when a declaration error was recorded; the
// error is returned and Compile will refuse the graph.
func (pb *PassBuilder) Finish() (PassIndex, error) {
	if pb.finished {
		return PassIndex{}, fmt.Errorf("%w: %q", ErrPassFinished, pb.node.name)
	}
	pb.finished = true

	g := pb.graph
	if pb.frame != g.frame {
		return PassIndex{}, fmt.Errorf("%w: %q was opened in a previous frame", ErrPassFinished, pb.node.name)
	}
	g.open--

	idx := NewIndex[PassNode](len(g.passes))
	pb.node.index = idx
	g.passes = append(g.passes, pb.node)
	g.compiled = nil

	return idx, pb.node.err
}

// Discard abandons the pass without committing it. Versions bumped by its
// writes are rolled back unless a later pass has written the resource
// since. Discard after Finish, or on a builder from a previous frame, does
// nothing.
func (pb *PassBuilder) Discard() {
	if pb.finished {
		return
	}
	pb.finished = true

	g := pb.graph
	if pb.frame != g.frame {
		return
	}
	g.open--

	for i := len(pb.node.writes) - 1; i >= 0; i-- {
		w := pb.node.writes[i]
		node := at(g.resources, w.Index)
		if node.version == w.Version {
			node.version--
		}
	}
}

// Read declares that the pass reads the version of the resource visible
// through h and returns a read reference to it.
//
// Reading through a handle older than the resource's latest declared write
// records ErrStaleHandle on the builder: pass the handle returned by
// Ref.Handle after a Write to downstream passes.
func Read[T Resource](pb *PassBuilder, h Handle[T]) Ref[T, ReadAccess] {
	pb.mustBeOpen("read")
	node := at(pb.graph.resources, h.Index())
	pb.checkKind(node, kindOf[T]())

	raw := h.Raw()
	if raw.Version != node.version {
		pb.fail(fmt.Errorf("%w: pass %q reads %q at v%d, latest is v%d",
			ErrStaleHandle, pb.node.name, node.name, raw.Version, node.version))
	}
	if !slices.Contains(pb.node.reads, raw) {
		pb.node.reads = append(pb.node.reads, raw)
	}

	return Ref[T, ReadAccess]{raw: raw, desc: h.desc}
}

// Write declares that the pass writes the resource behind h. The resource
// version is bumped and the returned reference carries the new version.
func Write[T Resource](pb *PassBuilder, h Handle[T]) Ref[T, WriteAccess] {
	pb.mustBeOpen("write")
	node := at(pb.graph.resources, h.Index())
	pb.checkKind(node, kindOf[T]())

	raw := RawHandle{Index: node.index, Version: node.newVersion()}
	pb.node.writes = append(pb.node.writes, raw)

	return Ref[T, WriteAccess]{raw: raw, desc: h.desc}
}

// ReadMaterial imports m into the graph and reads it.
func ReadMaterial[T Resource](pb *PassBuilder, m Material[T]) (Ref[T, ReadAccess], error) {
	h, err := m.Imported(pb.graph)
	if err != nil {
		pb.fail(err)
		return Ref[T, ReadAccess]{}, err
	}
	return Read(pb, h), nil
}

// WriteMaterial imports m into the graph and writes it.
func WriteMaterial[T Resource](pb *PassBuilder, m Material[T]) (Ref[T, WriteAccess], error) {
	h, err := m.Imported(pb.graph)
	if err != nil {
		pb.fail(err)
		return Ref[T, WriteAccess]{}, err
	}
	return Write(pb, h), nil
}

func (pb *PassBuilder) checkKind(node *ResourceNode, want ResourceKind) {
	if have := node.resource.desc.Kind(); have != want {
		pb.fail(fmt.Errorf("%w: pass %q uses %q (a %s) as a %s",
			ErrKindMismatch, pb.node.name, node.name, have, want))
	}
}

// fail records the first declaration error.
func (pb *PassBuilder) fail(err error) {
	if pb.node.err == nil {
		pb.node.err = err
	}
}

func (pb *PassBuilder) mustBeOpen(op string) {
	if pb.finished {
		panic(fmt.Sprintf("framegraph: %s on finished pass %q", op, pb.node.name))
	}
}
