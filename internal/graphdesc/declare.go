package graphdesc

import (
	"fmt"

	"github.com/gogpu/framegraph"
)

// Options customizes Declare.
type Options struct {
	// ImportBuffer supplies the resource for an import_buffer block.
	// Default: a buffer with no backend object.
	ImportBuffer func(b Buffer) (*framegraph.Buffer, error)

	// ImportTexture supplies the resource for an import_texture block.
	// Default: a texture with no backend object.
	ImportTexture func(t Texture) (*framegraph.Texture, error)

	// Commands returns the commands recorded for a pass. Nil leaves
	// every pass empty.
	Commands func(p Pass) []framegraph.PassCommand
}

// Declared holds what Declare added to the graph.
type Declared struct {
	// Buffers and Textures map each name to the newest handle, after
	// every pass write.
	Buffers  map[string]framegraph.Handle[*framegraph.Buffer]
	Textures map[string]framegraph.Handle[*framegraph.Texture]

	// Passes lists the pass indices in declaration order.
	Passes []framegraph.PassIndex
}

// Declare adds the described resources and passes to g. Resources use
// get-or-create semantics, so names the caller declared beforehand are
// reused.
func (d *Description) Declare(g *framegraph.FrameGraph, opts Options) (*Declared, error) {
	out := &Declared{
		Buffers:  make(map[string]framegraph.Handle[*framegraph.Buffer], len(d.Buffers)),
		Textures: make(map[string]framegraph.Handle[*framegraph.Texture], len(d.Textures)),
	}

	for _, b := range d.Buffers {
		h, err := declareBuffer(g, b, opts)
		if err != nil {
			return nil, fmt.Errorf("graphdesc: buffer %q: %w", b.Name, err)
		}
		out.Buffers[b.Name] = h
	}
	for _, t := range d.Textures {
		h, err := declareTexture(g, t, opts)
		if err != nil {
			return nil, fmt.Errorf("graphdesc: texture %q: %w", t.Name, err)
		}
		out.Textures[t.Name] = h
	}

	for _, p := range d.Passes {
		idx, err := g.Pass(p.Name, func(pb *framegraph.PassBuilder) error {
			return out.declarePass(pb, p, opts)
		})
		if err != nil {
			return nil, fmt.Errorf("graphdesc: %w", err)
		}
		out.Passes = append(out.Passes, idx)
	}
	return out, nil
}

func (out *Declared) declarePass(pb *framegraph.PassBuilder, p Pass, opts Options) error {
	for _, name := range p.Reads {
		if h, ok := out.Buffers[name]; ok {
			framegraph.Read(pb, h)
			continue
		}
		if h, ok := out.Textures[name]; ok {
			framegraph.Read(pb, h)
			continue
		}
		return fmt.Errorf("reads unknown resource %q", name)
	}
	for _, name := range p.Writes {
		if h, ok := out.Buffers[name]; ok {
			out.Buffers[name] = framegraph.Write(pb, h).Handle()
			continue
		}
		if h, ok := out.Textures[name]; ok {
			out.Textures[name] = framegraph.Write(pb, h).Handle()
			continue
		}
		return fmt.Errorf("writes unknown resource %q", name)
	}
	if p.SideEffect {
		pb.SideEffect()
	}
	if opts.Commands != nil {
		for _, cmd := range opts.Commands(p) {
			pb.Push(cmd)
		}
	}
	return nil
}

func declareBuffer(g *framegraph.FrameGraph, b Buffer, opts Options) (framegraph.Handle[*framegraph.Buffer], error) {
	if !b.Imported {
		return g.GetOrCreateBuffer(b.Name, b.Desc)
	}
	var res *framegraph.Buffer
	if opts.ImportBuffer != nil {
		var err error
		if res, err = opts.ImportBuffer(b); err != nil {
			return framegraph.Handle[*framegraph.Buffer]{}, err
		}
	} else {
		res = framegraph.NewBuffer(b.Desc, nil)
	}
	return g.ImportBuffer(b.Name, res)
}

func declareTexture(g *framegraph.FrameGraph, t Texture, opts Options) (framegraph.Handle[*framegraph.Texture], error) {
	if !t.Imported {
		return g.GetOrCreateTexture(t.Name, t.Desc)
	}
	var res *framegraph.Texture
	if opts.ImportTexture != nil {
		var err error
		if res, err = opts.ImportTexture(t); err != nil {
			return framegraph.Handle[*framegraph.Texture]{}, err
		}
	} else {
		res = framegraph.NewTexture(t.Desc, nil, nil)
	}
	return g.ImportTexture(t.Name, res)
}
