package graphdesc

import (
	"fmt"
	"os"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/gogpu/framegraph"
)

// Screen is the surface size exposed to expressions as screen.width and
// screen.height.
type Screen struct {
	Width  uint32
	Height uint32
}

// Buffer is a decoded buffer or import_buffer block.
type Buffer struct {
	Name     string
	Imported bool
	Desc     framegraph.BufferDescriptor
}

// Texture is a decoded texture or import_texture block.
type Texture struct {
	Name     string
	Imported bool
	Desc     framegraph.TextureDescriptor
}

// Pass is a decoded pass block.
type Pass struct {
	Name       string
	Reads      []string
	Writes     []string
	SideEffect bool
}

// Description is a fully evaluated frame description.
type Description struct {
	Buffers  []Buffer
	Textures []Texture
	Passes   []Pass
}

// ParseFile reads and parses the description at path.
func ParseFile(path string, screen Screen) (*Description, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("graphdesc: %w", err)
	}
	return Parse(path, src, screen)
}

// Parse decodes an HCL description and evaluates it against screen.
//
// Errors are hcl.Diagnostics carrying the source range of the offending
// expression; use errors.As to inspect them.
func Parse(filename string, src []byte, screen Screen) (*Description, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}

	var fs fileSchema
	diags = gohcl.DecodeBody(file.Body, nil, &fs)
	if diags.HasErrors() {
		return nil, diags
	}

	ev := newEvaluator(screen)
	desc := &Description{}
	for _, b := range fs.Buffers {
		desc.Buffers = append(desc.Buffers, ev.buffer(b, false))
	}
	for _, b := range fs.ImportBuffers {
		desc.Buffers = append(desc.Buffers, ev.buffer(b, true))
	}
	for _, t := range fs.Textures {
		desc.Textures = append(desc.Textures, ev.texture(t, false))
	}
	for _, t := range fs.ImportTextures {
		desc.Textures = append(desc.Textures, ev.texture(t, true))
	}
	for _, p := range fs.Passes {
		desc.Passes = append(desc.Passes, ev.pass(p))
	}

	if ev.diags.HasErrors() {
		return nil, ev.diags
	}
	return desc, nil
}

// evaluator accumulates diagnostics while evaluating blocks.
type evaluator struct {
	ctx   *hcl.EvalContext
	names map[string]framegraph.ResourceKind
	diags hcl.Diagnostics
}

func newEvaluator(screen Screen) *evaluator {
	return &evaluator{
		ctx: &hcl.EvalContext{
			Variables: map[string]cty.Value{
				"screen": cty.ObjectVal(map[string]cty.Value{
					"width":  cty.NumberUIntVal(uint64(screen.Width)),
					"height": cty.NumberUIntVal(uint64(screen.Height)),
				}),
			},
		},
		names: make(map[string]framegraph.ResourceKind),
	}
}

func (ev *evaluator) buffer(b *bufferBlock, imported bool) Buffer {
	ev.declare(b.Name, framegraph.KindBuffer, b.Size)

	out := Buffer{
		Name:     b.Name,
		Imported: imported,
		Desc: framegraph.BufferDescriptor{
			Label: b.Name,
			Size:  ev.uint64(b.Size, 0),
		},
	}
	if out.Desc.Size == 0 {
		ev.errorf(b.Size, "Invalid buffer size", "Buffer %q must have a positive size.", b.Name)
	}
	for _, u := range ev.strings(b.Usage) {
		flag, ok := bufferUsages[u]
		if !ok {
			ev.errorf(b.Usage, "Unknown buffer usage",
				"%q is not a buffer usage; expected one of %s.", u, strings.Join(known(bufferUsages), ", "))
			continue
		}
		out.Desc.Usage |= flag
	}
	if b.MappedAtCreation != nil {
		out.Desc.MappedAtCreation = *b.MappedAtCreation
	}
	return out
}

func (ev *evaluator) texture(t *textureBlock, imported bool) Texture {
	ev.declare(t.Name, framegraph.KindTexture, t.Width)

	width := ev.uint32(t.Width, 0)
	height := ev.uint32(t.Height, 0)
	if width == 0 || height == 0 {
		ev.errorf(t.Width, "Invalid texture size",
			"Texture %q must have a positive size, got %dx%d.", t.Name, width, height)
	}

	out := Texture{
		Name:     t.Name,
		Imported: imported,
		Desc: framegraph.TextureDescriptor{
			Label: t.Name,
			Size: gputypes.Extent3D{
				Width:              width,
				Height:             height,
				DepthOrArrayLayers: ev.uint32(t.Depth, 1),
			},
			MipLevelCount: ev.uint32(t.MipLevels, 1),
			SampleCount:   ev.uint32(t.SampleCount, 1),
			Dimension:     gputypes.TextureDimension2D,
		},
	}

	var format string
	if ev.decode(t.Format, &format) {
		f, ok := textureFormats[format]
		if !ok {
			ev.errorf(t.Format, "Unknown texture format",
				"%q is not a texture format; expected one of %s.", format, strings.Join(known(textureFormats), ", "))
		}
		out.Desc.Format = f
	}
	for _, u := range ev.strings(t.Usage) {
		flag, ok := textureUsages[u]
		if !ok {
			ev.errorf(t.Usage, "Unknown texture usage",
				"%q is not a texture usage; expected one of %s.", u, strings.Join(known(textureUsages), ", "))
			continue
		}
		out.Desc.Usage |= flag
	}
	return out
}

func (ev *evaluator) pass(p *passBlock) Pass {
	out := Pass{
		Name:   p.Name,
		Reads:  ev.strings(p.Reads),
		Writes: ev.strings(p.Writes),
	}
	if p.SideEffect != nil {
		out.SideEffect = *p.SideEffect
	}
	ev.resolveNames(p.Name, p.Reads, out.Reads)
	ev.resolveNames(p.Name, p.Writes, out.Writes)
	return out
}

// declare registers a resource name. Names are shared between buffers
// and textures.
func (ev *evaluator) declare(name string, kind framegraph.ResourceKind, at hcl.Expression) {
	if prev, ok := ev.names[name]; ok {
		ev.errorf(at, "Duplicate resource",
			"Resource %q is already declared as a %s.", name, prev)
		return
	}
	ev.names[name] = kind
}

func (ev *evaluator) resolveNames(pass string, expr hcl.Expression, names []string) {
	for _, n := range names {
		if _, ok := ev.names[n]; !ok {
			ev.errorf(expr, "Unknown resource",
				"Pass %q refers to %q, which no buffer or texture block declares.", pass, n)
		}
	}
}

// isNull reports whether an optional attribute was left out.
func (ev *evaluator) isNull(expr hcl.Expression) bool {
	if expr == nil {
		return true
	}
	v, diags := expr.Value(ev.ctx)
	return !diags.HasErrors() && v.IsNull()
}

// decode evaluates expr into target and reports whether it succeeded.
func (ev *evaluator) decode(expr hcl.Expression, target any) bool {
	if expr == nil {
		return false
	}
	diags := gohcl.DecodeExpression(expr, ev.ctx, target)
	if diags.HasErrors() {
		ev.diags = append(ev.diags, diags...)
		return false
	}
	return true
}

func (ev *evaluator) uint32(expr hcl.Expression, def uint32) uint32 {
	if ev.isNull(expr) {
		return def
	}
	var v uint32
	if !ev.decode(expr, &v) {
		return def
	}
	return v
}

func (ev *evaluator) uint64(expr hcl.Expression, def uint64) uint64 {
	if ev.isNull(expr) {
		return def
	}
	var v uint64
	if !ev.decode(expr, &v) {
		return def
	}
	return v
}

func (ev *evaluator) strings(expr hcl.Expression) []string {
	if ev.isNull(expr) {
		return nil
	}
	var v []string
	if !ev.decode(expr, &v) {
		return nil
	}
	return v
}

func (ev *evaluator) errorf(expr hcl.Expression, summary, format string, args ...any) {
	d := &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   fmt.Sprintf(format, args...),
	}
	if expr != nil {
		d.Subject = expr.Range().Ptr()
	}
	ev.diags = append(ev.diags, d)
}
