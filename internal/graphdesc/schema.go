package graphdesc

import "github.com/hashicorp/hcl/v2"

// fileSchema is the top-level structure of a description file.
// Attributes are kept as expressions and evaluated against the screen
// context after decoding.
type fileSchema struct {
	Buffers        []*bufferBlock  `hcl:"buffer,block"`
	ImportBuffers  []*bufferBlock  `hcl:"import_buffer,block"`
	Textures       []*textureBlock `hcl:"texture,block"`
	ImportTextures []*textureBlock `hcl:"import_texture,block"`
	Passes         []*passBlock    `hcl:"pass,block"`
}

type bufferBlock struct {
	Name             string         `hcl:"name,label"`
	Size             hcl.Expression `hcl:"size"`
	Usage            hcl.Expression `hcl:"usage,optional"`
	MappedAtCreation *bool          `hcl:"mapped_at_creation,optional"`
}

type textureBlock struct {
	Name        string         `hcl:"name,label"`
	Width       hcl.Expression `hcl:"width"`
	Height      hcl.Expression `hcl:"height"`
	Depth       hcl.Expression `hcl:"depth,optional"`
	Format      hcl.Expression `hcl:"format"`
	Usage       hcl.Expression `hcl:"usage,optional"`
	MipLevels   hcl.Expression `hcl:"mip_levels,optional"`
	SampleCount hcl.Expression `hcl:"sample_count,optional"`
}

type passBlock struct {
	Name       string         `hcl:"name,label"`
	Reads      hcl.Expression `hcl:"reads,optional"`
	Writes     hcl.Expression `hcl:"writes,optional"`
	SideEffect *bool          `hcl:"side_effect,optional"`
}
