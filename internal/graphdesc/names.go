package graphdesc

import (
	"sort"

	"github.com/gogpu/gputypes"
)

var textureFormats = map[string]gputypes.TextureFormat{
	"r8unorm":              gputypes.TextureFormatR8Unorm,
	"r32float":             gputypes.TextureFormatR32Float,
	"rg32float":            gputypes.TextureFormatRG32Float,
	"rgba8unorm":           gputypes.TextureFormatRGBA8Unorm,
	"rgba8unorm-srgb":      gputypes.TextureFormatRGBA8UnormSrgb,
	"bgra8unorm":           gputypes.TextureFormatBGRA8Unorm,
	"bgra8unorm-srgb":      gputypes.TextureFormatBGRA8UnormSrgb,
	"rgba32float":          gputypes.TextureFormatRGBA32Float,
	"depth24plus-stencil8": gputypes.TextureFormatDepth24PlusStencil8,
}

var bufferUsages = map[string]gputypes.BufferUsage{
	"map_read":  gputypes.BufferUsageMapRead,
	"map_write": gputypes.BufferUsageMapWrite,
	"copy_src":  gputypes.BufferUsageCopySrc,
	"copy_dst":  gputypes.BufferUsageCopyDst,
	"index":     gputypes.BufferUsageIndex,
	"vertex":    gputypes.BufferUsageVertex,
	"uniform":   gputypes.BufferUsageUniform,
	"storage":   gputypes.BufferUsageStorage,
	"indirect":  gputypes.BufferUsageIndirect,
}

var textureUsages = map[string]gputypes.TextureUsage{
	"copy_src":          gputypes.TextureUsageCopySrc,
	"copy_dst":          gputypes.TextureUsageCopyDst,
	"texture_binding":   gputypes.TextureUsageTextureBinding,
	"storage_binding":   gputypes.TextureUsageStorageBinding,
	"render_attachment": gputypes.TextureUsageRenderAttachment,
}

// known returns the sorted keys of m for diagnostics.
func known[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
