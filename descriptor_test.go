package framegraph

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
)

func TestPoolKeyIgnoresLabel(t *testing.T) {
	a := BufferDescriptor{Label: "a", Size: 256, Usage: gputypes.BufferUsageStorage}
	b := BufferDescriptor{Label: "b", Size: 256, Usage: gputypes.BufferUsageStorage}
	assert.Equal(t, a.PoolKey(), b.PoolKey())

	ta := Texture2D("a", 64, 64, gputypes.TextureFormatRGBA8Unorm, gputypes.TextureUsageRenderAttachment)
	tb := Texture2D("b", 64, 64, gputypes.TextureFormatRGBA8Unorm, gputypes.TextureUsageRenderAttachment)
	assert.Equal(t, ta.PoolKey(), tb.PoolKey())
}

func TestPoolKeyCoversCreationFields(t *testing.T) {
	base := BufferDescriptor{Size: 256, Usage: gputypes.BufferUsageStorage}
	tests := []struct {
		name string
		desc BufferDescriptor
	}{
		{"size", BufferDescriptor{Size: 512, Usage: gputypes.BufferUsageStorage}},
		{"usage", BufferDescriptor{Size: 256, Usage: gputypes.BufferUsageUniform}},
		{"mapped", BufferDescriptor{Size: 256, Usage: gputypes.BufferUsageStorage, MappedAtCreation: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, base.PoolKey(), tt.desc.PoolKey())
		})
	}

	tex := Texture2D("", 64, 64, gputypes.TextureFormatRGBA8Unorm, gputypes.TextureUsageRenderAttachment)
	texTests := []struct {
		name   string
		mutate func(d *TextureDescriptor)
	}{
		{"width", func(d *TextureDescriptor) { d.Size.Width = 32 }},
		{"format", func(d *TextureDescriptor) { d.Format = gputypes.TextureFormatBGRA8Unorm }},
		{"usage", func(d *TextureDescriptor) { d.Usage |= gputypes.TextureUsageCopySrc }},
		{"samples", func(d *TextureDescriptor) { d.SampleCount = 4 }},
		{"mips", func(d *TextureDescriptor) { d.MipLevelCount = 2 }},
		{"view formats", func(d *TextureDescriptor) {
			d.ViewFormats = []gputypes.TextureFormat{gputypes.TextureFormatBGRA8Unorm}
		}},
	}
	for _, tt := range texTests {
		t.Run("texture "+tt.name, func(t *testing.T) {
			d := tex
			tt.mutate(&d)
			assert.NotEqual(t, tex.PoolKey(), d.PoolKey())
		})
	}
}

func TestPoolKeyKind(t *testing.T) {
	assert.Equal(t, KindBuffer, BufferDescriptor{}.PoolKey().Kind())
	assert.Equal(t, KindTexture, TextureDescriptor{}.PoolKey().Kind())
	assert.NotEqual(t, BufferDescriptor{}.PoolKey(), TextureDescriptor{}.PoolKey())
	assert.Equal(t, "buffer", KindBuffer.String())
	assert.Equal(t, "texture", KindTexture.String())
	assert.Equal(t, "Unknown(9)", ResourceKind(9).String())
}
