package framegraph

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
)

// ResourceKind distinguishes the concrete resource types the graph manages.
type ResourceKind uint8

const (
	// KindBuffer is a GPU buffer.
	KindBuffer ResourceKind = iota + 1

	// KindTexture is a GPU texture.
	KindTexture
)

// String returns a human-readable name for the kind.
func (k ResourceKind) String() string {
	switch k {
	case KindBuffer:
		return "buffer"
	case KindTexture:
		return "texture"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(k))
	}
}

// Descriptor describes how to create a resource.
//
// PoolKey returns a comparable value covering every creation parameter
// except the label: two descriptors with equal keys produce interchangeable
// resources, and the transient cache reuses one for the other.
type Descriptor interface {
	Kind() ResourceKind
	DescriptorLabel() string
	PoolKey() PoolKey
}

// PoolKey is the comparable identity of a descriptor in the transient cache.
type PoolKey struct {
	kind    ResourceKind
	buffer  bufferKey
	texture textureKey
}

// Kind returns the resource kind the key belongs to.
func (k PoolKey) Kind() ResourceKind { return k.kind }

type bufferKey struct {
	size             uint64
	usage            gputypes.BufferUsage
	mappedAtCreation bool
}

type textureKey struct {
	size          gputypes.Extent3D
	mipLevelCount uint32
	sampleCount   uint32
	dimension     gputypes.TextureDimension
	format        gputypes.TextureFormat
	usage         gputypes.TextureUsage
	viewFormats   string // encoded list, slices are not comparable
}

// BufferDescriptor describes a GPU buffer.
type BufferDescriptor struct {
	// Label is a debug label. It does not take part in pooling.
	Label string

	// Size is the buffer size in bytes.
	Size uint64

	// Usage specifies how the buffer will be used.
	Usage gputypes.BufferUsage

	// MappedAtCreation requests the buffer be mapped when created.
	MappedAtCreation bool
}

// Kind implements Descriptor.
func (BufferDescriptor) Kind() ResourceKind { return KindBuffer }

// DescriptorLabel implements Descriptor.
func (d BufferDescriptor) DescriptorLabel() string { return d.Label }

// PoolKey implements Descriptor.
func (d BufferDescriptor) PoolKey() PoolKey {
	return PoolKey{
		kind: KindBuffer,
		buffer: bufferKey{
			size:             d.Size,
			usage:            d.Usage,
			mappedAtCreation: d.MappedAtCreation,
		},
	}
}

func (d BufferDescriptor) String() string {
	return fmt.Sprintf("buffer[%d bytes, usage=%#x]", d.Size, uint64(d.Usage))
}

// TextureDescriptor describes a GPU texture.
type TextureDescriptor struct {
	// Label is a debug label. It does not take part in pooling.
	Label string

	// Size is the texture extent. Use DepthOrArrayLayers = 1 for 2D textures.
	Size gputypes.Extent3D

	// MipLevelCount is the number of mip levels (1 = no mipmaps).
	MipLevelCount uint32

	// SampleCount is the number of samples per texel (1 = no MSAA).
	SampleCount uint32

	// Dimension is the texture dimensionality.
	Dimension gputypes.TextureDimension

	// Format is the texel format.
	Format gputypes.TextureFormat

	// Usage specifies how the texture will be used.
	Usage gputypes.TextureUsage

	// ViewFormats lists additional formats views may use.
	ViewFormats []gputypes.TextureFormat
}

// Texture2D returns a descriptor for a single-sampled, single-mip 2D texture.
func Texture2D(label string, width, height uint32, format gputypes.TextureFormat, usage gputypes.TextureUsage) TextureDescriptor {
	return TextureDescriptor{
		Label:         label,
		Size:          gputypes.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	}
}

// Kind implements Descriptor.
func (TextureDescriptor) Kind() ResourceKind { return KindTexture }

// DescriptorLabel implements Descriptor.
func (d TextureDescriptor) DescriptorLabel() string { return d.Label }

// PoolKey implements Descriptor.
func (d TextureDescriptor) PoolKey() PoolKey {
	var views string
	if len(d.ViewFormats) > 0 {
		var sb strings.Builder
		for i, f := range d.ViewFormats {
			if i > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "%d", uint64(f))
		}
		views = sb.String()
	}

	return PoolKey{
		kind: KindTexture,
		texture: textureKey{
			size:          d.Size,
			mipLevelCount: d.MipLevelCount,
			sampleCount:   d.SampleCount,
			dimension:     d.Dimension,
			format:        d.Format,
			usage:         d.Usage,
			viewFormats:   views,
		},
	}
}

func (d TextureDescriptor) String() string {
	return fmt.Sprintf("texture[%dx%dx%d, format=%d, usage=%#x]",
		d.Size.Width, d.Size.Height, d.Size.DepthOrArrayLayers, uint64(d.Format), uint64(d.Usage))
}
