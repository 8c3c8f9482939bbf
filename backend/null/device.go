package null

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/framegraph"
	"github.com/gogpu/framegraph/backend"
)

// Null device errors.
var (
	// ErrOutOfMemory is returned by CreateResource when Config.MaxLive
	// resources are already alive.
	ErrOutOfMemory = errors.New("null: out of memory")

	// ErrEncoderClosed is returned by Finish on a finished or discarded encoder.
	ErrEncoderClosed = errors.New("null: encoder already finished")
)

func init() {
	backend.Register(backend.BackendNull, func() (framegraph.Device, error) {
		return NewDevice(Config{}), nil
	})
}

// Config configures a null Device.
type Config struct {
	// MaxLive caps the number of resources alive at once.
	// Default: 0 (unlimited).
	MaxLive int
}

// Object is the backend object behind every synthetic resource and view.
type Object struct {
	ID    uint64
	Label string
}

func (o *Object) String() string { return fmt.Sprintf("%s#%d", o.Label, o.ID) }

// CommandBuffer is the result of finishing an Encoder.
type CommandBuffer struct {
	Label    string
	Commands int
}

// Stats counts device calls.
type Stats struct {
	Created   int // resources created
	Destroyed int // resources destroyed
	Live      int // Created - Destroyed
	Buffers   int // buffers created
	Textures  int // textures created
	Encoders  int // command encoders opened
	Submits   int // Submit calls
	Submitted int // command buffers submitted
	Discarded int // command buffers discarded without submission
}

// Device is a GPU-less framegraph.Device. It is safe for concurrent use.
type Device struct {
	mu     sync.Mutex
	cfg    Config
	nextID uint64
	live   map[*Object]framegraph.Resource
	stats  Stats
}

// NewDevice creates a null device.
func NewDevice(cfg Config) *Device {
	if cfg.MaxLive < 0 {
		cfg.MaxLive = 0
	}
	return &Device{
		cfg:  cfg,
		live: make(map[*Object]framegraph.Resource),
	}
}

// CreateResource implements framegraph.Device.
func (d *Device) CreateResource(desc framegraph.Descriptor) (framegraph.Resource, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cfg.MaxLive > 0 && len(d.live) >= d.cfg.MaxLive {
		return nil, fmt.Errorf("%w: %d resources alive", ErrOutOfMemory, len(d.live))
	}

	obj := d.newObject(desc.DescriptorLabel())
	var res framegraph.Resource
	switch desc := desc.(type) {
	case framegraph.BufferDescriptor:
		res = framegraph.NewBuffer(desc, obj)
		d.stats.Buffers++
	case framegraph.TextureDescriptor:
		res = framegraph.NewTexture(desc, obj, d.newObject(desc.Label+"_view"))
		d.stats.Textures++
	default:
		return nil, fmt.Errorf("null: unsupported descriptor %T", desc)
	}

	d.live[obj] = res
	d.stats.Created++
	framegraph.Logger().Debug("null: created resource", "kind", desc.Kind(), "object", obj.String())
	return res, nil
}

// DestroyResource implements framegraph.Device. Destroying a resource the
// device did not create, or destroying it twice, is ignored.
func (d *Device) DestroyResource(res framegraph.Resource) {
	obj := objectOf(res)
	if obj == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.live[obj]; !ok {
		return
	}
	delete(d.live, obj)
	d.stats.Destroyed++
}

// CreateCommandEncoder implements framegraph.Device.
func (d *Device) CreateCommandEncoder(label string) (framegraph.CommandEncoder, error) {
	d.mu.Lock()
	d.stats.Encoders++
	d.mu.Unlock()

	return &Encoder{label: label}, nil
}

// Submit implements framegraph.Device.
func (d *Device) Submit(buffers []framegraph.CommandBuffer) error {
	for i, b := range buffers {
		if _, ok := b.(*CommandBuffer); !ok {
			return fmt.Errorf("null: submit buffer %d: unexpected type %T", i, b)
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.stats.Submits++
	d.stats.Submitted += len(buffers)
	return nil
}

// DiscardCommandBuffers implements framegraph.Device.
func (d *Device) DiscardCommandBuffers(buffers []framegraph.CommandBuffer) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stats.Discarded += len(buffers)
}

// Stats returns a snapshot of the call counters.
func (d *Device) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := d.stats
	s.Live = len(d.live)
	return s
}

// Live returns the resources created and not yet destroyed.
func (d *Device) Live() []framegraph.Resource {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]framegraph.Resource, 0, len(d.live))
	for _, res := range d.live {
		out = append(out, res)
	}
	return out
}

// newObject allocates the next synthetic object. Caller must hold d.mu.
func (d *Device) newObject(label string) *Object {
	d.nextID++
	return &Object{ID: d.nextID, Label: label}
}

func objectOf(res framegraph.Resource) *Object {
	switch r := res.(type) {
	case *framegraph.Buffer:
		obj, _ := r.Raw().(*Object)
		return obj
	case *framegraph.Texture:
		obj, _ := r.Raw().(*Object)
		return obj
	}
	return nil
}
