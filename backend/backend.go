package backend

import (
	"errors"

	"github.com/gogpu/framegraph"
)

// Backend name constants.
const (
	// BackendNull is the name of the GPU-less counting backend.
	BackendNull = "null"
	// BackendNative is the name of the Pure Go GPU backend (gogpu/wgpu HAL).
	BackendNative = "native"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// DeviceFactory creates a framegraph.Device.
//
// Factories are registered via Register() and invoked by Get() or
// Default(); each call returns a new device.
type DeviceFactory func() (framegraph.Device, error)
