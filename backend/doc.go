// Package backend selects the framegraph.Device a frame executes against.
//
// # Backend Registration
//
// Backends register a DeviceFactory from init() functions or, when they
// need an existing GPU device, from an explicit call. The null backend
// registers itself on import:
//
//	import _ "github.com/gogpu/framegraph/backend/null"
//
// The native backend wraps a device owned by the host application:
//
//	native.Register(provider, native.DefaultConfig())
//
// # Backend Selection
//
// Use Default() to get the best available device, or Get() to request
// a specific backend by name:
//
//	dev, err := backend.Default()
//
//	dev, err := backend.Get(backend.BackendNull)
//
// # Available Backends
//
// - "native": gogpu/wgpu HAL device (registered by native.Register)
// - "null": synthetic resources, counts every call
package backend
