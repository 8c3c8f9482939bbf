package backend

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/framegraph"
)

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]DeviceFactory)
	// Priority order for backend selection (first available wins).
	// Native > Null (Null never touches a GPU).
	backendPriority = []string{BackendNative, BackendNull}
)

// Register registers a device factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory DeviceFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the registered backend names, sorted.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get creates a device from the backend registered under name.
func Get(name string) (framegraph.Device, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	dev, err := factory()
	if err != nil {
		return nil, fmt.Errorf("backend %q: %w", name, err)
	}
	return dev, nil
}

// Default creates a device from the best available backend.
// Priority order: native > null, then any other registered backend.
func Default() (framegraph.Device, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range backendPriority {
		factory, ok := backends[name]
		if !ok {
			continue
		}
		dev, err := factory()
		if err == nil && dev != nil {
			return dev, nil
		}
		framegraph.Logger().Warn("backend: factory failed, trying next", "backend", name, "error", err)
	}

	// Fallback: first available by name
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if dev, err := backends[name](); err == nil && dev != nil {
			return dev, nil
		}
	}

	return nil, ErrBackendNotAvailable
}
