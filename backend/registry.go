package backend

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// defaultBackend is the backend Default prefers when it is registered.
const defaultBackend = BackendRaster

// Factory creates a new backend instance.
type Factory func() PathRenderer

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
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

// Available returns the registered backend names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	return slices.Sorted(maps.Keys(backends))
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get returns a new backend instance by name.
// Returns nil if the backend is not registered.
func Get(name string) PathRenderer {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil
	}
	return factory()
}

// Open is like Get but reports an unknown name as ErrBackendNotAvailable.
// An empty name selects the default backend.
func Open(name string) (PathRenderer, error) {
	var b PathRenderer
	if name == "" {
		b = Default()
	} else {
		b = Get(name)
	}
	if b == nil {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrBackendNotAvailable, name, Available())
	}
	return b, nil
}

// Default returns the raster backend if it is registered, and otherwise
// the first registered backend in name order.
// Returns nil if no backends are registered.
func Default() PathRenderer {
	registryMu.RLock()
	defer registryMu.RUnlock()

	if factory, ok := backends[defaultBackend]; ok {
		if b := factory(); b != nil {
			return b
		}
	}
	for _, name := range slices.Sorted(maps.Keys(backends)) {
		if b := backends[name](); b != nil {
			return b
		}
	}
	return nil
}

// MustDefault returns the default backend or panics.
func MustDefault() PathRenderer {
	b := Default()
	if b == nil {
		panic("backend: no backend available")
	}
	return b
}
