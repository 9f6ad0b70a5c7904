package daemon

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/tdx/internal/models"
)

// ErrNoAdapter is returned by [Registry.New] for daemon kinds without a registered factory.
var ErrNoAdapter = errors.New("no adapter for daemon type")

// Factory constructs an adapter for the given settings.
type Factory func(settings models.DaemonSettings, logger *log.Logger) (Adapter, error)

// Registry maps daemon kinds to adapter factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[models.Daemon]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[models.Daemon]Factory)}
}

// DefaultRegistry returns a registry with the dummy adapter registered. opts.Logger is replaced by
// the logger given to the factory.
func DefaultRegistry(opts DummyOpts) *Registry {
	r := NewRegistry()
	r.Register(models.DaemonDummy, func(s models.DaemonSettings, logger *log.Logger) (Adapter, error) {
		o := opts
		o.Logger = logger
		return NewDummyAdapter(s, o), nil
	})
	return r
}

// Register adds a factory. It panics if the kind is already registered.
func (r *Registry) Register(kind models.Daemon, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[kind]; exists {
		panic(fmt.Sprintf("adapter for daemon %q already registered", kind))
	}
	r.factories[kind] = f
}

// RegisterOrReplace adds or replaces a factory. Tests use it to inject mock adapters.
func (r *Registry) RegisterOrReplace(kind models.Daemon, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = f
}

// Unregister removes a factory and reports whether one existed.
func (r *Registry) Unregister(kind models.Daemon) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[kind]; exists {
		delete(r.factories, kind)
		return true
	}
	return false
}

// New constructs the adapter for settings.Type.
func (r *Registry) New(settings models.DaemonSettings, logger *log.Logger) (Adapter, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	r.mu.RLock()
	f, ok := r.factories[settings.Type]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoAdapter, settings.Type)
	}

	a, err := f(settings, logger)
	if err != nil {
		return nil, NewError(MethodInitFailed, "creating %s adapter: %v", settings.Type, err)
	}
	return a, nil
}

// Kinds returns the registered daemon kinds in sorted order.
func (r *Registry) Kinds() []models.Daemon {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]models.Daemon, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Supports reports whether kind has a registered factory.
func (r *Registry) Supports(kind models.Daemon) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[kind]
	return ok
}
