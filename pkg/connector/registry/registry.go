// Package registry lets a host discover table connector factories by their
// identifier, the way it reads the connector option of a table definition.
package registry

import (
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/ajitpratap0/lakesoul-connector/pkg/config"
	"github.com/ajitpratap0/lakesoul-connector/pkg/connector/core"
	"github.com/ajitpratap0/lakesoul-connector/pkg/errors"
	"github.com/ajitpratap0/lakesoul-connector/pkg/logger"
)

// Constructor creates a factory from the process-wide default options
type Constructor func(defaults config.Options) core.TableFactory

// Registry manages factory registration and discovery
type Registry struct {
	constructors map[string]Constructor
	mu           sync.RWMutex
	logger       *zap.Logger
}

// Global registry instance
var globalRegistry = NewRegistry()

// NewRegistry creates a new factory registry
func NewRegistry() *Registry {
	return &Registry{
		constructors: make(map[string]Constructor),
		logger:       logger.Get().With(zap.String("component", "connector_registry")),
	}
}

// Register registers a factory constructor under id
func (r *Registry) Register(id string, ctor Constructor) error {
	if strings.TrimSpace(id) == "" || ctor == nil {
		return errors.New(errors.ErrorTypeValidation, "factory registration needs an identifier and a constructor")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.constructors[id]; exists {
		return errors.Newf(errors.ErrorTypeConflict, "connector %s already registered", id)
	}

	r.constructors[id] = ctor
	r.logger.Debug("connector registered", zap.String("name", id))
	return nil
}

// Discover creates the factory registered under id
func (r *Registry) Discover(id string, defaults config.Options) (core.TableFactory, error) {
	r.mu.RLock()
	ctor, exists := r.constructors[id]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.Newf(errors.ErrorTypeNotFound, "connector %s not found", id).
			WithDetail("available", r.List())
	}
	return ctor(defaults), nil
}

// DiscoverSink creates the factory registered under id and checks that it
// can build sinks
func (r *Registry) DiscoverSink(id string, defaults config.Options) (core.SinkFactory, error) {
	f, err := r.Discover(id, defaults)
	if err != nil {
		return nil, err
	}
	sink, ok := f.(core.SinkFactory)
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeCapability, "connector %s cannot be used as a sink", id)
	}
	return sink, nil
}

// DiscoverSource creates the factory registered under id and checks that it
// can build sources
func (r *Registry) DiscoverSource(id string, defaults config.Options) (core.SourceFactory, error) {
	f, err := r.Discover(id, defaults)
	if err != nil {
		return nil, err
	}
	source, ok := f.(core.SourceFactory)
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeCapability, "connector %s cannot be used as a source", id)
	}
	return source, nil
}

// List returns the registered identifiers in sorted order
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.constructors))
	for id := range r.constructors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Has checks if a factory is registered under id
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.constructors[id]
	return exists
}

// Global registry functions

// Register registers a factory constructor in the global registry
func Register(id string, ctor Constructor) error {
	return globalRegistry.Register(id, ctor)
}

// Discover creates a factory from the global registry
func Discover(id string, defaults config.Options) (core.TableFactory, error) {
	return globalRegistry.Discover(id, defaults)
}

// DiscoverSink creates a sink factory from the global registry
func DiscoverSink(id string, defaults config.Options) (core.SinkFactory, error) {
	return globalRegistry.DiscoverSink(id, defaults)
}

// DiscoverSource creates a source factory from the global registry
func DiscoverSource(id string, defaults config.Options) (core.SourceFactory, error) {
	return globalRegistry.DiscoverSource(id, defaults)
}

// List returns the identifiers registered in the global registry
func List() []string {
	return globalRegistry.List()
}

// Has checks if a factory is registered in the global registry
func Has(id string) bool {
	return globalRegistry.Has(id)
}

// GetRegistry returns the global registry instance
func GetRegistry() *Registry {
	return globalRegistry
}
