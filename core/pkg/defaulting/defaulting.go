// Package defaulting fills unset metadata of resources before they are
// committed to the store.
package defaulting

import (
	"context"
	"fmt"
	"sync"

	"k8s.io/apimachinery/pkg/util/sets"

	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

// manager is the default implementation of DefaultingManager.
type manager struct {
	mu         sync.RWMutex
	strategies []DefaultingStrategy
	defaults   map[string]*ObjectDefaults
}

// NewManager creates an empty defaulting manager.
func NewManager() DefaultingManager {
	return &manager{
		defaults: make(map[string]*ObjectDefaults),
	}
}

// NewCoreManager creates a manager with the defaults of the built-in types.
func NewCoreManager() (DefaultingManager, error) {
	m := NewManager()
	for _, d := range CoreDefaults() {
		if err := m.RegisterObjectDefaults(d); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Default applies strategies first, in registration order, then the static
// defaults of r's type.
func (m *manager) Default(ctx context.Context, r v1.Resource) (v1.Resource, error) {
	if r.Type == "" {
		return r, fmt.Errorf("cannot apply defaults to a resource without type")
	}

	m.mu.RLock()
	strategies := m.strategies
	objDefaults := m.defaults[r.Type]
	m.mu.RUnlock()

	for _, strategy := range strategies {
		if !strategy.SupportsType(r.Type) {
			continue
		}
		var err error
		if r, err = strategy.Apply(ctx, r); err != nil {
			return r, fmt.Errorf("failed to apply defaulting strategy: %w", err)
		}
	}

	if objDefaults != nil {
		r = applyObjectDefaults(r, objDefaults)
	}
	return r, nil
}

// RegisterStrategy registers a defaulting strategy for every type it
// supports.
func (m *manager) RegisterStrategy(strategy DefaultingStrategy) error {
	if strategy == nil {
		return fmt.Errorf("strategy cannot be nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// copy on write, Default iterates without the lock
	m.strategies = append(m.strategies[:len(m.strategies):len(m.strategies)], strategy)
	return nil
}

// HasDefaultsFor returns true if defaults are configured for resourceType.
func (m *manager) HasDefaultsFor(resourceType string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, strategy := range m.strategies {
		if strategy.SupportsType(resourceType) {
			return true
		}
	}
	_, ok := m.defaults[resourceType]
	return ok
}

// RegisterObjectDefaults registers the static defaults of one type.
func (m *manager) RegisterObjectDefaults(objDefaults *ObjectDefaults) error {
	if objDefaults == nil {
		return fmt.Errorf("object defaults cannot be nil")
	}
	if objDefaults.Type == "" {
		return fmt.Errorf("object defaults must specify a resource type")
	}
	for _, d := range objDefaults.Defaults {
		if d.Key == "" {
			return fmt.Errorf("default for %s has an empty key", objDefaults.Type)
		}
		if !isScalar(d.Value) {
			return fmt.Errorf("default %s of %s must be a scalar, got %T", d.Key, objDefaults.Type, d.Value)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaults[objDefaults.Type] = objDefaults
	return nil
}

// applyObjectDefaults sets every default whose key is missing. An explicit
// zero value counts as set.
func applyObjectDefaults(r v1.Resource, objDefaults *ObjectDefaults) v1.Resource {
	for _, d := range objDefaults.Defaults {
		if _, set := r.Metadata[d.Key]; set {
			continue
		}
		r = r.WithMeta(d.Key, d.Value)
	}
	return r
}

func isScalar(v any) bool {
	switch v.(type) {
	case string, bool, int, int32, int64, float64:
		return true
	default:
		return false
	}
}

// basicStrategy wraps a function as a strategy.
type basicStrategy struct {
	supportedTypes sets.Set[string]
	defaultFunc    func(ctx context.Context, r v1.Resource) (v1.Resource, error)
}

// NewBasicStrategy creates a strategy from a function. Without
// supportedTypes the strategy applies to every type.
func NewBasicStrategy(defaultFunc func(ctx context.Context, r v1.Resource) (v1.Resource, error), supportedTypes ...string) DefaultingStrategy {
	return &basicStrategy{
		supportedTypes: sets.New(supportedTypes...),
		defaultFunc:    defaultFunc,
	}
}

func (s *basicStrategy) Apply(ctx context.Context, r v1.Resource) (v1.Resource, error) {
	if s.defaultFunc == nil {
		return r, nil
	}
	return s.defaultFunc(ctx, r)
}

func (s *basicStrategy) SupportsType(resourceType string) bool {
	return s.supportedTypes.Len() == 0 || s.supportedTypes.Has(resourceType)
}
