package registry

import (
	"fmt"
	"strings"
	"sync"

	"k8s.io/apimachinery/pkg/util/sets"
)

// resourceRegistry is the default implementation of the Registry interface.
type resourceRegistry struct {
	mu sync.RWMutex

	// resources maps type tags to their configuration
	resources map[string]ResourceConfig

	// order keeps registration order for listings
	order []string

	// aliases maps lower-cased singular, plural and short names to type tags
	aliases map[string]string

	// categories maps category names to sets of type tags
	categories map[string]sets.Set[string]

	config registryConfig
}

// NewRegistry creates an empty resource registry.
func NewRegistry(opts ...RegistryOption) Registry {
	config := registryConfig{
		EnableShortNameValidation: true,
	}

	for _, opt := range opts {
		opt(&config)
	}

	return &resourceRegistry{
		resources:  make(map[string]ResourceConfig),
		aliases:    make(map[string]string),
		categories: make(map[string]sets.Set[string]),
		config:     config,
	}
}

// RegisterResource registers a new resource type with its configuration.
func (r *resourceRegistry) RegisterResource(config ResourceConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if config.Type == "" {
		return fmt.Errorf("resource configuration must specify a type")
	}
	if config.Kind == "" {
		return fmt.Errorf("resource configuration must specify kind")
	}
	if config.Singular == "" {
		config.Singular = config.Type
	}
	if config.Plural == "" {
		config.Plural = config.Singular + "s"
	}
	if config.Version == "" {
		config.Version = "v1"
	}

	if _, exists := r.resources[config.Type]; exists {
		return fmt.Errorf("resource %s is already registered", config.Type)
	}

	names := append([]string{config.Singular, config.Plural}, config.ShortNames...)
	if r.config.EnableShortNameValidation {
		for _, name := range names {
			if existing, exists := r.aliases[normalize(name)]; exists {
				return fmt.Errorf("name %q conflicts with existing resource %s", name, existing)
			}
		}
	}

	categories := sets.New(config.Categories...)
	categories.Insert(r.config.DefaultCategories...)
	config.Categories = sets.List(categories)

	r.resources[config.Type] = config
	r.order = append(r.order, config.Type)
	for _, name := range names {
		r.aliases[normalize(name)] = config.Type
	}
	for _, category := range config.Categories {
		if r.categories[category] == nil {
			r.categories[category] = sets.New[string]()
		}
		r.categories[category].Insert(config.Type)
	}

	return nil
}

// GetResourceConfig retrieves the configuration for a registered type tag.
func (r *resourceRegistry) GetResourceConfig(resourceType string) (ResourceConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	config, exists := r.resources[resourceType]
	if !exists {
		return ResourceConfig{}, fmt.Errorf("resource %s is not registered", resourceType)
	}
	return config, nil
}

// Resolve maps any registered name of a resource to its configuration.
// Matching is exact on the lower-cased name; there is no guessing of plural
// forms, so "ingresses" works only because it is registered.
func (r *resourceRegistry) Resolve(name string) (ResourceConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	resourceType, exists := r.aliases[normalize(name)]
	if !exists {
		return ResourceConfig{}, fmt.Errorf("the server doesn't have a resource type %q", name)
	}
	return r.resources[resourceType], nil
}

// ListResources returns all registered configs in registration order.
func (r *resourceRegistry) ListResources() []ResourceConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ResourceConfig, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, r.resources[t])
	}
	return out
}

// GetTypesForCategory returns the type tags in category in registration order.
func (r *resourceRegistry) GetTypesForCategory(category string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, exists := r.categories[category]
	if !exists {
		return nil
	}
	var out []string
	for _, t := range r.order {
		if members.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

// IsResourceRegistered checks if a type tag is registered.
func (r *resourceRegistry) IsResourceRegistered(resourceType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.resources[resourceType]
	return exists
}

// UnregisterResource removes a type and its aliases from the registry.
func (r *resourceRegistry) UnregisterResource(resourceType string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	config, exists := r.resources[resourceType]
	if !exists {
		return fmt.Errorf("resource %s is not registered", resourceType)
	}

	delete(r.resources, resourceType)
	for i, t := range r.order {
		if t == resourceType {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	for _, name := range append([]string{config.Singular, config.Plural}, config.ShortNames...) {
		delete(r.aliases, normalize(name))
	}

	for _, category := range config.Categories {
		if members, exists := r.categories[category]; exists {
			members.Delete(resourceType)
			if members.Len() == 0 {
				delete(r.categories, category)
			}
		}
	}

	return nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
