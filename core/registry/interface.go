// Package registry keeps the table of resource types the simulator knows:
// their singular, plural and short names, scope and API group. Handlers use
// it to resolve whatever a learner typed ("po", "pods", "pod") to a type tag.
package registry

import (
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// Registry manages resource type registration and alias resolution.
type Registry interface {
	// RegisterResource registers a new resource type with its configuration
	RegisterResource(config ResourceConfig) error

	// GetResourceConfig retrieves the configuration for a registered type tag
	GetResourceConfig(resourceType string) (ResourceConfig, error)

	// Resolve maps a singular, plural or short name to a registered config
	Resolve(name string) (ResourceConfig, error)

	// ListResources returns all registered configs in registration order
	ListResources() []ResourceConfig

	// GetTypesForCategory returns all type tags in a given category
	GetTypesForCategory(category string) []string

	// IsResourceRegistered checks if a type tag is registered
	IsResourceRegistered(resourceType string) bool

	// UnregisterResource removes a type from the registry
	UnregisterResource(resourceType string) error
}

// ResourceConfig contains metadata for a registered resource type.
type ResourceConfig struct {
	// Type is the tag stored on every resource record of this kind
	Type string `json:"type"`

	// Singular is the singular form of the resource name
	Singular string `json:"singular"`

	// Plural is the plural form of the resource name
	Plural string `json:"plural"`

	// Kind is the CamelCase kind name, e.g. "Deployment"
	Kind string `json:"kind"`

	// Group is the API group, empty for the core group
	Group string `json:"group,omitempty"`

	// Version is the API version inside Group
	Version string `json:"version"`

	// ShortNames provides alternative short names for this resource
	ShortNames []string `json:"shortNames,omitempty"`

	// Categories groups resources by logical categories (e.g., "all")
	Categories []string `json:"categories,omitempty"`

	// Namespaced indicates if this resource is namespace-scoped
	Namespaced bool `json:"namespaced"`

	// Description provides human-readable description of the resource
	Description string `json:"description,omitempty"`
}

// GroupResource returns the group/resource pair used in API error messages.
func (c ResourceConfig) GroupResource() schema.GroupResource {
	return schema.GroupResource{Group: c.Group, Resource: c.Plural}
}

// APIVersion returns "group/version", or only the version for the core group.
func (c ResourceConfig) APIVersion() string {
	return schema.GroupVersion{Group: c.Group, Version: c.Version}.String()
}

// QualifiedName renders a resource reference the way kubectl prints it after a
// mutation, e.g. "deployment.apps/web" or "pod/web".
func (c ResourceConfig) QualifiedName(name string) string {
	if c.Group == "" {
		return c.Singular + "/" + name
	}
	return c.Singular + "." + c.Group + "/" + name
}

// RegistryOption allows for functional configuration of the registry.
type RegistryOption func(*registryConfig)

// registryConfig holds configuration options for the registry.
type registryConfig struct {
	// DefaultCategories are categories that all resources should belong to
	DefaultCategories []string

	// EnableShortNameValidation ensures short names don't conflict
	EnableShortNameValidation bool
}

// WithDefaultCategories sets default categories that all resources inherit.
func WithDefaultCategories(categories ...string) RegistryOption {
	return func(config *registryConfig) {
		config.DefaultCategories = categories
	}
}

// WithShortNameValidation enables validation to prevent short name conflicts.
func WithShortNameValidation(enabled bool) RegistryOption {
	return func(config *registryConfig) {
		config.EnableShortNameValidation = enabled
	}
}
