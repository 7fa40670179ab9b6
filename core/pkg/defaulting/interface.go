package defaulting

import (
	"context"

	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

// Defaulter provides the interface for applying default values to resources.
type Defaulter interface {
	// Default returns r with default values applied. Keys that are already
	// set are never overwritten, so calling it twice is a no-op.
	Default(ctx context.Context, r v1.Resource) (v1.Resource, error)
}

// DefaultingStrategy defines how to apply default values for a set of
// resource types. Implementations must be safe for concurrent use.
type DefaultingStrategy interface {
	// Apply returns r with the strategy's defaults applied.
	Apply(ctx context.Context, r v1.Resource) (v1.Resource, error)

	// SupportsType returns true if this strategy handles resourceType.
	SupportsType(resourceType string) bool
}

// DefaultingManager coordinates strategies and static per-type defaults
// behind a single Defaulter.
type DefaultingManager interface {
	Defaulter

	// RegisterStrategy registers a defaulting strategy.
	RegisterStrategy(strategy DefaultingStrategy) error

	// HasDefaultsFor returns true if anything is configured for resourceType.
	HasDefaultsFor(resourceType string) bool

	// RegisterObjectDefaults registers static default values for one type.
	// A second registration for the same type replaces the first.
	RegisterObjectDefaults(objDefaults *ObjectDefaults) error
}

// DefaultValue is a single metadata default.
type DefaultValue struct {
	// Key is the metadata key, e.g. v1.MetaReplicas
	Key string

	// Value is stored as is. Only scalars are allowed since the value is
	// shared by every resource it is applied to.
	Value any
}

// ObjectDefaults contains the static defaults of one resource type.
type ObjectDefaults struct {
	// Type identifies the resource type these defaults apply to
	Type string

	Defaults []DefaultValue
}
