// Package validation checks resources before a handler commits them to the
// store: names must be DNS-1123 compliant and each type may carry CEL rules
// over its labels and metadata.
package validation

import (
	"context"

	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/registry"
	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

// Validator provides the interface for validating resources.
type Validator interface {
	// Validate validates a resource for creation or update. The returned error
	// is an API "Invalid" status error naming every violated rule.
	Validate(ctx context.Context, config registry.ResourceConfig, obj v1.Resource) error
}

// ValidationRule is a single CEL rule evaluated against a resource. The
// expression sees the resource as "self" with the fields name, namespace,
// type, labels and metadata.
type ValidationRule struct {
	// Field is the path reported when the rule fails, e.g. "metadata.replicas"
	Field string

	// Expression is a CEL expression that must evaluate to true
	Expression string

	// Message is the human-readable error message
	Message string
}

// CELValidator provides Common Expression Language (CEL) validation capabilities.
type CELValidator interface {
	// ValidateCELValue evaluates a CEL expression against any value
	ValidateCELValue(ctx context.Context, value any, expression string) error

	// CompileCEL compiles a CEL expression for efficient reuse
	CompileCEL(expression string) (CompiledCELProgram, error)
}

// CompiledCELProgram represents a compiled CEL program for efficient execution.
type CompiledCELProgram interface {
	// Eval executes the compiled CEL expression against a value
	Eval(ctx context.Context, value any) (bool, error)
}

// ValidationOptions provides configuration options for validation behavior.
type ValidationOptions struct {
	// FailFast stops validation on the first error if true
	FailFast bool

	// MaxErrors limits the number of validation errors returned
	MaxErrors int

	// SkipNames disables DNS-1123 name validation
	SkipNames bool
}

// ValidationOption allows for functional configuration of the validation manager.
type ValidationOption func(*ValidationOptions)

// WithFailFast sets the fail-fast option.
func WithFailFast(enabled bool) ValidationOption {
	return func(opts *ValidationOptions) {
		opts.FailFast = enabled
	}
}

// WithMaxErrors sets the maximum number of errors to return.
func WithMaxErrors(max int) ValidationOption {
	return func(opts *ValidationOptions) {
		opts.MaxErrors = max
	}
}

// WithNameValidation toggles DNS-1123 name validation.
func WithNameValidation(enabled bool) ValidationOption {
	return func(opts *ValidationOptions) {
		opts.SkipNames = !enabled
	}
}

// ValidationManager coordinates name checks and per-type CEL rules.
type ValidationManager interface {
	Validator

	// RegisterRules compiles and registers rules for a resource type.
	RegisterRules(resourceType string, rules ...ValidationRule) error

	// HasValidationFor returns true if rules are registered for the type.
	HasValidationFor(resourceType string) bool
}
