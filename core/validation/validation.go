package validation

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/util/validation"
	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/registry"
	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

// manager is the default implementation of ValidationManager.
type manager struct {
	mu      sync.RWMutex
	cel     CELValidator
	rules   map[string][]ValidationRule
	options ValidationOptions
}

// NewManager creates a new validation manager without any type rules.
func NewManager(opts ...ValidationOption) ValidationManager {
	options := ValidationOptions{
		MaxErrors: 10,
	}

	for _, opt := range opts {
		opt(&options)
	}

	return &manager{
		cel:     NewCELValidator(),
		rules:   make(map[string][]ValidationRule),
		options: options,
	}
}

// NewDefaultManager creates a validation manager with the built-in rules
// registered.
func NewDefaultManager(opts ...ValidationOption) (ValidationManager, error) {
	mgr := NewManager(opts...)
	for resourceType, rules := range DefaultRules() {
		if err := mgr.RegisterRules(resourceType, rules...); err != nil {
			return nil, err
		}
	}
	return mgr, nil
}

// RegisterRules compiles every rule up front so a broken expression fails at
// registration instead of on the first command.
func (m *manager) RegisterRules(resourceType string, rules ...ValidationRule) error {
	for _, rule := range rules {
		if _, err := m.cel.CompileCEL(rule.Expression); err != nil {
			return fmt.Errorf("invalid rule for %s field %s: %w", resourceType, rule.Field, err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules[resourceType] = append(m.rules[resourceType], rules...)
	return nil
}

// HasValidationFor returns true if rules are registered for the type.
func (m *manager) HasValidationFor(resourceType string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rules[resourceType]) > 0
}

// Validate checks the name, labels and type rules of obj.
func (m *manager) Validate(ctx context.Context, config registry.ResourceConfig, obj v1.Resource) error {
	allErrs := m.validateObject(ctx, obj)
	if len(allErrs) == 0 {
		return nil
	}

	kind := config.Kind
	if kind == "" {
		kind = obj.Type
	}
	return apierrors.NewInvalid(schema.GroupKind{Group: config.Group, Kind: kind}, obj.Name, allErrs)
}

func (m *manager) validateObject(ctx context.Context, obj v1.Resource) field.ErrorList {
	var allErrs field.ErrorList

	if !m.options.SkipNames {
		allErrs = append(allErrs, ValidateName(obj.Type, obj.Name)...)
		if m.options.FailFast && len(allErrs) > 0 {
			return allErrs
		}
	}

	allErrs = append(allErrs, ValidateLabels(obj.Labels, field.NewPath("metadata", "labels"))...)
	if m.options.FailFast && len(allErrs) > 0 {
		return allErrs
	}

	m.mu.RLock()
	rules := m.rules[obj.Type]
	m.mu.RUnlock()

	self := ToCELValue(obj)
	for _, rule := range rules {
		if err := m.applyRule(ctx, rule, self); err != nil {
			allErrs = append(allErrs, err)
			if m.options.FailFast {
				break
			}
		}
	}

	if m.options.MaxErrors > 0 && len(allErrs) > m.options.MaxErrors {
		allErrs = allErrs[:m.options.MaxErrors]
	}
	return allErrs
}

func (m *manager) applyRule(ctx context.Context, rule ValidationRule, self map[string]any) *field.Error {
	path := field.NewPath(rule.Field)
	compiled, err := m.cel.CompileCEL(rule.Expression)
	if err != nil {
		return field.InternalError(path, err)
	}

	ok, err := compiled.Eval(ctx, self)
	if err != nil {
		return field.Invalid(path, lookup(self, rule.Field), err.Error())
	}
	if !ok {
		return field.Invalid(path, lookup(self, rule.Field), rule.Message)
	}
	return nil
}

// ValidateName checks obj names the way the API server does: namespaces and
// services must be DNS-1123 labels, everything else a DNS-1123 subdomain.
func ValidateName(resourceType, name string) field.ErrorList {
	path := field.NewPath("metadata", "name")
	if name == "" {
		return field.ErrorList{field.Required(path, "name or generateName is required")}
	}

	var msgs []string
	switch resourceType {
	case v1.TypeNamespace, v1.TypeService:
		msgs = validation.IsDNS1123Label(name)
	default:
		msgs = validation.IsDNS1123Subdomain(name)
	}

	var allErrs field.ErrorList
	for _, msg := range msgs {
		allErrs = append(allErrs, field.Invalid(path, name, msg))
	}
	return allErrs
}

// ValidateLabels checks label keys and values.
func ValidateLabels(labels map[string]string, path *field.Path) field.ErrorList {
	var allErrs field.ErrorList
	for k, v := range labels {
		for _, msg := range validation.IsQualifiedName(k) {
			allErrs = append(allErrs, field.Invalid(path, k, msg))
		}
		for _, msg := range validation.IsValidLabelValue(v) {
			allErrs = append(allErrs, field.Invalid(path.Key(k), v, msg))
		}
	}
	return allErrs
}

// ToCELValue converts a resource into the map CEL rules see as "self".
// Numbers are normalized to int64 where they are whole so rules can compare
// them against integer literals regardless of where the value came from.
func ToCELValue(obj v1.Resource) map[string]any {
	labels := make(map[string]any, len(obj.Labels))
	for k, v := range obj.Labels {
		labels[k] = v
	}

	metadata := make(map[string]any, len(obj.Metadata))
	for k, v := range obj.Metadata {
		metadata[k] = normalize(v)
	}

	return map[string]any{
		"type":      obj.Type,
		"name":      obj.Name,
		"namespace": obj.Namespace,
		"labels":    labels,
		"metadata":  metadata,
	}
}

func normalize(v any) any {
	switch t := v.(type) {
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case float64:
		if t == float64(int64(t)) {
			return int64(t)
		}
		return t
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		f, _ := t.Float64()
		return f
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(t))
		for k, s := range t {
			out[k] = s
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalize(e)
		}
		return out
	case nil:
		return nil
	default:
		return t
	}
}

// lookup returns the value at a "metadata.key" style path for error output.
func lookup(self map[string]any, path string) any {
	var cur any = self
	start := 0
	for i := 0; i <= len(path); i++ {
		if i < len(path) && path[i] != '.' {
			continue
		}
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[path[start:i]]
		start = i + 1
	}
	return cur
}
