// Package builders provides fluent builders for selecting resources from a
// store and for assembling new resource records.
package builders

import (
	"slices"

	"k8s.io/apimachinery/pkg/fields"
	"k8s.io/apimachinery/pkg/labels"

	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

// Field selector keys understood by ResourceSelector.
const (
	FieldName      = "metadata.name"
	FieldNamespace = "metadata.namespace"
	FieldPhase     = "status.phase"
	FieldNodeName  = "spec.nodeName"
)

// ResourceSelector provides methods for selecting and filtering resources.
type ResourceSelector struct {
	types         []string
	names         []string
	namespace     string
	allNamespaces bool
	labelSelector labels.Selector
	fieldSelector fields.Selector
}

// NewResourceSelector creates a selector that matches everything in the
// default namespace.
func NewResourceSelector() *ResourceSelector {
	return &ResourceSelector{
		namespace:     v1.NamespaceDefault,
		labelSelector: labels.Everything(),
		fieldSelector: fields.Everything(),
	}
}

// ForType sets the resource types to select.
func (s *ResourceSelector) ForType(types ...string) *ResourceSelector {
	s.types = types
	return s
}

// WithNames sets specific resource names to select.
func (s *ResourceSelector) WithNames(names ...string) *ResourceSelector {
	s.names = names
	return s
}

// InNamespace sets the namespace to select from. Cluster-scoped types match
// regardless of namespace.
func (s *ResourceSelector) InNamespace(namespace string) *ResourceSelector {
	s.namespace = namespace
	s.allNamespaces = false
	return s
}

// InAllNamespaces sets the selector to span all namespaces.
func (s *ResourceSelector) InAllNamespaces() *ResourceSelector {
	s.allNamespaces = true
	s.namespace = ""
	return s
}

// WithLabels sets the label selector.
func (s *ResourceSelector) WithLabels(selector labels.Selector) *ResourceSelector {
	if selector == nil {
		selector = labels.Everything()
	}
	s.labelSelector = selector
	return s
}

// WithFields sets the field selector.
func (s *ResourceSelector) WithFields(selector fields.Selector) *ResourceSelector {
	if selector == nil {
		selector = fields.Everything()
	}
	s.fieldSelector = selector
	return s
}

// Matches reports whether r satisfies every criterion of the selector.
func (s *ResourceSelector) Matches(r v1.Resource) bool {
	if len(s.types) > 0 && !slices.Contains(s.types, r.Type) {
		return false
	}
	if len(s.names) > 0 && !slices.Contains(s.names, r.Name) {
		return false
	}
	if !s.allNamespaces && !v1.IsClusterScoped(r.Type) && r.Namespace != v1.ScopedNamespace(r.Type, s.namespace) {
		return false
	}
	if !s.labelSelector.Matches(labels.Set(r.Labels)) {
		return false
	}
	return s.fieldSelector.Matches(FieldSet(r))
}

// Select returns the matching resources in store order.
func (s *ResourceSelector) Select(store v1.Store) v1.Store {
	return store.Filter(s.Matches)
}

// FieldSet exposes the selectable fields of r.
func FieldSet(r v1.Resource) fields.Set {
	set := fields.Set{
		FieldName:      r.Name,
		FieldNamespace: r.Namespace,
	}
	if status := r.MetaString(v1.MetaStatus); status != "" {
		set[FieldPhase] = status
	}
	if node := r.MetaString(v1.MetaNode); node != "" {
		set[FieldNodeName] = node
	}
	return set
}
