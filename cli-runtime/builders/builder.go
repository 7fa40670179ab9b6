package builders

import (
	"maps"
	"time"

	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

// ResourceBuilder assembles a new resource record.
type ResourceBuilder struct {
	r v1.Resource
}

// NewResource starts a resource of the given type.
func NewResource(resourceType, name string) *ResourceBuilder {
	return &ResourceBuilder{r: v1.Resource{
		Type:     resourceType,
		Name:     name,
		Labels:   map[string]string{},
		Metadata: map[string]any{},
	}}
}

// InNamespace places the resource in namespace, or in none for
// cluster-scoped types.
func (b *ResourceBuilder) InNamespace(namespace string) *ResourceBuilder {
	b.r.Namespace = v1.ScopedNamespace(b.r.Type, namespace)
	return b
}

// WithLabel sets a single label.
func (b *ResourceBuilder) WithLabel(key, value string) *ResourceBuilder {
	b.r.Labels[key] = value
	return b
}

// WithLabels merges labels into the resource's labels.
func (b *ResourceBuilder) WithLabels(labels map[string]string) *ResourceBuilder {
	maps.Copy(b.r.Labels, labels)
	return b
}

// WithMeta sets a metadata entry.
func (b *ResourceBuilder) WithMeta(key string, value any) *ResourceBuilder {
	b.r.Metadata[key] = value
	return b
}

// OwnedBy records the owning resource id.
func (b *ResourceBuilder) OwnedBy(owner string) *ResourceBuilder {
	return b.WithMeta(v1.MetaManagedBy, owner)
}

// Build assigns id and creation time and returns the record.
func (b *ResourceBuilder) Build(id string, now time.Time) v1.Resource {
	out := b.r.DeepCopy()
	out.ID = id
	out.CreatedAt = now
	if out.Namespace == "" {
		out.Namespace = v1.ScopedNamespace(out.Type, "")
	}
	return out
}
