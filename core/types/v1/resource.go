package v1

import (
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
	"time"
)

// Resource is a single typed, named record of the simulated cluster.
type Resource struct {
	// ID is assigned at creation and never changes or gets reused.
	ID string `json:"id"`
	// Type is the resource kind tag, e.g. "pod" or "deployment".
	Type string `json:"type"`
	// Name is unique within (Type, Namespace).
	Name string `json:"name"`
	// Namespace is empty for cluster-scoped types.
	Namespace string `json:"namespace,omitempty"`
	// Labels are user visible key/value pairs.
	Labels map[string]string `json:"labels,omitempty"`
	// Metadata holds type specific state such as image or replica count.
	Metadata map[string]any `json:"metadata,omitempty"`
	// CreatedAt is used for display and ordering only.
	CreatedAt time.Time `json:"createdAt"`
}

// DeepCopy returns a copy that shares no maps with r.
func (r Resource) DeepCopy() Resource {
	out := r
	out.Labels = maps.Clone(r.Labels)
	if r.Metadata != nil {
		out.Metadata = make(map[string]any, len(r.Metadata))
		for k, v := range r.Metadata {
			out.Metadata[k] = copyValue(v)
		}
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]string:
		return maps.Clone(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = copyValue(vv)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = copyValue(vv)
		}
		return out
	default:
		return v
	}
}

// Key returns the "type/name" form used in command output.
func (r Resource) Key() string {
	return r.Type + "/" + r.Name
}

// ManagedBy returns the id of the owning resource, or "" when unowned.
func (r Resource) ManagedBy() string {
	return r.MetaString(MetaManagedBy)
}

// MetaString returns the metadata value for key rendered as a string.
func (r Resource) MetaString(key string) string {
	v, ok := r.Metadata[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// MetaInt returns the metadata value for key as an int. Values decoded from a
// JSON snapshot arrive as float64 or json.Number and are handled too.
func (r Resource) MetaInt(key string) (int, bool) {
	switch t := r.Metadata[key].(type) {
	case int:
		return t, true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case json.Number:
		n, err := t.Int64()
		return int(n), err == nil
	case string:
		n, err := strconv.Atoi(t)
		return n, err == nil
	default:
		return 0, false
	}
}

// MetaIntOr is MetaInt with a fallback.
func (r Resource) MetaIntOr(key string, fallback int) int {
	if n, ok := r.MetaInt(key); ok {
		return n
	}
	return fallback
}

// MetaStringMap returns a map valued metadata entry, e.g. configmap data.
func (r Resource) MetaStringMap(key string) map[string]string {
	switch t := r.Metadata[key].(type) {
	case map[string]string:
		return t
	case map[string]any:
		out := make(map[string]string, len(t))
		for k, v := range t {
			out[k] = fmt.Sprint(v)
		}
		return out
	default:
		return nil
	}
}

// MetaStrings returns a list valued metadata entry, e.g. node taints.
func (r Resource) MetaStrings(key string) []string {
	switch t := r.Metadata[key].(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, v := range t {
			out = append(out, fmt.Sprint(v))
		}
		return out
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	default:
		return nil
	}
}

// WithMeta returns a copy of r with key set to value.
func (r Resource) WithMeta(key string, value any) Resource {
	out := r.DeepCopy()
	if out.Metadata == nil {
		out.Metadata = map[string]any{}
	}
	out.Metadata[key] = value
	return out
}

// WithLabels returns a copy of r carrying exactly labels.
func (r Resource) WithLabels(labels map[string]string) Resource {
	out := r.DeepCopy()
	out.Labels = maps.Clone(labels)
	return out
}
